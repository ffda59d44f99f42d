// Package notion implements a client for the Notion API reached through
// two transports: an MCP tool session (primary) and direct HTTP (fallback).
package notion

import "strings"

// Block types supported by the markdown converter.
const (
	TypeHeading1 = "heading_1"
	TypeHeading2 = "heading_2"
	TypeHeading3 = "heading_3"
	TypeBulleted = "bulleted_list_item"
	TypeParagraph = "paragraph"
)

// Text is a single plain-text run inside a rich-text array.
type Text struct {
	Content string `json:"content"`
}

// RichText is one element of a block's rich_text payload.
type RichText struct {
	Type string `json:"type"`
	Text Text   `json:"text"`
}

// RichTextBody carries the rich_text array for one block variant.
type RichTextBody struct {
	RichText []RichText `json:"rich_text"`
}

// Block is one typed unit of page content. Exactly one of the variant
// fields is non-nil, matching Type.
type Block struct {
	Object    string        `json:"object"`
	Type      string        `json:"type"`
	Heading1  *RichTextBody `json:"heading_1,omitempty"`
	Heading2  *RichTextBody `json:"heading_2,omitempty"`
	Heading3  *RichTextBody `json:"heading_3,omitempty"`
	Bulleted  *RichTextBody `json:"bulleted_list_item,omitempty"`
	Paragraph *RichTextBody `json:"paragraph,omitempty"`
}

// NewBlock constructs a block of the given type holding a single
// plain-text run. Unknown types degrade to a paragraph.
func NewBlock(blockType, content string) Block {
	body := &RichTextBody{
		RichText: []RichText{{Type: "text", Text: Text{Content: content}}},
	}
	b := Block{Object: "block", Type: blockType}
	switch blockType {
	case TypeHeading1:
		b.Heading1 = body
	case TypeHeading2:
		b.Heading2 = body
	case TypeHeading3:
		b.Heading3 = body
	case TypeBulleted:
		b.Bulleted = body
	default:
		b.Type = TypeParagraph
		b.Paragraph = body
	}
	return b
}

// PlainText returns the concatenated text content of the block.
func (b Block) PlainText() string {
	var body *RichTextBody
	switch b.Type {
	case TypeHeading1:
		body = b.Heading1
	case TypeHeading2:
		body = b.Heading2
	case TypeHeading3:
		body = b.Heading3
	case TypeBulleted:
		body = b.Bulleted
	default:
		body = b.Paragraph
	}
	if body == nil {
		return ""
	}
	var sb strings.Builder
	for _, rt := range body.RichText {
		sb.WriteString(rt.Text.Content)
	}
	return sb.String()
}

// linePrefixes maps markdown line prefixes to block types, in match
// priority order. "### " must be tried before "## " before "# ".
var linePrefixes = []struct {
	prefix    string
	blockType string
}{
	{"### ", TypeHeading3},
	{"## ", TypeHeading2},
	{"# ", TypeHeading1},
	{"- ", TypeBulleted},
}

// ToBlocks converts a markdown document into an ordered block sequence.
// Blank lines are dropped, inline formatting is preserved verbatim, and
// unrecognised lines become paragraphs. The result is never empty: input
// that yields no blocks produces one paragraph holding the raw input.
func ToBlocks(markdown string) []Block {
	var blocks []Block
	for _, line := range strings.Split(markdown, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		matched := false
		for _, p := range linePrefixes {
			if strings.HasPrefix(line, p.prefix) {
				blocks = append(blocks, NewBlock(p.blockType, strings.TrimPrefix(line, p.prefix)))
				matched = true
				break
			}
		}
		if !matched {
			blocks = append(blocks, NewBlock(TypeParagraph, line))
		}
	}
	if len(blocks) == 0 {
		blocks = append(blocks, NewBlock(TypeParagraph, markdown))
	}
	return blocks
}
