package notion

import "testing"

func TestToBlocks_MixedDocument(t *testing.T) {
	md := "# Title\n\nSome text\n- item one\n- item two"
	blocks := ToBlocks(md)

	want := []struct {
		blockType string
		text      string
	}{
		{TypeHeading1, "Title"},
		{TypeParagraph, "Some text"},
		{TypeBulleted, "item one"},
		{TypeBulleted, "item two"},
	}
	if len(blocks) != len(want) {
		t.Fatalf("len(blocks) = %d, want %d", len(blocks), len(want))
	}
	for i, w := range want {
		if blocks[i].Type != w.blockType {
			t.Errorf("blocks[%d].Type = %q, want %q", i, blocks[i].Type, w.blockType)
		}
		if got := blocks[i].PlainText(); got != w.text {
			t.Errorf("blocks[%d] text = %q, want %q", i, got, w.text)
		}
	}
}

func TestToBlocks_HeadingPriority(t *testing.T) {
	cases := []struct {
		line      string
		blockType string
		text      string
	}{
		{"### deep", TypeHeading3, "deep"},
		{"## mid", TypeHeading2, "mid"},
		{"# top", TypeHeading1, "top"},
		{"- bullet", TypeBulleted, "bullet"},
		{"plain **bold** text", TypeParagraph, "plain **bold** text"},
	}
	for _, c := range cases {
		blocks := ToBlocks(c.line)
		if len(blocks) != 1 {
			t.Fatalf("ToBlocks(%q) len = %d, want 1", c.line, len(blocks))
		}
		if blocks[0].Type != c.blockType {
			t.Errorf("ToBlocks(%q) type = %q, want %q", c.line, blocks[0].Type, c.blockType)
		}
		if got := blocks[0].PlainText(); got != c.text {
			t.Errorf("ToBlocks(%q) text = %q, want %q", c.line, got, c.text)
		}
	}
}

func TestToBlocks_BlankInputFallback(t *testing.T) {
	for _, input := range []string{"", "   \n\n  \n"} {
		blocks := ToBlocks(input)
		if len(blocks) != 1 {
			t.Fatalf("ToBlocks(%q) len = %d, want 1", input, len(blocks))
		}
		if blocks[0].Type != TypeParagraph {
			t.Errorf("fallback type = %q, want paragraph", blocks[0].Type)
		}
		if got := blocks[0].PlainText(); got != input {
			t.Errorf("fallback text = %q, want %q", got, input)
		}
	}
}

func TestToBlocks_NeverEmpty(t *testing.T) {
	inputs := []string{"", "\n", "x", "# h\n- b", "no prefix at all"}
	for _, in := range inputs {
		if len(ToBlocks(in)) == 0 {
			t.Errorf("ToBlocks(%q) returned empty sequence", in)
		}
	}
}

func TestNewBlock_UnknownTypeDegradesToParagraph(t *testing.T) {
	b := NewBlock("toggle", "text")
	if b.Type != TypeParagraph {
		t.Errorf("type = %q, want paragraph", b.Type)
	}
	if b.Paragraph == nil {
		t.Fatal("paragraph payload is nil")
	}
	if b.PlainText() != "text" {
		t.Errorf("text = %q", b.PlainText())
	}
}

func TestBlock_SinglePayload(t *testing.T) {
	b := NewBlock(TypeHeading2, "h")
	if b.Heading2 == nil {
		t.Fatal("heading_2 payload is nil")
	}
	if b.Heading1 != nil || b.Heading3 != nil || b.Bulleted != nil || b.Paragraph != nil {
		t.Error("block carries more than one payload")
	}
}
