package notion

// DefaultChunkSize is the Notion API limit on blocks per append request.
const DefaultChunkSize = 100

// ChunkBlocks splits blocks into contiguous, order-preserving slices of
// at most max elements. Concatenating the chunks in order reproduces the
// input exactly. A non-positive max falls back to DefaultChunkSize.
func ChunkBlocks(blocks []Block, max int) [][]Block {
	if max <= 0 {
		max = DefaultChunkSize
	}
	var chunks [][]Block
	for start := 0; start < len(blocks); start += max {
		end := start + max
		if end > len(blocks) {
			end = len(blocks)
		}
		chunks = append(chunks, blocks[start:end])
	}
	return chunks
}
