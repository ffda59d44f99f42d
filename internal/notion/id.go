package notion

// isHex32 reports whether s is exactly 32 lowercase/uppercase hex digits.
func isHex32(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// NormalizeID renders a bare 32-hex-character Notion id in its canonical
// hyphenated 8-4-4-4-12 form. Any other shape (already hyphenated, wrong
// length, non-hex) is returned unchanged, which makes the function
// idempotent.
func NormalizeID(id string) string {
	if !isHex32(id) {
		return id
	}
	return id[0:8] + "-" + id[8:12] + "-" + id[12:16] + "-" + id[16:20] + "-" + id[20:32]
}
