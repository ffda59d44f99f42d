package notion

import "testing"

func TestNormalizeID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4", "a1b2c3d4-e5f6-a1b2-c3d4-e5f6a1b2c3d4"},
		{"ABCDEF0123456789abcdef0123456789", "ABCDEF01-2345-6789-abcd-ef0123456789"},
		{"abc123", "abc123"},
		{"a1b2c3d4-e5f6-a1b2-c3d4-e5f6a1b2c3d4", "a1b2c3d4-e5f6-a1b2-c3d4-e5f6a1b2c3d4"},
		{"g1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4", "g1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeID(c.in); got != c.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeID_Idempotent(t *testing.T) {
	ids := []string{
		"a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4",
		"abc123",
		"not-an-id",
	}
	for _, id := range ids {
		once := NormalizeID(id)
		twice := NormalizeID(once)
		if once != twice {
			t.Errorf("NormalizeID not idempotent for %q: %q != %q", id, once, twice)
		}
	}
}
