package util

import "testing"

func TestHashKey(t *testing.T) {
	got := HashKey("resume text", "job text")
	if got != HashKey("resume text", "job text") {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if HashKey("ab", "c") == HashKey("a", "bc") {
		t.Fatalf("expected part boundaries to change the hash")
	}
}
