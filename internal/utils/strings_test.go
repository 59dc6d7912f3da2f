package utils

import "testing"

func TestSplitReferences(t *testing.T) {
	got := SplitReferences("REF-1, REF-2;;\nREF-3,  ")
	want := []string{"REF-1", "REF-2", "REF-3"}
	if len(got) != len(want) {
		t.Fatalf("unexpected length: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestSplitReferencesEmpty(t *testing.T) {
	if got := SplitReferences(""); len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestJoinReferencesSkipsBlanks(t *testing.T) {
	if got := JoinReferences([]string{" REF-1 ", "", "REF-2"}); got != "REF-1,REF-2" {
		t.Fatalf("unexpected join: %q", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  a\t b\n c  "); got != "a b c" {
		t.Fatalf("unexpected result: %q", got)
	}
}
