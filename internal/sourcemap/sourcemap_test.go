package sourcemap

import (
	"testing"
)

func TestNew(t *testing.T) {
	sm := New()
	if sm == nil {
		t.Fatal("New() returned nil")
	}
	if n := len(sm.Entries()); n != 0 {
		t.Errorf("len(Entries()) = %d, expected 0", n)
	}
}

func TestSourceMap_Append_Multiple(t *testing.T) {
	sm := New()
	sm.Append("include/vendor.js", "var v;\r\n")
	sm.Append("b.js", "var b = 1;\r\nvar c = 2;\r\n")
	sm.Append("a.js", "var a;\r\n")

	tests := []struct {
		queryLine    int
		expectedFile string
		expectedLine int
	}{
		{1, "include/vendor.js", 1},
		{2, "b.js", 1},
		{3, "b.js", 2},
		{4, "a.js", 1},
	}

	for _, tt := range tests {
		file, line, found := sm.Resolve(tt.queryLine)
		if !found {
			t.Errorf("Resolve(%d) returned found=false", tt.queryLine)
			continue
		}
		if file != tt.expectedFile {
			t.Errorf("Resolve(%d) file = %q, expected %q", tt.queryLine, file, tt.expectedFile)
		}
		if line != tt.expectedLine {
			t.Errorf("Resolve(%d) line = %d, expected %d", tt.queryLine, line, tt.expectedLine)
		}
	}
}

func TestSourceMap_Append_NoTrailingNewline(t *testing.T) {
	sm := New()
	sm.Append("a.css", "a{}")
	sm.Append("b.css", "b{}\n")

	entries := sm.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Start != 1 || entries[0].End != 1 {
		t.Errorf("first entry = %+v, expected lines 1-1", entries[0])
	}
	if entries[1].Start != 2 || entries[1].End != 2 {
		t.Errorf("second entry = %+v, expected lines 2-2", entries[1])
	}
}

func TestSourceMap_Append_EmptyIgnored(t *testing.T) {
	sm := New()
	sm.Append("empty.js", "")
	if n := len(sm.Entries()); n != 0 {
		t.Errorf("len(Entries()) = %d, expected 0", n)
	}
}

func TestSourceMap_Resolve_NotFound(t *testing.T) {
	sm := New()
	sm.Append("a.js", "x\n")

	if _, _, found := sm.Resolve(0); found {
		t.Error("Resolve(0) should not be found")
	}
	if _, _, found := sm.Resolve(2); found {
		t.Error("Resolve(2) should not be found")
	}
}

func TestSourceMap_Entries_ReturnsCopy(t *testing.T) {
	sm := New()
	sm.Append("a.js", "x\n")

	entries := sm.Entries()
	entries[0].File = "mutated"

	if file, _, _ := sm.Resolve(1); file != "a.js" {
		t.Errorf("Entries() should return a copy, got file %q", file)
	}
}
