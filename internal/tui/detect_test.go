package tui

import (
	"os"
	"testing"
)

func TestDetectMode_CLIENTLIBS_PLAIN(t *testing.T) {
	t.Setenv("CLIENTLIBS_PLAIN", "1")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	if got := DetectMode(os.Stderr); got != ModePlain {
		t.Errorf("DetectMode() = %d, want ModePlain", got)
	}
}

func TestDetectMode_CI(t *testing.T) {
	t.Setenv("CLIENTLIBS_PLAIN", "")
	t.Setenv("CI", "true")
	t.Setenv("NO_COLOR", "")

	if got := DetectMode(os.Stderr); got != ModePlain {
		t.Errorf("DetectMode() = %d, want ModePlain", got)
	}
}

func TestDetectMode_NO_COLOR(t *testing.T) {
	t.Setenv("CLIENTLIBS_PLAIN", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "1")

	if got := DetectMode(os.Stderr); got != ModePlain {
		t.Errorf("DetectMode() = %d, want ModePlain", got)
	}
}

func TestDetectMode_NotATerminal(t *testing.T) {
	t.Setenv("CLIENTLIBS_PLAIN", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := DetectMode(f); got != ModePlain {
		t.Errorf("DetectMode(file) = %d, want ModePlain", got)
	}
}

func TestDetectMode_NilFile(t *testing.T) {
	t.Setenv("CLIENTLIBS_PLAIN", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	if IsStyled(nil) {
		t.Error("IsStyled(nil) = true, want false")
	}
}
