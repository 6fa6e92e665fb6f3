package pkg

import (
	"strings"
	"testing"
)

func TestPrefix_IsStableAndNonEmpty(t *testing.T) {
	a := Prefix()
	b := Prefix()

	if a == "" {
		t.Fatal("expected a non-empty prefix")
	}
	if a != b {
		t.Errorf("expected sync.OnceValue to return a stable result, got %q then %q", a, b)
	}
}

func TestConfigDir_EndsWithPrefix(t *testing.T) {
	dir := ConfigDir()

	if !strings.HasSuffix(dir, Prefix()) {
		t.Errorf("expected %q to end with prefix %q", dir, Prefix())
	}
}

func TestCacheDir_EndsWithPrefix(t *testing.T) {
	dir := CacheDir()

	if !strings.HasSuffix(dir, Prefix()) {
		t.Errorf("expected %q to end with prefix %q", dir, Prefix())
	}
}

func TestConfigDir_CacheDir_Distinct(t *testing.T) {
	if ConfigDir() == CacheDir() {
		t.Error("expected config and cache directories to differ")
	}
}
