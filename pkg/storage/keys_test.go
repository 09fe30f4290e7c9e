package storage

import (
	"strings"
	"testing"
)

func TestBuildKey(t *testing.T) {
	t.Run("preserves extension", func(t *testing.T) {
		key := BuildKey(PrefixQuotes, "user-1", "报价单.PDF")
		if !strings.HasPrefix(key, "quotes/user-1/") {
			t.Errorf("unexpected prefix: %s", key)
		}
		if !strings.HasSuffix(key, ".pdf") {
			t.Errorf("extension not preserved and lowered: %s", key)
		}
	})

	t.Run("no extension", func(t *testing.T) {
		key := BuildKey(PrefixAcceptance, "user-1", "photo")
		if strings.Contains(key[len("acceptance/user-1/"):], ".") {
			t.Errorf("unexpected extension in key: %s", key)
		}
	})

	t.Run("unique per call", func(t *testing.T) {
		a := BuildKey(PrefixContracts, "user-1", "contract.pdf")
		b := BuildKey(PrefixContracts, "user-1", "contract.pdf")
		if a == b {
			t.Error("keys for identical inputs should still differ")
		}
	})
}

func TestOwnerPrefix(t *testing.T) {
	got := OwnerPrefix(PrefixAcceptance, "user-9")
	if got != "acceptance/user-9/" {
		t.Errorf("got %q", got)
	}
}
