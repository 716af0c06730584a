package match

import (
	"testing"

	"github.com/motus-games/motus/internal/dictionary"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"random", "progressive", "fixed-6", "fixed-10"} {
		mode, err := ParseMode(raw)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", raw, err)
		}
		if mode.String() != raw {
			t.Errorf("round trip %q -> %q", raw, mode.String())
		}
	}

	for _, raw := range []string{"", "daily", "fixed-", "fixed-3", "fixed-42"} {
		if _, err := ParseMode(raw); err == nil {
			t.Errorf("ParseMode(%q) must fail", raw)
		}
	}
}

func TestModeLengthFor(t *testing.T) {
	t.Parallel()

	fixed := Mode{Kind: ModeFixed, Fixed: 8}
	for round := 0; round < 10; round++ {
		if got := fixed.LengthFor(round); got != 8 {
			t.Fatalf("fixed length drifted to %d", got)
		}
	}

	progressive := Mode{Kind: ModeProgressive}
	want := []int{6, 7, 8, 9, 10, 6, 7}
	for round, length := range want {
		if got := progressive.LengthFor(round); got != length {
			t.Errorf("progressive round %d = %d, want %d", round, got, length)
		}
	}

	random := Mode{Kind: ModeRandom}
	for round := 0; round < 50; round++ {
		got := random.LengthFor(round)
		if got < dictionary.MinWordLength || got > dictionary.MaxWordLength {
			t.Fatalf("random length %d out of bounds", got)
		}
	}
}
