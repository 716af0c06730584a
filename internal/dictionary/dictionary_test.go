package dictionary

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func testWords() []string {
	return []string{"SALADE", "TOMATE", "CAROTTE", "AUBERGINE", "CITROUILLE"}
}

func TestRandomWordAnyLength(t *testing.T) {
	d := New(testWords())
	for i := 0; i < 20; i++ {
		w, err := d.RandomWord(0)
		if err != nil {
			t.Fatalf("random word: %v", err)
		}
		if !d.Contains(w) {
			t.Errorf("drawn word %q not in dictionary", w)
		}
	}
}

func TestRandomWordFixedLength(t *testing.T) {
	d := New(testWords())
	for i := 0; i < 20; i++ {
		w, err := d.RandomWord(6)
		if err != nil {
			t.Fatalf("random word: %v", err)
		}
		if utf8.RuneCountInString(w) != 6 {
			t.Errorf("expected a 6-letter word, got %q", w)
		}
	}
}

func TestRandomWordNoWordsForLength(t *testing.T) {
	d := New(testWords())
	if _, err := d.RandomWord(8); !errors.Is(err, ErrNoWords) {
		t.Errorf("expected ErrNoWords, got %v", err)
	}
}

func TestContains(t *testing.T) {
	d := New(testWords())
	if !d.Contains("SALADE") {
		t.Error("expected SALADE to be a dictionary word")
	}
	if d.Contains("XYZZYX") {
		t.Error("did not expect XYZZYX to be a dictionary word")
	}
}
