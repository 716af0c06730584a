package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/fastrand"

	"github.com/motus-games/motus/internal/dictionary"
)

type ModeKind uint8

const (
	ModeRandom ModeKind = iota + 1
	ModeProgressive
	ModeFixed
)

// Mode controls how the target word length is chosen per round.
type Mode struct {
	Kind  ModeKind
	Fixed int
}

// ParseMode accepts "random", "progressive" or "fixed-N" with N between
// the dictionary bounds.
func ParseMode(raw string) (Mode, error) {
	switch {
	case raw == "random":
		return Mode{Kind: ModeRandom}, nil
	case raw == "progressive":
		return Mode{Kind: ModeProgressive}, nil
	case strings.HasPrefix(raw, "fixed-"):
		n, err := strconv.Atoi(strings.TrimPrefix(raw, "fixed-"))
		if err != nil {
			return Mode{}, fmt.Errorf("parse word length mode %q: %w", raw, err)
		}
		if n < dictionary.MinWordLength || n > dictionary.MaxWordLength {
			return Mode{}, fmt.Errorf("word length %d out of range [%d,%d]",
				n, dictionary.MinWordLength, dictionary.MaxWordLength)
		}
		return Mode{Kind: ModeFixed, Fixed: n}, nil
	default:
		return Mode{}, fmt.Errorf("unknown word length mode %q", raw)
	}
}

func (m Mode) String() string {
	switch m.Kind {
	case ModeProgressive:
		return "progressive"
	case ModeFixed:
		return fmt.Sprintf("fixed-%d", m.Fixed)
	default:
		return "random"
	}
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	parsed, err := ParseMode(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// LengthFor picks the target length for the given round index.
func (m Mode) LengthFor(round int) int {
	span := dictionary.MaxWordLength - dictionary.MinWordLength + 1
	switch m.Kind {
	case ModeProgressive:
		return dictionary.MinWordLength + round%span
	case ModeFixed:
		return m.Fixed
	default:
		return dictionary.MinWordLength + int(fastrand.Uint32n(uint32(span)))
	}
}

// Config holds the immutable session parameters set at creation.
type Config struct {
	WordCount      int  `json:"wordCount"`
	WordLengthMode Mode `json:"wordLengthMode"`
}
