package match

import (
	"time"

	"github.com/motus-games/motus/internal/game"
)

type PlayerState uint8

const (
	PlayerActive PlayerState = iota + 1
	PlayerCompleted
	PlayerEliminated
)

// GuessRecord keeps one evaluated guess for replay on reconnection.
type GuessRecord struct {
	Guess  string              `json:"guess"`
	Result []game.LetterResult `json:"result"`
}

// WordScore accumulates a player's attempts on a single round word.
type WordScore struct {
	Guesses  []GuessRecord `json:"guesses"`
	Attempts int           `json:"attempts"`
	Found    bool          `json:"found"`
}

type Player struct {
	ID               string
	Pseudo           string
	State            PlayerState
	Scores           []*WordScore // one slot per round, nil until the first guess
	TotalScore       int
	CurrentWordIndex int
	StartTime        time.Time
	EndTime          time.Time
}

func NewPlayer(id, pseudo string, wordCount int) *Player {
	return &Player{
		ID:     id,
		Pseudo: pseudo,
		State:  PlayerActive,
		Scores: make([]*WordScore, wordCount),
	}
}

// score returns the slot for the given round, allocating it lazily.
func (p *Player) score(round int) *WordScore {
	if p.Scores[round] == nil {
		p.Scores[round] = &WordScore{}
	}
	return p.Scores[round]
}

// Finished reports whether the player is done with the run, winning or not.
func (p *Player) Finished() bool {
	return p.State == PlayerCompleted || p.State == PlayerEliminated
}

// CompletionMillis returns the run duration in milliseconds, nil unless the
// player completed every word.
func (p *Player) CompletionMillis() *int64 {
	if p.State != PlayerCompleted || p.StartTime.IsZero() {
		return nil
	}
	ms := p.EndTime.Sub(p.StartTime).Milliseconds()
	return &ms
}

// ResetForReplay clears per-run progress while keeping identity.
func (p *Player) ResetForReplay(wordCount int) {
	p.State = PlayerActive
	p.Scores = make([]*WordScore, wordCount)
	p.TotalScore = 0
	p.CurrentWordIndex = 0
	p.StartTime = time.Time{}
	p.EndTime = time.Time{}
}
