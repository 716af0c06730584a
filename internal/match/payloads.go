package match

import (
	"github.com/samber/lo"

	"github.com/motus-games/motus/internal/game"
)

// RosterEntry is the public view of a player sent with roster updates.
type RosterEntry struct {
	ID         string `json:"id"`
	Pseudo     string `json:"pseudo"`
	TotalScore int    `json:"totalScore"`
}

// ProgressEntry extends the roster view with the attempt grid of each
// player's current word.
type ProgressEntry struct {
	ID               string                `json:"id"`
	Pseudo           string                `json:"pseudo"`
	TotalScore       int                   `json:"totalScore"`
	CurrentWordIndex int                   `json:"currentWordIndex"`
	Attempts         [][]game.LetterResult `json:"attempts"`
}

type SessionCreatedPayload struct {
	SessionID string `json:"sessionId"`
	Config    Config `json:"config"`
	IsAdmin   bool   `json:"isAdmin"`
}

type SessionJoinedPayload struct {
	SessionID string        `json:"sessionId"`
	Config    Config        `json:"config"`
	Players   []RosterEntry `json:"players"`
	IsAdmin   bool          `json:"isAdmin"`
}

type PlayerJoinedPayload struct {
	Pseudo  string        `json:"pseudo"`
	Players []RosterEntry `json:"players"`
}

type PlayerRef struct {
	ID     string `json:"id"`
	Pseudo string `json:"pseudo"`
}

type PlayerRejoinedPayload struct {
	Players   []RosterEntry `json:"players"`
	NewPlayer PlayerRef     `json:"newPlayer"`
}

type ReconnectedPayload struct {
	SessionID        string        `json:"sessionId"`
	Config           Config        `json:"config"`
	Players          []RosterEntry `json:"players"`
	IsAdmin          bool          `json:"isAdmin"`
	GameStarted      bool          `json:"gameStarted"`
	CurrentWordIndex int           `json:"currentWordIndex"`
	CurrentWord      *WordHint     `json:"currentWord"`
	PreviousGuesses  []GuessRecord `json:"previousGuesses"`
}

// WordHint is what a client is allowed to know about a target word.
type WordHint struct {
	Length      int    `json:"length"`
	FirstLetter string `json:"firstLetter"`
	WordNumber  int    `json:"wordNumber"`
	TotalWords  int    `json:"totalWords"`
}

type GameStartedPayload struct {
	WordLength  int    `json:"wordLength"`
	FirstLetter string `json:"firstLetter"`
	WordNumber  int    `json:"wordNumber"`
	TotalWords  int    `json:"totalWords"`
}

type GuessResultPayload struct {
	Result      []game.LetterResult `json:"result"`
	IsCorrect   bool                `json:"isCorrect"`
	GuessNumber int                 `json:"guessNumber"`
	WordNumber  int                 `json:"wordNumber"`
}

type PlayerAttemptPayload struct {
	PlayerID         string              `json:"playerId"`
	Pseudo           string              `json:"pseudo"`
	Result           []game.LetterResult `json:"result"`
	TotalScore       int                 `json:"totalScore"`
	CurrentWordIndex int                 `json:"currentWordIndex"`
}

type PlayersUpdatePayload struct {
	PlayersData []ProgressEntry `json:"playersData"`
}

type PlayerWonWordPayload struct {
	Pseudo     string `json:"pseudo"`
	Attempts   int    `json:"attempts"`
	WordNumber int    `json:"wordNumber"`
	TotalWords int    `json:"totalWords"`
	TotalScore int    `json:"totalScore"`
}

type PlayerChangedWordPayload struct {
	PlayerID   string `json:"playerId"`
	Pseudo     string `json:"pseudo"`
	WordNumber int    `json:"wordNumber"`
	TotalWords int    `json:"totalWords"`
}

type NextWordPayload struct {
	WordLength  int    `json:"wordLength"`
	FirstLetter string `json:"firstLetter"`
	WordNumber  int    `json:"wordNumber"`
	TotalWords  int    `json:"totalWords"`
	TotalScore  int    `json:"totalScore"`
}

type PlayerFinishedPayload struct {
	Pseudo         string `json:"pseudo"`
	CompletionTime *int64 `json:"completionTime"`
	TotalScore     int    `json:"totalScore"`
	Eliminated     bool   `json:"eliminated"`
}

type LeaderboardPayload struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type SessionResetPayload struct {
	SessionID string        `json:"sessionId"`
	Config    Config        `json:"config"`
	Players   []RosterEntry `json:"players"`
}

type PlayerLeftPayload struct {
	Pseudo  string        `json:"pseudo"`
	Players []RosterEntry `json:"players"`
}

type PlayerTypingPayload struct {
	PlayerID     string `json:"playerId"`
	Pseudo       string `json:"pseudo"`
	CurrentInput string `json:"currentInput"`
	WordNumber   int    `json:"wordNumber"`
	WordLength   int    `json:"wordLength"`
}

func roster(players []*Player) []RosterEntry {
	return lo.Map(players, func(p *Player, _ int) RosterEntry {
		return RosterEntry{ID: p.ID, Pseudo: p.Pseudo, TotalScore: p.TotalScore}
	})
}

func progress(players []*Player) []ProgressEntry {
	return lo.Map(players, func(p *Player, _ int) ProgressEntry {
		attempts := [][]game.LetterResult{}
		if p.CurrentWordIndex < len(p.Scores) {
			if score := p.Scores[p.CurrentWordIndex]; score != nil {
				attempts = lo.Map(score.Guesses, func(g GuessRecord, _ int) []game.LetterResult {
					return g.Result
				})
			}
		}
		return ProgressEntry{
			ID:               p.ID,
			Pseudo:           p.Pseudo,
			TotalScore:       p.TotalScore,
			CurrentWordIndex: p.CurrentWordIndex,
			Attempts:         attempts,
		}
	})
}
