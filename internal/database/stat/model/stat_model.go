package model

import "time"

// Stat is one finished multiplayer game from a single player's point of view.
func NewStat(pseudo string) Stat {
	return Stat{Pseudo: pseudo, CreatedAt: time.Now()}
}

type Stat struct {
	Pseudo       string        `json:"pseudo"`
	Points       int           `json:"points"`
	Completed    bool          `json:"completed"`
	Completion   time.Duration `json:"completion"`
	WordsFound   int           `json:"wordsFound"`
	WordCount    int           `json:"wordCount"`
	PlayersCount int           `json:"playersCount"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// AggregationStat is the profile view aggregated over all stored games.
type AggregationStat struct {
	Games          int           `json:"games"`
	Wins           int           `json:"wins"`
	TotalPoints    int           `json:"totalPoints"`
	AvgPoints      int           `json:"avgPoints"`
	BestCompletion time.Duration `json:"bestCompletion"`
	WordsFound     int           `json:"wordsFound"`
}
