package match

import "sort"

// LeaderboardEntry is one row of the end-of-game ranking.
type LeaderboardEntry struct {
	Pseudo         string           `json:"pseudo"`
	TotalScore     int              `json:"totalScore"`
	CompletionTime *int64           `json:"completionTime"`
	Scores         []WordScoreEntry `json:"scores"`
}

type WordScoreEntry struct {
	WordNumber int           `json:"wordNumber"`
	Attempts   int           `json:"attempts"`
	Found      bool          `json:"found"`
	Guesses    []GuessRecord `json:"guesses"`
}

// BuildLeaderboard ranks players with finishers first. Finishers sort by
// ascending completion time, everyone else by descending total score.
func BuildLeaderboard(players []*Player) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(players))
	for _, p := range players {
		scores := make([]WordScoreEntry, 0, len(p.Scores))
		for i, score := range p.Scores {
			if score == nil {
				score = &WordScore{}
			}
			guesses := score.Guesses
			if guesses == nil {
				guesses = []GuessRecord{}
			}
			scores = append(scores, WordScoreEntry{
				WordNumber: i + 1,
				Attempts:   score.Attempts,
				Found:      score.Found,
				Guesses:    guesses,
			})
		}
		entries = append(entries, LeaderboardEntry{
			Pseudo:         p.Pseudo,
			TotalScore:     p.TotalScore,
			CompletionTime: p.CompletionMillis(),
			Scores:         scores,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.CompletionTime != nil && b.CompletionTime == nil:
			return true
		case a.CompletionTime == nil && b.CompletionTime != nil:
			return false
		case a.CompletionTime != nil && b.CompletionTime != nil:
			return *a.CompletionTime < *b.CompletionTime
		default:
			return a.TotalScore > b.TotalScore
		}
	})

	return entries
}
