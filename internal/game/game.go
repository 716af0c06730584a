package game

import "strings"

// MaxAttempts is the hard per-word guess limit.
const MaxAttempts = 6

// Normalize uppercases a raw guess the way the dictionary stores words.
func Normalize(guess string) string {
	return strings.ToUpper(strings.TrimSpace(guess))
}

type Status string

const (
	StatusCorrect Status = "correct"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

type LetterResult struct {
	Letter string `json:"letter"`
	Status Status `json:"status"`
}

// Evaluate scores a guess against a target using the standard two-pass
// rule: exact positions first, then leftover letters left to right, each
// target letter consumed at most once. A repeated guess letter can never
// collect more correct+present marks than its occurrence count in the
// target. A guess longer than the target marks the overflow absent.
func Evaluate(target, guess string) []LetterResult {
	targetRunes := []rune(target)
	guessRunes := []rune(guess)

	result := make([]LetterResult, len(guessRunes))
	used := make([]bool, len(targetRunes))

	for i, r := range guessRunes {
		result[i] = LetterResult{Letter: string(r), Status: StatusAbsent}
		if i < len(targetRunes) && r == targetRunes[i] {
			result[i].Status = StatusCorrect
			used[i] = true
		}
	}

	for i, r := range guessRunes {
		if result[i].Status != StatusAbsent {
			continue
		}
		for j, tr := range targetRunes {
			if !used[j] && r == tr {
				result[i].Status = StatusPresent
				used[j] = true
				break
			}
		}
	}

	return result
}

// AllCorrect reports whether every letter was an exact match.
func AllCorrect(result []LetterResult) bool {
	for _, lr := range result {
		if lr.Status != StatusCorrect {
			return false
		}
	}
	return len(result) > 0
}

// Points awards 6 points for a first-attempt win down to 1 point for a
// sixth-attempt win.
func Points(attempts int) int {
	points := 7 - attempts
	if points < 1 {
		points = 1
	}
	return points
}
