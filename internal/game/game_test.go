package game

import "testing"

func statuses(result []LetterResult) []Status {
	out := make([]Status, len(result))
	for i, lr := range result {
		out[i] = lr.Status
	}
	return out
}

func assertStatuses(t *testing.T, got []LetterResult, want ...Status) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d letters, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Status != want[i] {
			t.Errorf("position %d: expected %s, got %s (full result %v)", i, want[i], got[i].Status, statuses(got))
		}
	}
}

func TestEvaluateExactMatch(t *testing.T) {
	for _, w := range []string{"SALADE", "TOMATES", "AUBERGINE"} {
		result := Evaluate(w, w)
		if !AllCorrect(result) {
			t.Errorf("evaluate(%q, %q) should be all correct, got %v", w, w, statuses(result))
		}
	}
}

func TestEvaluateSingleUseLetters(t *testing.T) {
	// one M left after the exact match at position 3: the loose Ms at
	// positions 0 and 2 have no target letter left to consume
	result := Evaluate("SALMON", "MAMMAN")
	assertStatuses(t, result,
		StatusAbsent, StatusCorrect, StatusAbsent, StatusCorrect, StatusAbsent, StatusCorrect)
}

func TestEvaluatePositionalPriority(t *testing.T) {
	// the exact match at position 3 consumes the target letter before the
	// left-to-right present scan can
	result := Evaluate("ABCA", "AAXA")
	assertStatuses(t, result, StatusCorrect, StatusAbsent, StatusAbsent, StatusCorrect)
}

func TestEvaluateRepeatedLetterBudget(t *testing.T) {
	result := Evaluate("POMMES", "MEMMES")
	marks := 0
	for _, lr := range result {
		if lr.Letter == "M" && (lr.Status == StatusCorrect || lr.Status == StatusPresent) {
			marks++
		}
	}
	if marks > 2 {
		t.Errorf("target has two Ms, got %d correct/present marks: %v", marks, statuses(result))
	}
}

func TestEvaluateLongerGuess(t *testing.T) {
	// A valid dictionary word can be longer than the target. The overflow
	// letters never match positionally and the result is never all correct.
	result := Evaluate("SALADE", "SALADES")
	if len(result) != 7 {
		t.Fatalf("expected one mark per guess letter, got %d", len(result))
	}
	if AllCorrect(result) {
		t.Error("a longer guess must not count as an exact match")
	}
	if result[6].Status != StatusAbsent {
		t.Errorf("overflow letter must be absent, got %v", result[6].Status)
	}
}

func TestPoints(t *testing.T) {
	cases := map[int]int{1: 6, 2: 5, 3: 4, 4: 3, 5: 2, 6: 1}
	for attempts, want := range cases {
		if got := Points(attempts); got != want {
			t.Errorf("Points(%d) = %d, expected %d", attempts, got, want)
		}
	}
}
