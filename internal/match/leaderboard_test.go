package match

import (
	"testing"
	"time"
)

func completedPlayer(pseudo string, totalScore int, completion time.Duration) *Player {
	p := NewPlayer(pseudo, pseudo, 1)
	p.State = PlayerCompleted
	p.TotalScore = totalScore
	p.StartTime = time.Unix(0, 0)
	p.EndTime = p.StartTime.Add(completion)
	return p
}

func activePlayer(pseudo string, totalScore int) *Player {
	p := NewPlayer(pseudo, pseudo, 1)
	p.TotalScore = totalScore
	return p
}

func eliminatedPlayer(pseudo string, totalScore int) *Player {
	p := NewPlayer(pseudo, pseudo, 1)
	p.State = PlayerEliminated
	p.TotalScore = totalScore
	p.StartTime = time.Unix(0, 0)
	p.EndTime = p.StartTime.Add(time.Minute)
	return p
}

func TestBuildLeaderboardOrder(t *testing.T) {
	t.Parallel()

	players := []*Player{
		activePlayer("alice", 3),
		completedPlayer("bob", 5, 90*time.Second),
		eliminatedPlayer("carol", 1),
		completedPlayer("dave", 2, 30*time.Second),
	}

	entries := BuildLeaderboard(players)

	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Pseudo)
	}
	want := []string{"dave", "bob", "alice", "carol"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ranking = %v, want %v", got, want)
		}
	}

	if entries[0].CompletionTime == nil || *entries[0].CompletionTime != 30_000 {
		t.Errorf("dave's completion time wrong: %v", entries[0].CompletionTime)
	}
	if entries[3].CompletionTime != nil {
		t.Error("eliminated player must have a null completion time")
	}
}

func TestBuildLeaderboardFillsEmptyRounds(t *testing.T) {
	t.Parallel()

	p := NewPlayer("id", "alice", 3)
	p.score(1).Attempts = 2

	entries := BuildLeaderboard([]*Player{p})
	scores := entries[0].Scores
	if len(scores) != 3 {
		t.Fatalf("want one row per round, got %d", len(scores))
	}
	if scores[0].WordNumber != 1 || scores[0].Attempts != 0 || scores[0].Guesses == nil {
		t.Errorf("untouched round must render as zero attempts: %+v", scores[0])
	}
	if scores[1].Attempts != 2 {
		t.Errorf("recorded attempts lost: %+v", scores[1])
	}
}
