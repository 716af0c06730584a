package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	statModel "github.com/motus-games/motus/internal/database/stat/model"
	"github.com/motus-games/motus/internal/protocol"
)

type stubSource struct {
	word string
	dict map[string]bool
}

func (s *stubSource) RandomWord(length int) (string, error) { return s.word, nil }
func (s *stubSource) Contains(word string) bool             { return s.dict[word] }

type memRecorder struct {
	stats []statModel.Stat
}

func (r *memRecorder) Add(stat statModel.Stat) error {
	r.stats = append(r.stats, stat)
	return nil
}

func newTestCoordinator(recorder StatRecorder) *Coordinator {
	source := &stubSource{word: "SALADE", dict: map[string]bool{"SALADE": true, "SALUES": true}}
	return New(Config{SessionTTL: time.Hour, SweepInterval: time.Minute}, source, recorder)
}

func createSession(t *testing.T, c *Coordinator, connID, pseudo string) string {
	t.Helper()
	code, emissions, err := c.CreateSession(context.Background(), connID, protocol.CreateSessionReq{
		Pseudo:         pseudo,
		WordCount:      1,
		WordLengthMode: "fixed-6",
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(code) != codeLength {
		t.Fatalf("unexpected room code %q", code)
	}
	if len(emissions) == 0 || emissions[0].Event != protocol.EvtSessionCreated {
		t.Fatalf("missing session-created emission")
	}
	return code
}

func TestCreateAndLookup(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(nil)
	code := createSession(t, c, "conn-1", "alice")

	if got, ok := c.sessionID("conn-1"); !ok || got != code {
		t.Errorf("creator not bound to session: %q %v", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("want 1 session, got %d", c.Len())
	}

	if _, err := c.Join(context.Background(), "conn-2", protocol.JoinSessionReq{
		SessionID: "ZZZZZZ",
		Pseudo:    "bob",
	}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}

	if _, err := c.Join(context.Background(), "conn-2", protocol.JoinSessionReq{
		SessionID: code,
		Pseudo:    "bob",
	}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if got, _ := c.sessionID("conn-2"); got != code {
		t.Error("joiner not bound to session")
	}
}

func TestDisconnectDeletesEmptySession(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(nil)
	code := createSession(t, c, "conn-1", "alice")

	sessionID, emissions := c.Disconnect(context.Background(), "conn-1")
	if sessionID != "" || len(emissions) != 0 {
		t.Errorf("last disconnect must not emit, got %q %v", sessionID, emissions)
	}
	if c.Len() != 0 {
		t.Errorf("empty session %s must be deleted", code)
	}
	if _, ok := c.sessionID("conn-1"); ok {
		t.Error("connection binding must be dropped")
	}
}

func TestDisconnectKeepsRepopulatedSession(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(nil)
	code := createSession(t, c, "conn-1", "alice")
	session, ok := c.session(code)
	if !ok {
		t.Fatalf("session %s not registered", code)
	}

	// Bob joins between alice's removal and the registry delete.
	if _, err := session.RemovePlayer("conn-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := session.Join("conn-2", "bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	if c.dropIfEmpty(context.Background(), code, session) {
		t.Error("session with a fresh player must not be dropped")
	}
	if c.Len() != 1 {
		t.Fatalf("want 1 session, got %d", c.Len())
	}

	// Once truly empty the drop goes through.
	if _, err := session.RemovePlayer("conn-2"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !c.dropIfEmpty(context.Background(), code, session) {
		t.Error("empty session must be dropped")
	}
	if c.Len() != 0 {
		t.Errorf("want 0 sessions, got %d", c.Len())
	}
}

func TestDisconnectPromotesSurvivor(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(nil)
	code := createSession(t, c, "conn-1", "alice")
	if _, err := c.Join(context.Background(), "conn-2", protocol.JoinSessionReq{SessionID: code, Pseudo: "bob"}); err != nil {
		t.Fatalf("join: %v", err)
	}

	sessionID, emissions := c.Disconnect(context.Background(), "conn-1")
	if sessionID != code {
		t.Fatalf("want session %s, got %q", code, sessionID)
	}

	var promoted, left bool
	for _, e := range emissions {
		switch e.Event {
		case protocol.EvtPromotedToAdmin:
			promoted = e.ConnID == "conn-2"
		case protocol.EvtPlayerLeft:
			left = true
		}
	}
	if !promoted || !left {
		t.Errorf("expected promotion and player-left, got %+v", emissions)
	}
}

func TestSweepDropsExpiredSessions(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(nil)
	createSession(t, c, "conn-1", "alice")
	if c.Len() != 1 {
		t.Fatalf("want 1 session, got %d", c.Len())
	}

	c.sweep(context.Background(), time.Now().Add(30*time.Minute))
	if c.Len() != 1 {
		t.Error("session swept before its ttl")
	}

	c.sweep(context.Background(), time.Now().Add(2*time.Hour))
	if c.Len() != 0 {
		t.Error("expired session survived the sweep")
	}
}

func TestGameCompletedRecordsStats(t *testing.T) {
	t.Parallel()

	recorder := &memRecorder{}
	c := newTestCoordinator(recorder)
	code := createSession(t, c, "conn-1", "alice")

	ctx := context.Background()
	if _, err := c.Start(ctx, "conn-1", protocol.StartGameReq{SessionID: code}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := c.SubmitGuess(ctx, "conn-1", protocol.SubmitGuessReq{SessionID: code, Guess: "SALADE"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(recorder.stats) != 1 {
		t.Fatalf("want 1 stat row, got %d", len(recorder.stats))
	}
	stat := recorder.stats[0]
	if stat.Pseudo != "alice" || !stat.Completed || stat.Points != 6 || stat.WordsFound != 1 {
		t.Errorf("unexpected stat: %+v", stat)
	}
}
