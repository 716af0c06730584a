package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	statModel "github.com/motus-games/motus/internal/database/stat/model"
	"github.com/motus-games/motus/internal/logging"
	"github.com/motus-games/motus/internal/match"
	"github.com/motus-games/motus/internal/protocol"
	"github.com/motus-games/motus/internal/util"
)

const (
	codeLength      = 6
	codeDrawRetries = 16
)

var ErrSessionNotFound = errors.New("session not found")

// StatRecorder persists one finished game per player. A nil recorder
// disables stat keeping.
type StatRecorder interface {
	Add(stat statModel.Stat) error
}

type Config struct {
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

// Coordinator owns the multiplayer session registry and routes connection
// events to the right session.
type Coordinator struct {
	mtx      sync.RWMutex
	sessions map[string]*match.Session
	byConn   map[string]string // connID -> sessionID

	config Config
	source match.WordSource
	stats  StatRecorder
}

func New(config Config, source match.WordSource, stats StatRecorder) *Coordinator {
	return &Coordinator{
		sessions: make(map[string]*match.Session),
		byConn:   make(map[string]string),
		config:   config,
		source:   source,
		stats:    stats,
	}
}

func (c *Coordinator) session(sessionID string) (*match.Session, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	session, ok := c.sessions[sessionID]
	return session, ok
}

func (c *Coordinator) bind(connID, sessionID string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.byConn[connID] = sessionID
}

// CreateSession registers a new session under a freshly drawn room code.
func (c *Coordinator) CreateSession(ctx context.Context, connID string, req protocol.CreateSessionReq) (string, []protocol.Emission, error) {
	mode, err := match.ParseMode(req.WordLengthMode)
	if err != nil {
		return "", nil, err
	}
	config := match.Config{WordCount: req.WordCount, WordLengthMode: mode}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	var code string
	for i := 0; i < codeDrawRetries; i++ {
		code = util.GenerateCode(codeLength)
		if _, taken := c.sessions[code]; !taken {
			break
		}
		code = ""
	}
	if code == "" {
		return "", nil, fmt.Errorf("room code space exhausted")
	}

	session, emissions, err := match.NewSession(code, connID, req.Pseudo, config, c.source)
	if err != nil {
		return "", nil, err
	}
	c.sessions[code] = session
	c.byConn[connID] = code

	logging.FromContext(ctx).Infof("session %s created by %s", code, req.Pseudo)
	return code, emissions, nil
}

func (c *Coordinator) Join(ctx context.Context, connID string, req protocol.JoinSessionReq) ([]protocol.Emission, error) {
	session, ok := c.session(req.SessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	emissions, err := session.Join(connID, req.Pseudo)
	if err != nil {
		return nil, err
	}
	c.bind(connID, req.SessionID)
	logging.FromContext(ctx).Infof("%s joined session %s", req.Pseudo, req.SessionID)
	return emissions, nil
}

func (c *Coordinator) Reconnect(ctx context.Context, connID string, req protocol.ReconnectReq) ([]protocol.Emission, error) {
	session, ok := c.session(req.SessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	emissions, err := session.Reconnect(connID, req.Pseudo)
	if err != nil {
		return nil, err
	}
	c.bind(connID, req.SessionID)
	logging.FromContext(ctx).Infof("%s reconnected to session %s", req.Pseudo, req.SessionID)
	return emissions, nil
}

func (c *Coordinator) Start(ctx context.Context, connID string, req protocol.StartGameReq) ([]protocol.Emission, error) {
	session, ok := c.session(req.SessionID)
	if !ok {
		return nil, nil
	}
	emissions, err := session.Start(connID)
	if err != nil {
		return nil, err
	}
	if len(emissions) > 0 {
		logging.FromContext(ctx).Infof("game started in session %s", req.SessionID)
	}
	return emissions, nil
}

func (c *Coordinator) SubmitGuess(ctx context.Context, connID string, req protocol.SubmitGuessReq) ([]protocol.Emission, error) {
	session, ok := c.session(req.SessionID)
	if !ok {
		return nil, nil
	}
	emissions, err := session.SubmitGuess(connID, req.Guess)
	if err != nil {
		return nil, err
	}
	c.recordIfCompleted(ctx, req.SessionID, emissions)
	return emissions, nil
}

func (c *Coordinator) Typing(_ context.Context, connID string, req protocol.TypingUpdateReq) ([]protocol.Emission, error) {
	session, ok := c.session(req.SessionID)
	if !ok {
		return nil, nil
	}
	return session.Typing(connID, req.CurrentInput)
}

func (c *Coordinator) Replay(ctx context.Context, req protocol.ReplaySessionReq) ([]protocol.Emission, error) {
	session, ok := c.session(req.SessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	emissions, err := session.Replay()
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Infof("session %s reset for replay", req.SessionID)
	return emissions, nil
}

// Disconnect removes the connection's player from its session. The caller
// gets the session id back so the transport can route the emissions.
func (c *Coordinator) Disconnect(ctx context.Context, connID string) (string, []protocol.Emission) {
	c.mtx.Lock()
	sessionID, ok := c.byConn[connID]
	if ok {
		delete(c.byConn, connID)
	}
	session := c.sessions[sessionID]
	c.mtx.Unlock()

	if !ok || session == nil {
		return "", nil
	}

	emissions, err := session.RemovePlayer(connID)
	if err != nil {
		return "", nil
	}

	if c.dropIfEmpty(ctx, sessionID, session) {
		return "", nil
	}
	return sessionID, emissions
}

// dropIfEmpty deletes the session when it still has no players under the
// registry write lock. A join landing after the last disconnect keeps the
// session alive.
func (c *Coordinator) dropIfEmpty(ctx context.Context, sessionID string, session *match.Session) bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if !session.Empty() {
		return false
	}
	delete(c.sessions, sessionID)
	logging.FromContext(ctx).Infof("session %s deleted, no players left", sessionID)
	return true
}

func (c *Coordinator) sessionID(connID string) (string, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	sessionID, ok := c.byConn[connID]
	return sessionID, ok
}

// Len reports the number of live sessions.
func (c *Coordinator) Len() int {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return len(c.sessions)
}

// Run sweeps expired sessions until the context is cancelled.
func (c *Coordinator) Run(ctx context.Context) {
	ticker := time.NewTicker(c.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep(ctx, time.Now())
		}
	}
}

func (c *Coordinator) sweep(ctx context.Context, now time.Time) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	for id, session := range c.sessions {
		if session.Expired(c.config.SessionTTL, now) {
			delete(c.sessions, id)
			logging.FromContext(ctx).Infof("session %s expired", id)
		}
	}
}

// recordIfCompleted persists one stat row per player when a guess closed
// the whole game.
func (c *Coordinator) recordIfCompleted(ctx context.Context, sessionID string, emissions []protocol.Emission) {
	if c.stats == nil {
		return
	}

	for _, e := range emissions {
		if e.Event != protocol.EvtGameCompleted {
			continue
		}
		payload, ok := e.Data.(match.LeaderboardPayload)
		if !ok {
			continue
		}
		logging.FromContext(ctx).Infof("game completed in session %s", sessionID)
		for _, entry := range payload.Leaderboard {
			stat := statModel.NewStat(entry.Pseudo)
			stat.Points = entry.TotalScore
			stat.PlayersCount = len(payload.Leaderboard)
			stat.WordCount = len(entry.Scores)
			for _, score := range entry.Scores {
				if score.Found {
					stat.WordsFound++
				}
			}
			if entry.CompletionTime != nil {
				stat.Completed = true
				stat.Completion = time.Duration(*entry.CompletionTime) * time.Millisecond
			}
			if err := c.stats.Add(stat); err != nil {
				logging.FromContext(ctx).Errorf("record stat for %s: %v", entry.Pseudo, err)
			}
		}
		return
	}
}
