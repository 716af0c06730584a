package protocol

import (
	"encoding/json"
	"fmt"
)

// Client -> server event names.
const (
	EvtCreateSession = "create-session"
	EvtJoinSession   = "join-session"
	EvtReconnect     = "reconnect-to-session"
	EvtStartGame     = "start-game"
	EvtSubmitGuess   = "submit-guess"
	EvtTypingUpdate  = "typing-update"
	EvtReplaySession = "replay-session"
)

// Server -> client event names.
const (
	EvtSessionCreated      = "session-created"
	EvtSessionJoined       = "session-joined"
	EvtReconnected         = "reconnected-to-session"
	EvtPlayerJoined        = "player-joined"
	EvtGameStarted         = "game-started"
	EvtGuessResult         = "guess-result"
	EvtInvalidWord         = "invalid-word"
	EvtPlayerAttemptUpdate = "player-attempt-update"
	EvtPlayersUpdate       = "players-update"
	EvtPlayerWonWord       = "player-won-word"
	EvtPlayerChangedWord   = "player-changed-word"
	EvtNextWord            = "next-word"
	EvtPlayerFinished      = "player-finished"
	EvtPlayerCompleted     = "player-completed"
	EvtGameCompleted       = "game-completed"
	EvtSessionReset        = "session-reset"
	EvtPlayerLeft          = "player-left"
	EvtPlayerTyping        = "player-typing"
	EvtPromotedToAdmin     = "promoted-to-admin"
	EvtReconnectError      = "reconnect-error"
	EvtError               = "error"
)

// Frame is the wire envelope in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

var ErrMalformed = fmt.Errorf("malformed request")

type CreateSessionReq struct {
	Pseudo         string `json:"pseudo"`
	WordCount      int    `json:"wordCount"`
	WordLengthMode string `json:"wordLengthMode"`
}

type JoinSessionReq struct {
	SessionID string `json:"sessionId"`
	Pseudo    string `json:"pseudo"`
}

type ReconnectReq struct {
	SessionID string `json:"sessionId"`
	Pseudo    string `json:"pseudo"`
}

type StartGameReq struct {
	SessionID string `json:"sessionId"`
}

type SubmitGuessReq struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
}

type TypingUpdateReq struct {
	SessionID    string `json:"sessionId"`
	CurrentInput string `json:"currentInput"`
	WordNumber   int    `json:"wordNumber"`
}

type ReplaySessionReq struct {
	SessionID string `json:"sessionId"`
}

// DecodeCreateSession validates the create-session payload and applies the
// original defaults (wordCount 1, random length mode).
func DecodeCreateSession(data json.RawMessage) (CreateSessionReq, error) {
	var req CreateSessionReq
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if req.Pseudo == "" {
		return req, fmt.Errorf("%w: missing pseudo", ErrMalformed)
	}
	if req.WordCount < 1 {
		req.WordCount = 1
	}
	if req.WordLengthMode == "" {
		req.WordLengthMode = "random"
	}
	return req, nil
}

func DecodeJoinSession(data json.RawMessage) (JoinSessionReq, error) {
	var req JoinSessionReq
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if req.SessionID == "" || req.Pseudo == "" {
		return req, fmt.Errorf("%w: missing sessionId or pseudo", ErrMalformed)
	}
	return req, nil
}

func DecodeReconnect(data json.RawMessage) (ReconnectReq, error) {
	var req ReconnectReq
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if req.SessionID == "" || req.Pseudo == "" {
		return req, fmt.Errorf("%w: missing sessionId or pseudo", ErrMalformed)
	}
	return req, nil
}

func DecodeStartGame(data json.RawMessage) (StartGameReq, error) {
	var req StartGameReq
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if req.SessionID == "" {
		return req, fmt.Errorf("%w: missing sessionId", ErrMalformed)
	}
	return req, nil
}

func DecodeSubmitGuess(data json.RawMessage) (SubmitGuessReq, error) {
	var req SubmitGuessReq
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if req.SessionID == "" || req.Guess == "" {
		return req, fmt.Errorf("%w: missing sessionId or guess", ErrMalformed)
	}
	return req, nil
}

func DecodeTypingUpdate(data json.RawMessage) (TypingUpdateReq, error) {
	var req TypingUpdateReq
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if req.SessionID == "" {
		return req, fmt.Errorf("%w: missing sessionId", ErrMalformed)
	}
	return req, nil
}

func DecodeReplaySession(data json.RawMessage) (ReplaySessionReq, error) {
	var req ReplaySessionReq
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if req.SessionID == "" {
		return req, fmt.Errorf("%w: missing sessionId", ErrMalformed)
	}
	return req, nil
}
