package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeCreateSessionDefaults(t *testing.T) {
	t.Parallel()

	req, err := DecodeCreateSession(json.RawMessage(`{"pseudo":"alice"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.WordCount != 1 || req.WordLengthMode != "random" {
		t.Errorf("defaults not applied: %+v", req)
	}

	req, err = DecodeCreateSession(json.RawMessage(`{"pseudo":"alice","wordCount":3,"wordLengthMode":"progressive"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.WordCount != 3 || req.WordLengthMode != "progressive" {
		t.Errorf("explicit values lost: %+v", req)
	}

	for _, raw := range []string{`{}`, `{"pseudo":""}`, `not json`} {
		if _, err := DecodeCreateSession(json.RawMessage(raw)); !errors.Is(err, ErrMalformed) {
			t.Errorf("DecodeCreateSession(%s) must fail with ErrMalformed, got %v", raw, err)
		}
	}
}

func TestDecodeRequiredFields(t *testing.T) {
	t.Parallel()

	if _, err := DecodeJoinSession(json.RawMessage(`{"sessionId":"ABC123"}`)); !errors.Is(err, ErrMalformed) {
		t.Errorf("join without pseudo must fail, got %v", err)
	}
	if _, err := DecodeSubmitGuess(json.RawMessage(`{"sessionId":"ABC123"}`)); !errors.Is(err, ErrMalformed) {
		t.Errorf("guess without word must fail, got %v", err)
	}
	if _, err := DecodeStartGame(json.RawMessage(`{}`)); !errors.Is(err, ErrMalformed) {
		t.Errorf("start without sessionId must fail, got %v", err)
	}

	req, err := DecodeReconnect(json.RawMessage(`{"sessionId":"ABC123","pseudo":"alice"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.SessionID != "ABC123" || req.Pseudo != "alice" {
		t.Errorf("unexpected request: %+v", req)
	}
}
