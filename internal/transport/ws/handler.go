package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/motus-games/motus/internal/coordinator"
	"github.com/motus-games/motus/internal/logging"
	"github.com/motus-games/motus/internal/match"
	"github.com/motus-games/motus/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades connections and routes incoming frames to the
// coordinator.
type Handler struct {
	hub   *Hub
	coord *coordinator.Coordinator
}

func NewHandler(hub *Hub, coord *coordinator.Coordinator) *Handler {
	return &Handler{hub: hub, coord: coord}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("websocket upgrade: %v", err)
		return
	}

	client := newClient(uuid.NewString(), conn)
	h.hub.Register(client)
	go client.writePump()

	logger.Debugf("connection %s opened", client.ID)
	h.readLoop(r.Context(), client)
}

func (h *Handler) readLoop(ctx context.Context, client *Client) {
	defer func() {
		client.close()
		client.conn.Close()
		h.hub.Unregister(client)

		sessionID, emissions := h.coord.Disconnect(ctx, client.ID)
		if sessionID != "" {
			h.hub.Deliver(sessionID, emissions)
		}
		logging.FromContext(ctx).Debugf("connection %s closed", client.ID)
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.FromContext(ctx).Debugf("connection %s read: %v", client.ID, err)
			}
			return
		}

		var frame protocol.Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.sendError(client, protocol.EvtError, "Invalid message")
			continue
		}
		h.dispatch(ctx, client, frame)
	}
}

func (h *Handler) dispatch(ctx context.Context, client *Client, frame protocol.Frame) {
	switch frame.Event {
	case protocol.EvtCreateSession:
		req, err := protocol.DecodeCreateSession(frame.Data)
		if err != nil {
			h.sendError(client, protocol.EvtError, "Invalid message")
			return
		}
		code, emissions, err := h.coord.CreateSession(ctx, client.ID, req)
		if err != nil {
			h.sendError(client, protocol.EvtError, "Could not create session")
			return
		}
		h.hub.JoinRoom(code, client)
		h.hub.Deliver(code, emissions)

	case protocol.EvtJoinSession:
		req, err := protocol.DecodeJoinSession(frame.Data)
		if err != nil {
			h.sendError(client, protocol.EvtError, "Invalid message")
			return
		}
		emissions, err := h.coord.Join(ctx, client.ID, req)
		switch {
		case errors.Is(err, coordinator.ErrSessionNotFound):
			h.sendError(client, protocol.EvtError, "Session not found")
		case errors.Is(err, match.ErrGameStarted):
			h.sendError(client, protocol.EvtError, "Game already started")
		case err != nil:
			h.sendError(client, protocol.EvtError, "Could not join session")
		default:
			h.hub.JoinRoom(req.SessionID, client)
			h.hub.Deliver(req.SessionID, emissions)
		}

	case protocol.EvtReconnect:
		req, err := protocol.DecodeReconnect(frame.Data)
		if err != nil {
			h.sendError(client, protocol.EvtReconnectError, "Session introuvable ou expirée")
			return
		}
		emissions, err := h.coord.Reconnect(ctx, client.ID, req)
		if err != nil {
			h.sendError(client, protocol.EvtReconnectError, "Session introuvable ou expirée")
			return
		}
		h.hub.JoinRoom(req.SessionID, client)
		h.hub.Deliver(req.SessionID, emissions)

	case protocol.EvtStartGame:
		req, err := protocol.DecodeStartGame(frame.Data)
		if err != nil {
			h.sendError(client, protocol.EvtError, "Invalid message")
			return
		}
		emissions, err := h.coord.Start(ctx, client.ID, req)
		if err != nil {
			h.sendError(client, protocol.EvtError, "Could not start game")
			return
		}
		h.hub.Deliver(req.SessionID, emissions)

	case protocol.EvtSubmitGuess:
		req, err := protocol.DecodeSubmitGuess(frame.Data)
		if err != nil {
			h.sendError(client, protocol.EvtError, "Invalid message")
			return
		}
		emissions, err := h.coord.SubmitGuess(ctx, client.ID, req)
		if err != nil {
			h.sendError(client, protocol.EvtError, "Could not submit guess")
			return
		}
		h.hub.Deliver(req.SessionID, emissions)

	case protocol.EvtTypingUpdate:
		req, err := protocol.DecodeTypingUpdate(frame.Data)
		if err != nil {
			return
		}
		emissions, err := h.coord.Typing(ctx, client.ID, req)
		if err != nil {
			return
		}
		h.hub.Deliver(req.SessionID, emissions)

	case protocol.EvtReplaySession:
		req, err := protocol.DecodeReplaySession(frame.Data)
		if err != nil {
			h.sendError(client, protocol.EvtError, "Invalid message")
			return
		}
		emissions, err := h.coord.Replay(ctx, req)
		if errors.Is(err, coordinator.ErrSessionNotFound) {
			h.sendError(client, protocol.EvtError, "Session not found")
			return
		}
		if err != nil {
			h.sendError(client, protocol.EvtError, "Could not reset session")
			return
		}
		h.hub.Deliver(req.SessionID, emissions)

	default:
		logging.FromContext(ctx).Debugf("unknown event %q from %s", frame.Event, client.ID)
	}
}

func (h *Handler) sendError(client *Client, event, message string) {
	data, err := json.Marshal(protocol.ErrorPayload{Message: message})
	if err != nil {
		return
	}
	h.hub.Send(client.ID, protocol.Frame{Event: event, Data: data})
}
