package protocol

// Scope selects the recipients of an Emission.
type Scope uint8

const (
	ScopeConn Scope = iota + 1
	ScopeRoom
	ScopeRoomExcept
)

// Emission is a server event produced by a session operation. Operations
// return emissions instead of writing to sockets so the transport can
// deliver them after the session lock is released.
type Emission struct {
	Scope  Scope
	ConnID string // target for ScopeConn, excluded conn for ScopeRoomExcept
	Event  string
	Data   interface{}
}

func ToConn(connID, event string, data interface{}) Emission {
	return Emission{Scope: ScopeConn, ConnID: connID, Event: event, Data: data}
}

func ToRoom(event string, data interface{}) Emission {
	return Emission{Scope: ScopeRoom, Event: event, Data: data}
}

func ToRoomExcept(connID, event string, data interface{}) Emission {
	return Emission{Scope: ScopeRoomExcept, ConnID: connID, Event: event, Data: data}
}

type ErrorPayload struct {
	Message string `json:"message"`
}
