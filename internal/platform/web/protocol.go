// Package web hosts rocket sessions over WebSocket. Clients send JSON
// envelopes; the server answers with msgpack snapshots as binary frames
// and a few JSON notices.
package web

import "encoding/json"

// Client -> server message types.
const (
	MsgInput   = "input"
	MsgResize  = "resize"
	MsgRestart = "restart"
)

// Server -> client message types (text frames).
const (
	MsgWelcome = "welcome"
	MsgOver    = "over"
	MsgError   = "error"
)

// InEnvelope is a client message; D is decoded according to T.
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// Envelope is a server text message.
type Envelope struct {
	T    string `json:"t"`
	Data any    `json:"d,omitempty"`
}

// InputMsg presses or releases one control: shoot, boost, left or right.
type InputMsg struct {
	Action  string `json:"action"`
	Pressed bool   `json:"pressed"`
}

// ResizeMsg asks for a fresh arena of the given size in arena units.
type ResizeMsg struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// WelcomeMsg is sent when a session starts or restarts.
type WelcomeMsg struct {
	GameID   string  `json:"game"`
	Width    float64 `json:"w"`
	Height   float64 `json:"h"`
	Seed     uint64  `json:"seed"`
	TickRate int     `json:"rate"`
}

// OverMsg is sent once when the run ends.
type OverMsg struct {
	Score int `json:"score"`
	Kills int `json:"kills"`
}

// ErrorMsg reports a rejected client message. The session keeps running.
type ErrorMsg struct {
	Msg string `json:"msg"`
}
