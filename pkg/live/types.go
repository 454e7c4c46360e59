package live

import "github.com/recera/slider/pkg/carousel"

// MessageType names a live protocol frame
type MessageType string

const (
	// Client to server
	MsgNext        MessageType = "next"
	MsgPrev        MessageType = "prev"
	MsgGoTo        MessageType = "goto"
	MsgDot         MessageType = "dot"
	MsgPointerDown MessageType = "pointerdown"
	MsgPointerMove MessageType = "pointermove"
	MsgPointerUp   MessageType = "pointerup"
	MsgResize      MessageType = "resize"

	// Server to client
	MsgHello MessageType = "hello"
	MsgState MessageType = "state"
	MsgError MessageType = "error"
)

// ClientMessage is a frame sent by the browser. Fields not used by a
// message type are left zero.
type ClientMessage struct {
	Type MessageType `json:"type"`

	// Index is the slide for goto and the dot for dot
	Index int `json:"index,omitempty"`

	// Pointer is "touch" or "mouse"
	Pointer   string  `json:"pointer,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	OnControl bool    `json:"onControl,omitempty"`

	// Measurements carried by resize
	Width       float64 `json:"width,omitempty"`
	SlideWidth  float64 `json:"slideWidth,omitempty"`
	SlideHeight float64 `json:"slideHeight,omitempty"`
}

// ServerMessage is a frame sent to the browser
type ServerMessage struct {
	Type    MessageType        `json:"type"`
	Seq     uint64             `json:"seq,omitempty"`
	Session string             `json:"session,omitempty"`
	State   *carousel.Snapshot `json:"state,omitempty"`
	Error   string             `json:"error,omitempty"`
}
