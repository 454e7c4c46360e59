package live

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/recera/slider/pkg/carousel"
)

var (
	// ErrUnknownMessage is returned for frames with an unsupported type
	ErrUnknownMessage = errors.New("unknown message type")

	// ErrMalformed is returned for frames that are not valid messages
	ErrMalformed = errors.New("malformed message")
)

// DecodeClientMessage parses and checks a client frame
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch msg.Type {
	case MsgNext, MsgPrev, MsgGoTo, MsgDot, MsgResize:
	case MsgPointerDown, MsgPointerMove, MsgPointerUp:
		if _, err := pointerKind(msg.Pointer); err != nil {
			return msg, err
		}
	case "":
		return msg, fmt.Errorf("%w: missing type", ErrMalformed)
	default:
		return msg, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return msg, nil
}

// pointerKind maps the wire name of a pointer to its kind
func pointerKind(name string) (carousel.PointerKind, error) {
	switch name {
	case "touch":
		return carousel.PointerTouch, nil
	case "mouse":
		return carousel.PointerMouse, nil
	}
	return 0, fmt.Errorf("%w: pointer %q", ErrMalformed, name)
}

// PointerEvent converts a pointer frame to a carousel event
func (m ClientMessage) PointerEvent() carousel.PointerEvent {
	kind, _ := pointerKind(m.Pointer)
	return carousel.PointerEvent{Kind: kind, X: m.X, Y: m.Y, OnControl: m.OnControl}
}

// EncodeServerMessage serializes a frame for the browser
func EncodeServerMessage(msg ServerMessage) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", msg.Type, err)
	}
	return data, nil
}
