package network

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/amalg/go-boomberman/internal/game"
)

// MaxFrameSize bounds a single relay frame. A full snapshot of the default
// board is well under this.
const MaxFrameSize = 1 << 20

// MsgType identifies the type of relay message.
type MsgType string

const (
	MsgHello   MsgType = "hello"
	MsgWelcome MsgType = "welcome"
	MsgState   MsgType = "state"
	MsgError   MsgType = "error"
)

// Envelope wraps all messages with a type discriminator for deserialization.
type Envelope struct {
	Type    MsgType         `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// HelloMsg opens a spectator session.
type HelloMsg struct {
	Name string `json:"name"`
}

// WelcomeMsg answers a hello with the host's identity and rules.
type WelcomeMsg struct {
	Host   string          `json:"host"`
	Config game.GameConfig `json:"config"`
}

// StateMsg carries one snapshot.
type StateMsg struct {
	State game.GameState `json:"state"`
}

// ErrorMsg notifies the peer of a protocol error.
type ErrorMsg struct {
	Message string `json:"message"`
}

// Encode writes one frame: a 4-byte big-endian length followed by the JSON
// envelope. The frame is assembled first so it reaches w in a single write.
func Encode(w io.Writer, msgType MsgType, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", msgType, err)
	}

	body, err := json.Marshal(Envelope{Type: msgType, Payload: raw})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if len(body) > MaxFrameSize {
		return fmt.Errorf("%s frame too large: %d bytes", msgType, len(body))
	}

	frame := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(frame, uint32(len(body)))
	copy(frame[4:], body)
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write %s frame: %w", msgType, err)
	}
	return nil
}

// Decode reads one frame written by Encode.
func Decode(r io.Reader) (*Envelope, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read length: %w", err)
	}

	length := binary.BigEndian.Uint32(header[:])
	if length > MaxFrameSize {
		return nil, fmt.Errorf("frame too large: %d bytes", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return &env, nil
}

// DecodePayload unmarshals the payload from an envelope into the target struct.
func DecodePayload(env *Envelope, target any) error {
	if err := json.Unmarshal(env.Payload, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return nil
}
