package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/joeydtaylor/pusher-relay/pkg/codec"
	"github.com/joeydtaylor/pusher-relay/pkg/config"
)

const (
	// DefaultMessage replaces a missing "message" field in message mode.
	DefaultMessage = "hello world"
	// DefaultPassthroughMessage is published when passthrough mode gets no body.
	DefaultPassthroughMessage = "Hello from Pusher server!"
)

// ErrInvalidBody is returned for request bodies that are not valid JSON.
var ErrInvalidBody = errors.New("relay: invalid JSON body")

// Payload is the shaped event data plus the text echoed back to the caller.
type Payload struct {
	Data any
	Text string
}

// PayloadStrategy turns a raw request body into event data.
type PayloadStrategy interface {
	Shape(body []byte) (Payload, error)
}

// StrategyFor returns the strategy for mode.
func StrategyFor(mode config.PayloadMode) (PayloadStrategy, error) {
	switch mode {
	case config.PayloadMessage, "":
		return MessageField{}, nil
	case config.PayloadPassthrough:
		return Passthrough{}, nil
	}
	return nil, fmt.Errorf("relay: unknown payload mode %q", mode)
}

type messageData struct {
	Message any `json:"message"`
}

// MessageField publishes only the body's "message" field. Falsy values
// (absent, null, "", false, 0) fall back to DefaultMessage.
type MessageField struct{}

func (MessageField) Shape(body []byte) (Payload, error) {
	var msg any
	if !codec.IsBlank(body) {
		var v any
		if err := codec.JSON.Unmarshal(body, &v); err != nil {
			return Payload{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		if obj, ok := v.(map[string]any); ok {
			msg = obj["message"]
		}
	}
	if isFalsy(msg) {
		msg = DefaultMessage
	}

	if s, ok := msg.(string); ok {
		return Payload{Data: messageData{Message: s}, Text: s}, nil
	}
	text, err := codec.JSON.Marshal(msg)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return Payload{Data: messageData{Message: msg}, Text: string(text)}, nil
}

// Passthrough publishes the body verbatim. An empty body, null or {} is
// replaced by {"message": DefaultPassthroughMessage}.
type Passthrough struct{}

var defaultPassthrough = json.RawMessage(`{"message":"` + DefaultPassthroughMessage + `"}`)

func (Passthrough) Shape(body []byte) (Payload, error) {
	if codec.IsBlank(body) {
		return Payload{Data: defaultPassthrough, Text: string(defaultPassthrough)}, nil
	}
	raw, err := codec.Compact(body)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	switch string(raw) {
	case "null", "{}":
		raw = defaultPassthrough
	}
	return Payload{Data: raw, Text: string(raw)}, nil
}

func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case json.Number:
		f, err := strconv.ParseFloat(string(x), 64)
		return err == nil && f == 0
	}
	return false
}
