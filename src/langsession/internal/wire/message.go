// Package wire implements the request/response/event framing spoken by tsserver-style analysis backends.
package wire

import (
	"encoding/json"
	stderr "errors"
	"fmt"
)

// Message type discriminants.
const (
	TypeRequest  = "request"
	TypeResponse = "response"
	TypeEvent    = "event"
)

// Request is an outbound command addressed to the backend.
type Request struct {
	Seq       int         `json:"seq"`
	Type      string      `json:"type"`
	Command   string      `json:"command"`
	Arguments interface{} `json:"arguments,omitempty"`
}

// Message is one decoded inbound value: a *Response, an *Event or an *Unrecognized.
type Message interface {
	isMessage()
}

// Response answers the request whose seq equals RequestSeq.
type Response struct {
	RequestSeq int             `json:"request_seq"`
	Success    bool            `json:"success"`
	Command    string          `json:"command,omitempty"`
	Message    string          `json:"message,omitempty"`
	Body       json.RawMessage `json:"body,omitempty"`
}

// Event is an unsolicited message pushed by the backend.
type Event struct {
	Event string          `json:"event"`
	Body  json.RawMessage `json:"body,omitempty"`
}

// Unrecognized is any JSON value that is neither a response nor an event.
type Unrecognized struct {
	Raw json.RawMessage
}

func (*Response) isMessage()     {}
func (*Event) isMessage()        {}
func (*Unrecognized) isMessage() {}

type envelope struct {
	Type       string          `json:"type"`
	RequestSeq *int            `json:"request_seq"`
	Success    bool            `json:"success"`
	Command    string          `json:"command"`
	Message    string          `json:"message"`
	Event      string          `json:"event"`
	Body       json.RawMessage `json:"body"`
}

// Parse decodes a single JSON value into its message shape.
// It only fails when data is not valid JSON; well-formed values of any other shape are returned as *Unrecognized.
func Parse(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderr.As(err, &typeErr) {
			return &Unrecognized{Raw: append(json.RawMessage(nil), data...)}, nil
		}
		return nil, err
	}

	switch {
	case env.Type == TypeResponse && env.RequestSeq != nil:
		return &Response{
			RequestSeq: *env.RequestSeq,
			Success:    env.Success,
			Command:    env.Command,
			Message:    env.Message,
			Body:       env.Body,
		}, nil
	case env.Type == TypeEvent && env.Event != "":
		return &Event{
			Event: env.Event,
			Body:  env.Body,
		}, nil
	default:
		return &Unrecognized{Raw: append(json.RawMessage(nil), data...)}, nil
	}
}

// EncodeRequest serializes a request as a single newline-terminated JSON line.
func EncodeRequest(req Request) ([]byte, error) {
	if req.Type == "" {
		req.Type = TypeRequest
	}
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding %q request: %w", req.Command, err)
	}
	return append(b, '\n'), nil
}
