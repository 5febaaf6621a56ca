package entity

import "github.com/gofrs/uuid"

// StartServerParams are the parameters of a start request.
type StartServerParams struct {
	SessionID   string       `json:"sessionId"`
	ProjectPath string       `json:"projectPath"`
	Config      ServerConfig `json:"config"`
}

// SessionParams identify a session.
type SessionParams struct {
	SessionID string `json:"sessionId"`
}

// FileParams identify a file within a session. File is either an absolute path or a file URI.
type FileParams struct {
	SessionID string `json:"sessionId"`
	File      string `json:"file"`
	Content   string `json:"content,omitempty"`
}

// PositionParams identify a 1-based position within a file.
type PositionParams struct {
	SessionID string `json:"sessionId"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Offset    int    `json:"offset"`
}

// CompletionDetailsParams select completion entries to describe.
type CompletionDetailsParams struct {
	PositionParams
	EntryNames []string `json:"entryNames"`
}

// SubscribeParams select the session and topics of a subscription.
// An empty SessionID subscribes to every session, and no topics means all topics.
type SubscribeParams struct {
	SessionID string  `json:"sessionId"`
	Topics    []Topic `json:"topics,omitempty"`
}

// SubscribeResult identifies a created subscription.
type SubscribeResult struct {
	SubscriptionID uuid.UUID `json:"subscriptionId"`
}

// UnsubscribeParams identify a subscription to cancel.
type UnsubscribeParams struct {
	SubscriptionID uuid.UUID `json:"subscriptionId"`
}

// AliveResult answers whether a session is alive.
type AliveResult struct {
	Alive bool `json:"alive"`
}
