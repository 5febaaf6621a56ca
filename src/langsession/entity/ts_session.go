// Package entity contains the domain types of the langsession service.
package entity

import (
	"encoding/json"
	"time"
)

type keyType string

// ConnectionContextKey indicates the key to be used to identify the JSON-RPC connection UUID in the context.
const ConnectionContextKey keyType = "ConnectionUUID"

// BackendVariant selects which analysis server implementation a session launches.
type BackendVariant string

const (
	// BackendTSServer is the default backend, tsserver.js from the typescript package run through node.
	BackendTSServer BackendVariant = "tsserver"
	// BackendNative is the alternate natively compiled backend.
	BackendNative BackendVariant = "native"
)

// ServerConfig is the caller supplied backend configuration for one session.
type ServerConfig struct {
	Variant    BackendVariant `json:"variant,omitempty" yaml:"variant"`
	BinaryPath string         `json:"binaryPath,omitempty" yaml:"binaryPath"`
}

// VariantOrDefault returns the configured variant, falling back to tsserver.
func (c ServerConfig) VariantOrDefault() BackendVariant {
	if c.Variant == "" {
		return BackendTSServer
	}
	return c.Variant
}

// Session is a point-in-time view of one supervised backend.
type Session struct {
	ID              string       `json:"id" zap:"id"`
	ProjectPath     string       `json:"projectPath" zap:"projectPath"`
	Config          ServerConfig `json:"config" zap:"config"`
	Alive           bool         `json:"alive" zap:"alive"`
	PID             int          `json:"pid" zap:"pid"`
	StartedAt       time.Time    `json:"startedAt" zap:"startedAt"`
	LastSeq         int          `json:"lastSeq" zap:"lastSeq"`
	PendingRequests int          `json:"pendingRequests" zap:"pendingRequests"`
	OpenFiles       int          `json:"openFiles" zap:"openFiles"`
}

// Topic is a category of session signal that can be subscribed to.
type Topic string

const (
	// TopicEvent carries every event pushed by the backend.
	TopicEvent Topic = "event"
	// TopicExit carries the exit of the backend process.
	TopicExit Topic = "exit"
	// TopicError carries process faults.
	TopicError Topic = "error"
	// TopicDiagnostics carries syntax and semantic diagnostics events under one name.
	TopicDiagnostics Topic = "diagnostics"
)

// AllTopics lists every Topic.
var AllTopics = []Topic{TopicEvent, TopicExit, TopicError, TopicDiagnostics}

// Valid reports whether t is a known topic.
func (t Topic) Valid() bool {
	switch t {
	case TopicEvent, TopicExit, TopicError, TopicDiagnostics:
		return true
	}
	return false
}

// SessionEvent is one signal published to subscribers, tagged with its session.
type SessionEvent struct {
	SessionID string          `json:"sessionId"`
	Topic     Topic           `json:"topic"`
	Event     string          `json:"event,omitempty"`
	Body      json.RawMessage `json:"body,omitempty"`
	ExitCode  *int            `json:"exitCode,omitempty"`
	Error     string          `json:"error,omitempty"`
}
