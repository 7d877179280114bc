// Package domain holds the shared types of the assistant: conversation
// turns, sessions, messages, and the channel contract.
package domain

import "time"

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single role-tagged message in a session's history.
// Turns are immutable once appended; their order is chronological.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
