package domain

import "time"

// ChatType classifies the conversation context.
type ChatType string

const (
	ChatTypeDM    ChatType = "dm"
	ChatTypeGroup ChatType = "group"
)

// InboundMessage is a raw user message received from a channel.
type InboundMessage struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channelId"`
	From      string    `json:"from"`
	FromName  string    `json:"fromName,omitempty"`
	ChatID    string    `json:"chatId"`
	ChatType  ChatType  `json:"chatType"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// OutboundMessage is a message delivered to the user surface. Every
// message carries the label of the agent it is attributed to; a turn
// produces a routing notice first and then the final response.
type OutboundMessage struct {
	ChannelID string      `json:"channelId"`
	To        string      `json:"to"`
	Body      string      `json:"body"`
	Label     IntentLabel `json:"label,omitempty"`
	Notice    bool        `json:"notice,omitempty"`
}
