package domain

import (
	"errors"
	"time"
)

var ErrChatEntryNotFound = errors.New("chat history entry not found")
var ErrNoProviders = errors.New("no completion provider configured")
var ErrEmptyMessage = errors.New("message must not be empty")

// TokenEstimate is a rough word-based token count for a single exchange.
type TokenEstimate struct {
	Input  int `json:"input" bson:"input"`
	Output int `json:"output" bson:"output"`
}

// ChatRecord is one question/answer exchange. Records are append-only:
// they are created after a successful completion and never updated.
type ChatRecord struct {
	ID                string        `json:"id" bson:"_id,omitempty"`
	UserID            string        `json:"user_id" bson:"user_id"`
	UserMessage       string        `json:"user_message" bson:"user_message"`
	AssistantResponse string        `json:"assistant_response" bson:"assistant_response"`
	Tokens            TokenEstimate `json:"tokens" bson:"tokens"`
	CreatedAt         time.Time     `json:"created_at" bson:"created_at"`

	// Populated only on admin listings via the users lookup.
	UserName  string `json:"user_name,omitempty" bson:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty" bson:"user_email,omitempty"`
}
