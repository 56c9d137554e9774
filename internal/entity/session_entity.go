package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single transcript turn half (one user or assistant utterance).
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type TurnStatus string

const (
	TurnAnswered TurnStatus = "answered"
	TurnFailed   TurnStatus = "failed"
)

// ChatTurn is the per-question value object: the prompt, the generated
// answer and the references that came back with it. References are scoped to
// the turn so the panel never accumulates stale entries across questions.
type ChatTurn struct {
	Prompt     string      `json:"prompt"`
	Answer     string      `json:"answer"`
	Status     TurnStatus  `json:"status"`
	Error      string      `json:"error,omitempty"`
	References []Reference `json:"references"`
	AskedAt    time.Time   `json:"asked_at"`
}

// Reference is a source excerpt returned alongside an answer. ExcerptText is
// a pointer because the endpoint may return null text for a reference.
type Reference struct {
	SourceFilename string  `json:"source_filename"`
	PageNumber     int     `json:"page_number"`
	ExcerptText    *string `json:"excerpt_text"`
}

// Session holds all state for one authenticated browser session. The raw
// credentials are never stored here; existence of a session implies the
// password check passed.
type Session struct {
	Id         uuid.UUID `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Transcript []Message `json:"transcript"`
	LastTurn   *ChatTurn `json:"last_turn,omitempty"`
}
