package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	Transcript    []TranscriptEntry `json:"transcript"`
	LastTurn      *ChatTurnResponse `json:"last_turn,omitempty"`
}

type TranscriptEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
