package dto

import "time"

type SendChatRequest struct {
	Chat string `json:"chat" validate:"required"`
}

type ChatTurnResponse struct {
	Prompt     string             `json:"prompt"`
	Answer     string             `json:"answer"`
	Status     string             `json:"status"`
	Error      string             `json:"error,omitempty"`
	References []ReferenceSlotDTO `json:"references"`
	AskedAt    time.Time          `json:"asked_at"`
}

// ReferenceSlotDTO is one display slot in the reference panel. ExcerptText is
// omitted when the endpoint returned null text for the reference; the slot
// header (document + page) still renders.
type ReferenceSlotDTO struct {
	Slot           int     `json:"slot"`
	SourceFilename string  `json:"source_filename"`
	PageNumber     int     `json:"page_number"`
	ExcerptText    *string `json:"excerpt_text,omitempty"`
}

// ReferencePanelResponse carries the latest turn's display slots plus one
// signed download link per distinct referenced document.
type ReferencePanelResponse struct {
	Slots []ReferenceSlotDTO `json:"slots"`
	Links []ReferenceLinkDTO `json:"links"`
}

type ReferenceLinkDTO struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
