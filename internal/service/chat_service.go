package service

import (
	"context"
	"time"

	"xplorer-be/internal/dto"
	"xplorer-be/internal/entity"
	"xplorer-be/internal/pkg/logger"
	"xplorer-be/internal/repository/contract"

	"github.com/google/uuid"
)

// maxReferenceSlots caps how many source excerpts the reference panel shows
// per answer. The endpoint may return more; the extras are kept on the turn
// but never displayed.
const maxReferenceSlots = 3

type IChatService interface {
	// SendChat relays one prompt to the chat endpoint. On success the
	// transcript gains a user and an assistant turn and the returned turn
	// becomes the session's latest. On a relay failure the transcript is
	// untouched and a failed turn is returned alongside the error so the UI
	// can render it inline; the user resubmits manually.
	SendChat(ctx context.Context, sessionId uuid.UUID, req *dto.SendChatRequest) (*dto.ChatTurnResponse, error)
	GetReferencePanel(ctx context.Context, sessionId uuid.UUID) (*dto.ReferencePanelResponse, error)
	GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error)
}

type chatService struct {
	sessions contract.ISessionRepository
	relay    RelayClient
	store    ObjectStore
	log      logger.ILogger
}

func NewChatService(sessions contract.ISessionRepository, relayClient RelayClient, store ObjectStore, log logger.ILogger) IChatService {
	return &chatService{
		sessions: sessions,
		relay:    relayClient,
		store:    store,
		log:      log,
	}
}

func (s *chatService) SendChat(ctx context.Context, sessionId uuid.UUID, req *dto.SendChatRequest) (*dto.ChatTurnResponse, error) {
	session, err := s.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	askedAt := time.Now()

	// chat_history is sent empty: the endpoint's expected multi-turn format
	// is unconfirmed, so the transcript is display-only for now.
	answer, err := s.relay.Ask(ctx, req.Chat, nil)
	if err != nil {
		s.log.Error("chat", "relay call failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		failed := &entity.ChatTurn{
			Prompt:  req.Chat,
			Status:  entity.TurnFailed,
			Error:   err.Error(),
			AskedAt: askedAt,
		}
		return turnToDTO(failed), err
	}

	turn := &entity.ChatTurn{
		Prompt:     req.Chat,
		Answer:     answer.ChatOutput,
		Status:     entity.TurnAnswered,
		References: make([]entity.Reference, 0, len(answer.References)),
		AskedAt:    askedAt,
	}
	for _, ref := range answer.References {
		turn.References = append(turn.References, entity.Reference{
			SourceFilename: ref.Metadata.Source.Filename,
			PageNumber:     ref.Metadata.PageNumber,
			ExcerptText:    ref.Text,
		})
	}

	session.Transcript = append(session.Transcript,
		entity.Message{Role: entity.RoleUser, Content: req.Chat, Timestamp: askedAt},
		entity.Message{Role: entity.RoleAssistant, Content: answer.ChatOutput, Timestamp: time.Now()},
	)
	session.LastTurn = turn

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	return turnToDTO(turn), nil
}

func (s *chatService) GetReferencePanel(ctx context.Context, sessionId uuid.UUID) (*dto.ReferencePanelResponse, error) {
	session, err := s.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	panel := &dto.ReferencePanelResponse{
		Slots: []dto.ReferenceSlotDTO{},
		Links: []dto.ReferenceLinkDTO{},
	}
	if session.LastTurn == nil {
		return panel, nil
	}

	panel.Slots = referenceSlots(session.LastTurn.References)

	// One link per distinct referenced document, regardless of how many
	// pages of it were cited.
	seen := make(map[string]bool)
	for _, ref := range session.LastTurn.References {
		if ref.SourceFilename == "" || seen[ref.SourceFilename] {
			continue
		}
		seen[ref.SourceFilename] = true

		url, err := s.store.SignedURL(ctx, ref.SourceFilename)
		if err != nil {
			return nil, err
		}
		panel.Links = append(panel.Links, dto.ReferenceLinkDTO{
			Name: ref.SourceFilename,
			URL:  url,
		})
	}

	return panel, nil
}

func (s *chatService) GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	resp := &dto.SessionResponse{
		Authenticated: true,
		Transcript:    make([]dto.TranscriptEntry, 0, len(session.Transcript)),
	}
	for _, msg := range session.Transcript {
		resp.Transcript = append(resp.Transcript, dto.TranscriptEntry{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	if session.LastTurn != nil {
		resp.LastTurn = turnToDTO(session.LastTurn)
	}
	return resp, nil
}

func turnToDTO(turn *entity.ChatTurn) *dto.ChatTurnResponse {
	return &dto.ChatTurnResponse{
		Prompt:     turn.Prompt,
		Answer:     turn.Answer,
		Status:     string(turn.Status),
		Error:      turn.Error,
		References: referenceSlots(turn.References),
		AskedAt:    turn.AskedAt,
	}
}

func referenceSlots(refs []entity.Reference) []dto.ReferenceSlotDTO {
	slots := make([]dto.ReferenceSlotDTO, 0, maxReferenceSlots)
	for i, ref := range refs {
		if i == maxReferenceSlots {
			break
		}
		slots = append(slots, dto.ReferenceSlotDTO{
			Slot:           i + 1,
			SourceFilename: ref.SourceFilename,
			PageNumber:     ref.PageNumber,
			ExcerptText:    ref.ExcerptText,
		})
	}
	return slots
}
