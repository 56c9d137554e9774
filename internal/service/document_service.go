package service

import (
	"context"
	"path"

	"xplorer-be/internal/dto"
	"xplorer-be/internal/entity"
	"xplorer-be/internal/pkg/logger"
)

type IDocumentService interface {
	// ListDocuments returns every object in the container with a fresh
	// signed download link. Links are minted per call, never cached.
	ListDocuments(ctx context.Context) (*dto.DocumentListResponse, error)
}

type documentService struct {
	store ObjectStore
	log   logger.ILogger
}

func NewDocumentService(store ObjectStore, log logger.ILogger) IDocumentService {
	return &documentService{
		store: store,
		log:   log,
	}
}

func (s *documentService) ListDocuments(ctx context.Context) (*dto.DocumentListResponse, error) {
	paths, err := s.store.List(ctx)
	if err != nil {
		s.log.Error("documents", "listing failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	entries := make([]entity.DocumentEntry, 0, len(paths))
	for _, objectPath := range paths {
		entries = append(entries, entity.DocumentEntry{
			Path:        objectPath,
			DisplayName: path.Base(objectPath),
		})
	}

	resp := &dto.DocumentListResponse{
		Count:     len(entries),
		Documents: make([]dto.DocumentLinkDTO, 0, len(entries)),
	}
	for _, entry := range entries {
		url, err := s.store.SignedURL(ctx, entry.Path)
		if err != nil {
			return nil, err
		}
		resp.Documents = append(resp.Documents, dto.DocumentLinkDTO{
			Name: entry.DisplayName,
			Path: entry.Path,
			URL:  url,
		})
	}
	return resp, nil
}
