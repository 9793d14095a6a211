package service

import (
	"context"
	"errors"
	"time"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
)

const (
	defaultGenerateTimeout = 30 * time.Second
	defaultHistoryLimit    = 20
	maxHistoryLimit        = 100
)

// ContentService generates learning content and serves its history.
type ContentService struct {
	repo      ports.ContentRepository
	generator ports.Generator
	timeout   time.Duration
}

func NewContentService(repo ports.ContentRepository, generator ports.Generator, timeout time.Duration) *ContentService {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &ContentService{repo: repo, generator: generator, timeout: timeout}
}

// Generate asks the generation backend for a new artefact and persists
// it under the caller's account. The backend call is bounded by the
// service timeout; exceeding it surfaces domain.ErrTimeout.
func (s *ContentService) Generate(ctx context.Context, identity domain.Identity, req ports.GenerateRequest) (*domain.Content, error) {
	if !domain.ValidKind(req.Kind) {
		return nil, domain.ValidationError{Fields: map[string][]string{
			"kind": {"kind must be one of: lesson, quiz, exercise"},
		}}
	}

	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	generated, err := s.generator.Generate(gctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || gctx.Err() == context.DeadlineExceeded {
			return nil, domain.ErrTimeout
		}
		return nil, err
	}

	content := &domain.Content{
		OwnerID:    identity.UserID,
		Kind:       req.Kind,
		Language:   req.Language,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Title:      generated.Title,
		Body:       generated.Body,
		CreatedAt:  time.Now().UTC(),
	}

	return s.repo.Insert(ctx, content)
}

// History lists the owner's content, newest first.
func (s *ContentService) History(ctx context.Context, ownerID string, limit int) ([]domain.Content, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.repo.ListByOwner(ctx, ownerID, limit)
}

// Get fetches one record. Content owned by someone else resolves to
// domain.ErrContentNotFound so existence is never leaked across users.
func (s *ContentService) Get(ctx context.Context, identity domain.Identity, id string) (*domain.Content, error) {
	content, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content.OwnerID != identity.UserID {
		return nil, domain.ErrContentNotFound
	}
	return content, nil
}
