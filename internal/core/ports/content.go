package ports

import (
	"context"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

// ContentRepository persists generated content and its history.
type ContentRepository interface {
	Insert(ctx context.Context, content *domain.Content) (*domain.Content, error)
	FindByID(ctx context.Context, id string) (*domain.Content, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Content, error)
}

// GenerateRequest describes what to ask the generation backend for.
type GenerateRequest struct {
	Kind       domain.ContentKind
	Language   string
	Topic      string
	Difficulty string
}

// GeneratedContent is the raw output of the generation backend.
type GeneratedContent struct {
	Title string
	Body  string
}

// Generator is the AI content-generation backend. Prompting and model
// selection live behind this boundary.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GeneratedContent, error)
}

// PDFRenderer turns a content record into a rendered PDF document.
type PDFRenderer interface {
	Render(ctx context.Context, content *domain.Content) ([]byte, error)
}

// ContentService is the application-facing content API.
type ContentService interface {
	Generate(ctx context.Context, identity domain.Identity, req GenerateRequest) (*domain.Content, error)
	History(ctx context.Context, ownerID string, limit int) ([]domain.Content, error)
	Get(ctx context.Context, identity domain.Identity, id string) (*domain.Content, error)
}

// ExportService renders a user's content as a downloadable PDF.
type ExportService interface {
	Export(ctx context.Context, identity domain.Identity, contentID string) (pdf []byte, filename string, err error)
}
