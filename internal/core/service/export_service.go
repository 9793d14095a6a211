package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
)

const defaultExportTimeout = 30 * time.Second

// ExportService renders a user's content as a downloadable PDF.
// Export is a Pro-plan feature.
type ExportService struct {
	contents ports.ContentRepository
	renderer ports.PDFRenderer
	timeout  time.Duration
}

func NewExportService(contents ports.ContentRepository, renderer ports.PDFRenderer, timeout time.Duration) *ExportService {
	if timeout <= 0 {
		timeout = defaultExportTimeout
	}
	return &ExportService{contents: contents, renderer: renderer, timeout: timeout}
}

// Export checks plan tier and ownership, then renders the PDF under the
// export deadline. Checks run in a fixed order: plan tier first, then
// existence, then ownership (hidden behind not-found).
func (s *ExportService) Export(ctx context.Context, identity domain.Identity, contentID string) ([]byte, string, error) {
	if !identity.IsPro() {
		return nil, "", domain.ErrPlanRequired
	}

	content, err := s.contents.FindByID(ctx, contentID)
	if err != nil {
		return nil, "", err
	}
	if content.OwnerID != identity.UserID {
		return nil, "", domain.ErrContentNotFound
	}

	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pdf, err := s.renderer.Render(rctx, content)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || rctx.Err() == context.DeadlineExceeded {
			return nil, "", domain.ErrTimeout
		}
		return nil, "", err
	}

	return pdf, exportFilename(content), nil
}

// exportFilename derives a stable attachment name from the title.
func exportFilename(content *domain.Content) string {
	title := strings.TrimSpace(content.Title)
	if title == "" {
		title = string(content.Kind) + "-" + content.ID
	}
	return title + ".pdf"
}
