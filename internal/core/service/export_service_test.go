package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

type stubContentRepo struct {
	contents map[string]*domain.Content
}

func newStubContentRepo() *stubContentRepo {
	return &stubContentRepo{contents: make(map[string]*domain.Content)}
}

func (r *stubContentRepo) Insert(_ context.Context, content *domain.Content) (*domain.Content, error) {
	clone := *content
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("c%d", len(r.contents)+1)
	}
	r.contents[clone.ID] = &clone
	return &clone, nil
}

func (r *stubContentRepo) FindByID(_ context.Context, id string) (*domain.Content, error) {
	if c, ok := r.contents[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrContentNotFound
}

func (r *stubContentRepo) ListByOwner(_ context.Context, ownerID string, limit int) ([]domain.Content, error) {
	var out []domain.Content
	for _, c := range r.contents {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type stubRenderer struct {
	pdf   []byte
	err   error
	delay time.Duration
	calls int
}

func (r *stubRenderer) Render(ctx context.Context, _ *domain.Content) ([]byte, error) {
	r.calls++
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.pdf, r.err
}

func proIdentity() domain.Identity {
	return domain.Identity{UserID: "u1", Plan: domain.PlanPro}
}

func TestExportService_Success(t *testing.T) {
	repo := newStubContentRepo()
	repo.contents["c1"] = &domain.Content{ID: "c1", OwnerID: "u1", Kind: domain.KindLesson, Title: "Go Slices"}
	renderer := &stubRenderer{pdf: []byte("%PDF-1.4")}
	svc := NewExportService(repo, renderer, time.Second)

	pdf, filename, err := svc.Export(context.Background(), proIdentity(), "c1")
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if string(pdf) != "%PDF-1.4" {
		t.Fatalf("unexpected pdf bytes: %q", pdf)
	}
	if filename != "Go Slices.pdf" {
		t.Fatalf("unexpected filename: %q", filename)
	}
}

func TestExportService_PlanRequired(t *testing.T) {
	repo := newStubContentRepo()
	repo.contents["c1"] = &domain.Content{ID: "c1", OwnerID: "u1"}
	renderer := &stubRenderer{pdf: []byte("x")}
	svc := NewExportService(repo, renderer, time.Second)

	free := domain.Identity{UserID: "u1", Plan: domain.PlanFree}
	if _, _, err := svc.Export(context.Background(), free, "c1"); !errors.Is(err, domain.ErrPlanRequired) {
		t.Fatalf("expected ErrPlanRequired, got %v", err)
	}
	if renderer.calls != 0 {
		t.Fatalf("renderer must not run for non-Pro callers")
	}
}

func TestExportService_NotFound(t *testing.T) {
	svc := NewExportService(newStubContentRepo(), &stubRenderer{}, time.Second)

	if _, _, err := svc.Export(context.Background(), proIdentity(), "missing"); !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestExportService_OwnershipHidden(t *testing.T) {
	repo := newStubContentRepo()
	repo.contents["c1"] = &domain.Content{ID: "c1", OwnerID: "someone-else"}
	svc := NewExportService(repo, &stubRenderer{}, time.Second)

	// Another user's content resolves to not-found, not forbidden.
	if _, _, err := svc.Export(context.Background(), proIdentity(), "c1"); !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound for foreign content, got %v", err)
	}
}

func TestExportService_Timeout(t *testing.T) {
	repo := newStubContentRepo()
	repo.contents["c1"] = &domain.Content{ID: "c1", OwnerID: "u1"}
	renderer := &stubRenderer{pdf: []byte("x"), delay: 200 * time.Millisecond}
	svc := NewExportService(repo, renderer, 20*time.Millisecond)

	if _, _, err := svc.Export(context.Background(), proIdentity(), "c1"); !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestExportService_FilenameFallback(t *testing.T) {
	repo := newStubContentRepo()
	repo.contents["c1"] = &domain.Content{ID: "c1", OwnerID: "u1", Kind: domain.KindQuiz, Title: "  "}
	svc := NewExportService(repo, &stubRenderer{pdf: []byte("x")}, time.Second)

	_, filename, err := svc.Export(context.Background(), proIdentity(), "c1")
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if filename != "quiz-c1.pdf" {
		t.Fatalf("unexpected fallback filename: %q", filename)
	}
}
