package services

import (
	"context"
	"errors"
	"testing"

	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/validator"
)

func newContentFixture() ContentService {
	return NewContentService(newFakeRepository(), nil, testLogger(), validator.New())
}

func TestContentService_KeyedContent(t *testing.T) {
	svc := newContentFixture()
	ctx := context.Background()

	created, err := svc.CreateContent(ctx, &CreateContentRequest{
		Key:      "landing.welcome",
		Title:    "Welcome",
		Content:  "# Welcome to the portal",
		Category: "landing",
	})
	if err != nil {
		t.Fatalf("CreateContent failed: %v", err)
	}

	if created.ContentType != "markdown" {
		t.Errorf("ContentType = %q, want the markdown default", created.ContentType)
	}
	if created.Language != "en" {
		t.Errorf("Language = %q, want the en default", created.Language)
	}
	if !created.IsActive {
		t.Error("new content must be active")
	}

	t.Run("duplicate key", func(t *testing.T) {
		_, err := svc.CreateContent(ctx, &CreateContentRequest{
			Key:     "landing.welcome",
			Title:   "Again",
			Content: "dup",
		})
		if !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("expected ErrDuplicateKey, got %v", err)
		}
	})

	t.Run("get by key", func(t *testing.T) {
		got, err := svc.GetContent(ctx, "landing.welcome")
		if err != nil {
			t.Fatalf("GetContent failed: %v", err)
		}
		if got.Title != "Welcome" {
			t.Errorf("Title = %q", got.Title)
		}

		if _, err := svc.GetContent(ctx, "no.such.key"); !errors.Is(err, ErrContentNotFound) {
			t.Fatalf("expected ErrContentNotFound, got %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		inactive := false
		updated, err := svc.UpdateContent(ctx, "landing.welcome", &UpdateContentRequest{
			Content:  strPtr("# Updated copy"),
			IsActive: &inactive,
		})
		if err != nil {
			t.Fatalf("UpdateContent failed: %v", err)
		}
		if updated.Content != "# Updated copy" || updated.IsActive {
			t.Errorf("update not applied: %+v", updated)
		}
		if updated.Title != "Welcome" {
			t.Error("untouched field was changed")
		}
	})

	t.Run("list by category", func(t *testing.T) {
		if _, err := svc.CreateContent(ctx, &CreateContentRequest{
			Key:      "faq.scoring",
			Title:    "How scoring works",
			Content:  "rubric based",
			Category: "faq",
		}); err != nil {
			t.Fatalf("CreateContent failed: %v", err)
		}

		category := "faq"
		contents, total, err := svc.ListContent(ctx, repositories.ContentFilters{Category: &category, Limit: 50})
		if err != nil {
			t.Fatalf("ListContent failed: %v", err)
		}
		if total != 1 || contents[0].Key != "faq.scoring" {
			t.Errorf("category filter mismatch: total=%d", total)
		}
	})
}

func TestContentService_Pages(t *testing.T) {
	svc := newContentFixture()
	ctx := context.Background()

	page, err := svc.CreatePage(ctx, &CreatePageRequest{
		Slug:        "about",
		Title:       "About us",
		IsPublished: true,
		Sections: []validator.PageSectionRequest{
			{SectionKey: "intro", Content: "Who we are", Order: 1},
			{SectionKey: "team", Content: "The people", Order: 2, ContentType: "html"},
		},
	})
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	if page.PageType != "page" || page.Language != "en" {
		t.Errorf("defaults not applied: type=%q lang=%q", page.PageType, page.Language)
	}
	if len(page.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(page.Sections))
	}
	if page.Sections[0].ContentType != "markdown" {
		t.Errorf("section ContentType = %q, want the markdown default", page.Sections[0].ContentType)
	}
	if page.Sections[1].ContentType != "html" {
		t.Errorf("section ContentType = %q, want html", page.Sections[1].ContentType)
	}

	t.Run("duplicate slug", func(t *testing.T) {
		_, err := svc.CreatePage(ctx, &CreatePageRequest{Slug: "about", Title: "Again"})
		if !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("expected ErrDuplicateKey, got %v", err)
		}
	})

	t.Run("update replaces sections", func(t *testing.T) {
		published := false
		updated, err := svc.UpdatePage(ctx, "about", &UpdatePageRequest{
			Title:       strPtr("About the team"),
			IsPublished: &published,
			Sections: []validator.PageSectionRequest{
				{SectionKey: "history", Content: "Founded in 2024", Order: 1},
			},
		})
		if err != nil {
			t.Fatalf("UpdatePage failed: %v", err)
		}
		if updated.Title != "About the team" || updated.IsPublished {
			t.Errorf("update not applied: %+v", updated.Page)
		}
		if len(updated.Sections) != 1 || updated.Sections[0].SectionKey != "history" {
			t.Errorf("sections not replaced: %+v", updated.Sections)
		}
	})

	t.Run("sections survive a metadata-only update", func(t *testing.T) {
		updated, err := svc.UpdatePage(ctx, "about", &UpdatePageRequest{
			Description: strPtr("Company background"),
		})
		if err != nil {
			t.Fatalf("UpdatePage failed: %v", err)
		}
		if len(updated.Sections) != 1 {
			t.Errorf("got %d sections, want the existing 1", len(updated.Sections))
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		if _, err := svc.GetPage(ctx, "missing"); !errors.Is(err, ErrPageNotFound) {
			t.Fatalf("expected ErrPageNotFound, got %v", err)
		}
		if _, err := svc.UpdatePage(ctx, "missing", &UpdatePageRequest{Title: strPtr("x")}); !errors.Is(err, ErrPageNotFound) {
			t.Fatalf("expected ErrPageNotFound, got %v", err)
		}
	})
}
