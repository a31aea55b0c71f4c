package services

import (
	"context"
	"errors"
	"testing"

	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/validator"
)

func TestCandidateService_Create(t *testing.T) {
	repo := newFakeRepository()
	svc := NewCandidateService(repo, nil, testLogger(), validator.New())
	ctx := context.Background()

	candidate, err := svc.Create(ctx, &CreateCandidateRequest{
		FirstName: "Mira",
		LastName:  "Okafor",
		Email:     "mira@example.com",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if candidate.ID == 0 {
		t.Error("candidate was not assigned an ID")
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateCandidateRequest{
			FirstName: "Other",
			LastName:  "Person",
			Email:     "mira@example.com",
		})
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateCandidateRequest{
			FirstName: "No",
			LastName:  "Address",
			Email:     "not-an-email",
		})
		if err == nil {
			t.Fatal("expected a validation error")
		}
	})
}

func TestCandidateService_Update(t *testing.T) {
	repo := newFakeRepository()
	svc := NewCandidateService(repo, nil, testLogger(), validator.New())
	ctx := context.Background()

	mira, err := svc.Create(ctx, &CreateCandidateRequest{FirstName: "Mira", LastName: "Okafor", Email: "mira@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, &CreateCandidateRequest{FirstName: "Dev", LastName: "Patel", Email: "dev@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, mira.ID, &UpdateCandidateRequest{
		LastName: strPtr("Okafor-Reed"),
		Email:    strPtr("mira.reed@example.com"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.LastName != "Okafor-Reed" || updated.Email != "mira.reed@example.com" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.FirstName != "Mira" {
		t.Error("untouched field was changed")
	}

	t.Run("email collision", func(t *testing.T) {
		_, err := svc.Update(ctx, mira.ID, &UpdateCandidateRequest{Email: strPtr("dev@example.com")})
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("unknown candidate", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, &UpdateCandidateRequest{FirstName: strPtr("x")})
		if !errors.Is(err, ErrCandidateNotFound) {
			t.Fatalf("expected ErrCandidateNotFound, got %v", err)
		}
	})
}

func TestCandidateService_DeleteAndList(t *testing.T) {
	repo := newFakeRepository()
	svc := NewCandidateService(repo, nil, testLogger(), validator.New())
	ctx := context.Background()

	mira, _ := svc.Create(ctx, &CreateCandidateRequest{FirstName: "Mira", LastName: "Okafor", Email: "mira@example.com"})
	if _, err := svc.Create(ctx, &CreateCandidateRequest{FirstName: "Dev", LastName: "Patel", Email: "dev@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("search", func(t *testing.T) {
		search := "patel"
		resp, err := svc.List(ctx, repositories.CandidateFilters{Search: &search, Limit: 20})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if resp.Total != 1 || resp.Candidates[0].LastName != "Patel" {
			t.Errorf("search mismatch: total=%d", resp.Total)
		}
	})

	if err := svc.Delete(ctx, mira.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, mira.ID); !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound on second delete, got %v", err)
	}

	resp, err := svc.List(ctx, repositories.CandidateFilters{Limit: 20})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("Total = %d after delete, want 1", resp.Total)
	}
}
