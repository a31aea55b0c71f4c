package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/validator"
)

func strPtr(s string) *string { return &s }

func createQuestionRequest() *CreateQuestionRequest {
	return &CreateQuestionRequest{
		Title:        "Off-by-one in binary search",
		Description:  "The search skips the last element.",
		BuggySnippet: "while lo < hi - 1:",
		WhatWrong:    "Loop bound excludes the final index.",
		FixOutline:   "Use lo <= hi with half-open bounds.",
		Rubric: []models.RubricCriterion{
			{Criterion: "Identifies the bound error", Points: 5},
			{Criterion: "Fix keeps O(log n)", Points: 5},
		},
		DifficultyLevel:     models.DifficultyMedium,
		Category:            "algorithms",
		EstimatedDuration:   15,
		ProgrammingLanguage: strPtr("python"),
		Tags:                []string{"search", "loops"},
	}
}

func TestQuestionService_Create(t *testing.T) {
	repo := newFakeRepository()
	svc := NewQuestionService(repo, nil, testLogger(), validator.New())

	resp, err := svc.Create(context.Background(), createQuestionRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if resp.ID == 0 {
		t.Error("question was not assigned an ID")
	}
	if !resp.IsActive {
		t.Error("new questions must be active")
	}

	var rubric []models.RubricCriterion
	if err := json.Unmarshal(resp.Rubric, &rubric); err != nil {
		t.Fatalf("rubric is not valid JSON: %v", err)
	}
	if len(rubric) != 2 || rubric[0].Points != 5 {
		t.Errorf("rubric round-trip mismatch: %+v", rubric)
	}

	var tags []string
	if err := json.Unmarshal(resp.Tags, &tags); err != nil {
		t.Fatalf("tags are not valid JSON: %v", err)
	}
	if len(tags) != 2 || tags[0] != "search" {
		t.Errorf("tags round-trip mismatch: %v", tags)
	}
}

func TestQuestionService_Create_InvalidRubric(t *testing.T) {
	repo := newFakeRepository()
	svc := NewQuestionService(repo, nil, testLogger(), validator.New())

	req := createQuestionRequest()
	req.Rubric = []models.RubricCriterion{{Criterion: "Free points", Points: 0}}

	_, err := svc.Create(context.Background(), req)
	if err == nil {
		t.Fatal("expected a validation error for a zero-point criterion")
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(repo.questions) != 0 {
		t.Error("invalid question was persisted")
	}
}

func TestQuestionService_Update(t *testing.T) {
	repo := newFakeRepository()
	svc := NewQuestionService(repo, nil, testLogger(), validator.New())
	ctx := context.Background()

	created, err := svc.Create(ctx, createQuestionRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	inactive := false
	updated, err := svc.Update(ctx, created.ID, &UpdateQuestionRequest{
		Title:             strPtr("Off-by-one in binary search (v2)"),
		EstimatedDuration: intPtr(25),
		IsActive:          &inactive,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != "Off-by-one in binary search (v2)" {
		t.Errorf("Title = %q", updated.Title)
	}
	if updated.EstimatedDuration != 25 {
		t.Errorf("EstimatedDuration = %d, want 25", updated.EstimatedDuration)
	}
	if updated.IsActive {
		t.Error("question should have been deactivated")
	}
	// Untouched fields survive a partial update
	if updated.Category != "algorithms" {
		t.Errorf("Category = %q, want algorithms", updated.Category)
	}

	if _, err := svc.Update(ctx, 999, &UpdateQuestionRequest{Title: strPtr("x")}); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestQuestionService_Delete(t *testing.T) {
	repo := newFakeRepository()
	svc := NewQuestionService(repo, nil, testLogger(), validator.New())
	ctx := context.Background()

	created, err := svc.Create(ctx, createQuestionRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound after delete, got %v", err)
	}

	if err := svc.Delete(ctx, 999); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestQuestionService_List(t *testing.T) {
	repo := newFakeRepository()
	svc := NewQuestionService(repo, nil, testLogger(), validator.New())
	ctx := context.Background()

	seedQuestion(repo, "Dangling pointer in list free", 10)
	seedQuestion(repo, "Race on shared counter", 20)
	hard := models.DifficultyHard
	repo.questions[2].DifficultyLevel = hard
	repo.questions[2].Category = "concurrency"

	t.Run("unfiltered", func(t *testing.T) {
		resp, err := svc.List(ctx, repositories.QuestionFilters{Limit: 20})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if resp.Total != 2 {
			t.Errorf("Total = %d, want 2", resp.Total)
		}
		if resp.Page != 1 || resp.Size != 20 {
			t.Errorf("Page/Size = %d/%d, want 1/20", resp.Page, resp.Size)
		}
	})

	t.Run("by category", func(t *testing.T) {
		cat := "concurrency"
		resp, err := svc.List(ctx, repositories.QuestionFilters{Category: &cat, Limit: 20})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if resp.Total != 1 || resp.Questions[0].Title != "Race on shared counter" {
			t.Errorf("unexpected result: total=%d", resp.Total)
		}
	})

	t.Run("by search", func(t *testing.T) {
		search := "dangling"
		resp, err := svc.List(ctx, repositories.QuestionFilters{Search: &search, Limit: 20})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if resp.Total != 1 || resp.Questions[0].Title != "Dangling pointer in list free" {
			t.Errorf("unexpected result: total=%d", resp.Total)
		}
	})
}

func TestQuestionService_GetFacets(t *testing.T) {
	repo := newFakeRepository()
	svc := NewQuestionService(repo, nil, testLogger(), validator.New())

	seedQuestion(repo, "Q1", 10)
	seedQuestion(repo, "Q2", 10)
	hard := models.DifficultyHard
	lang := "go"
	repo.questions[2].DifficultyLevel = hard
	repo.questions[2].Category = "concurrency"
	repo.questions[2].ProgrammingLanguage = &lang

	facets, err := svc.GetFacets(context.Background())
	if err != nil {
		t.Fatalf("GetFacets failed: %v", err)
	}

	if len(facets.Categories) != 2 {
		t.Errorf("Categories = %v, want 2 entries", facets.Categories)
	}
	if len(facets.DifficultyLevels) != 2 {
		t.Errorf("DifficultyLevels = %v, want 2 entries", facets.DifficultyLevels)
	}
	if len(facets.ProgrammingLanguages) != 1 || facets.ProgrammingLanguages[0] != "go" {
		t.Errorf("ProgrammingLanguages = %v, want [go]", facets.ProgrammingLanguages)
	}
}
