package services

import (
	"encoding/json"
	"fmt"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"gorm.io/datatypes"
)

func marshalRubric(rubric []models.RubricCriterion) (datatypes.JSON, error) {
	if rubric == nil {
		return nil, nil
	}
	data, err := json.Marshal(rubric)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rubric: %w", err)
	}
	return datatypes.JSON(data), nil
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return datatypes.JSON(data), nil
}

// applyQuestionUpdates merges non-nil request fields into the row.
func applyQuestionUpdates(question *models.Question, req *UpdateQuestionRequest) error {
	if req.Title != nil {
		question.Title = *req.Title
	}
	if req.Description != nil {
		question.Description = *req.Description
	}
	if req.BuggySnippet != nil {
		question.BuggySnippet = *req.BuggySnippet
	}
	if req.WhatWrong != nil {
		question.WhatWrong = *req.WhatWrong
	}
	if req.FixOutline != nil {
		question.FixOutline = *req.FixOutline
	}
	if req.Solution != nil {
		question.Solution = req.Solution
	}
	if req.Rubric != nil {
		rubric, err := marshalRubric(req.Rubric)
		if err != nil {
			return err
		}
		question.Rubric = rubric
	}
	if req.DifficultyLevel != nil {
		question.DifficultyLevel = *req.DifficultyLevel
	}
	if req.Category != nil {
		question.Category = *req.Category
	}
	if req.EstimatedDuration != nil {
		question.EstimatedDuration = *req.EstimatedDuration
	}
	if req.ProgrammingLanguage != nil {
		question.ProgrammingLanguage = req.ProgrammingLanguage
	}
	if req.Tags != nil {
		tags, err := marshalTags(req.Tags)
		if err != nil {
			return err
		}
		question.Tags = tags
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}
	return nil
}
