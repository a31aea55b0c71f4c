package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type reportService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

var exportHeader = []string{"Attempt ID", "Candidate Email", "Candidate Name", "Status", "Started At", "Completed At", "Score", "Max Score"}

// ExportAttempts renders all attempts of an assessment into an xlsx sheet.
func (s *reportService) ExportAttempts(ctx context.Context, assessmentID uint, userID uint) (*ExportResult, error) {
	s.logger.Info("Exporting attempts", "assessment_id", assessmentID, "user_id", userID)

	assessment, err := s.repo.Assessment().GetByID(ctx, nil, assessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	if assessment.CreatorID != userID {
		return nil, NewPermissionError(userID, assessmentID, "assessment", "export", "not the creator")
	}

	attempts, _, err := s.repo.Attempt().GetByAssessment(ctx, nil, assessmentID, repositories.AttemptFilters{Limit: 10000})
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attempts"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, attempt := range attempts {
		values := []interface{}{
			attempt.ID,
			attempt.CandidateEmail,
			derefOr(attempt.CandidateName, ""),
			string(attempt.Status),
			attempt.StartedAt.Format(time.RFC3339),
			formatCompletedAt(attempt),
			scoreOrBlank(attempt.TotalScore),
			attempt.MaxScore,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	s.logger.Info("Attempts exported", "assessment_id", assessmentID, "rows", len(attempts))

	return &ExportResult{
		FileName:    fmt.Sprintf("assessment-%d-attempts.xlsx", assessmentID),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func formatCompletedAt(attempt *models.AssessmentAttempt) string {
	if attempt.CompletedAt == nil {
		return ""
	}
	return attempt.CompletedAt.Format(time.RFC3339)
}

func scoreOrBlank(score *int) interface{} {
	if score == nil {
		return ""
	}
	return *score
}
