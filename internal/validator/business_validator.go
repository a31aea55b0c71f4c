package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/laksham-labs/assessment-portal/internal/models"
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateAssessmentCreate validates assessment creation business rules
func (bv *BusinessValidator) ValidateAssessmentCreate(req *AssessmentCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, bv.validateQuestionList(req.Questions, true)...)

	return errors
}

// ValidateAssessmentUpdate validates assessment update business rules
func (bv *BusinessValidator) ValidateAssessmentUpdate(req *AssessmentUpdateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	if req.Questions != nil {
		errors = append(errors, bv.validateQuestionList(req.Questions, true)...)
	}

	return errors
}

// ValidateQuestionCreate validates question creation business rules
func (bv *BusinessValidator) ValidateQuestionCreate(req *QuestionCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, bv.validateRubric(req.Rubric)...)
	errors = append(errors, bv.validateTags(req.Tags)...)

	return errors
}

// ValidateQuestionUpdate validates question update business rules
func (bv *BusinessValidator) ValidateQuestionUpdate(req *QuestionUpdateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, bv.validateRubric(req.Rubric)...)
	errors = append(errors, bv.validateTags(req.Tags)...)

	return errors
}

// ValidateScoreAnswer validates that a score stays within the answer's ceiling
func (bv *BusinessValidator) ValidateScoreAnswer(req *ScoreAnswerRequest, maxScore int) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.Score > maxScore {
		errors = append(errors, ValidationError{
			Field:   "score",
			Message: fmt.Sprintf("cannot exceed the maximum score of %d", maxScore),
			Value:   req.Score,
			Rule:    "business_logic",
		})
	}

	return errors
}

// validateQuestionList checks for duplicate questions and duplicate order positions
func (bv *BusinessValidator) validateQuestionList(questions []AssessmentQuestionRequest, requireNonEmpty bool) ValidationErrors {
	var errors ValidationErrors

	if requireNonEmpty && len(questions) == 0 {
		errors = append(errors, ValidationError{
			Field:   "questions",
			Message: "at least one question is required",
			Value:   len(questions),
			Rule:    "business_logic",
		})
		return errors
	}

	seenQuestions := make(map[uint]bool, len(questions))
	seenOrders := make(map[int]bool, len(questions))

	for i, q := range questions {
		if seenQuestions[q.QuestionID] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("questions[%d].question_id", i),
				Message: "question appears more than once",
				Value:   q.QuestionID,
				Rule:    "business_logic",
			})
		}
		seenQuestions[q.QuestionID] = true

		if seenOrders[q.Order] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("questions[%d].order", i),
				Message: "order position appears more than once",
				Value:   q.Order,
				Rule:    "business_logic",
			})
		}
		seenOrders[q.Order] = true
	}

	return errors
}

// validateRubric checks rubric criteria for empty names and non-positive points
func (bv *BusinessValidator) validateRubric(rubric []models.RubricCriterion) ValidationErrors {
	var errors ValidationErrors

	for i, criterion := range rubric {
		if strings.TrimSpace(criterion.Criterion) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("rubric[%d].criterion", i),
				Message: "criterion cannot be empty",
				Value:   criterion.Criterion,
				Rule:    "business_logic",
			})
		}
		if criterion.Points < 1 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("rubric[%d].points", i),
				Message: "points must be positive",
				Value:   criterion.Points,
				Rule:    "business_logic",
			})
		}
	}

	return errors
}

// validateTags rejects blank tags
func (bv *BusinessValidator) validateTags(tags []string) ValidationErrors {
	var errors ValidationErrors

	for i, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("tags[%d]", i),
				Message: "tag cannot be empty",
				Value:   tag,
				Rule:    "business_logic",
			})
		}
	}

	return errors
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Title validation (1-200 characters after trimming)
	bv.validate.RegisterValidation("assessment_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		return len(title) >= 1 && len(title) <= 200
	})

	// Points range validation
	bv.validate.RegisterValidation("points_range", func(fl validator.FieldLevel) bool {
		points := fl.Field().Int()
		return points >= 1 && points <= 100
	})

	// assessment kind validation
	bv.validate.RegisterValidation("assessment_kind", func(fl validator.FieldLevel) bool {
		kind := fl.Field().String()
		validKinds := []models.AssessmentKind{models.KindStandard, models.KindCodeReview}
		for _, vk := range validKinds {
			if models.AssessmentKind(kind) == vk {
				return true
			}
		}
		return false
	})

	// difficulty level validation
	bv.validate.RegisterValidation("difficulty_level", func(fl validator.FieldLevel) bool {
		level := fl.Field().String()
		validLevels := []models.DifficultyLevel{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard}
		for _, vl := range validLevels {
			if models.DifficultyLevel(level) == vl {
				return true
			}
		}
		return false
	})
}
