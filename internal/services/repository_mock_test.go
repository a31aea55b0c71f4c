package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"gorm.io/gorm"
)

// fakeRepository is an in-memory Repository used by the service tests.
// Not-found lookups return gorm.ErrRecordNotFound so the services' error
// mapping behaves exactly as it does against Postgres.
type fakeRepository struct {
	assessments map[uint]*models.Assessment
	joins       []models.AssessmentQuestion
	questions   map[uint]*models.Question
	attempts    map[uint]*models.AssessmentAttempt
	answers     map[uint]*models.AssessmentAnswer
	users       map[uint]*models.User
	candidates  map[uint]*models.Candidate
	tokens      map[uint]*models.VerificationToken
	contents    map[string]*models.Content
	pages       map[string]*models.Page

	nextID uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		assessments: make(map[uint]*models.Assessment),
		questions:   make(map[uint]*models.Question),
		attempts:    make(map[uint]*models.AssessmentAttempt),
		answers:     make(map[uint]*models.AssessmentAnswer),
		users:       make(map[uint]*models.User),
		candidates:  make(map[uint]*models.Candidate),
		tokens:      make(map[uint]*models.VerificationToken),
		contents:    make(map[string]*models.Content),
		pages:       make(map[string]*models.Page),
	}
}

func (f *fakeRepository) nextSeq() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepository) Assessment() repositories.AssessmentRepository {
	return &fakeAssessmentRepo{f}
}

func (f *fakeRepository) AssessmentQuestion() repositories.AssessmentQuestionRepository {
	return &fakeAssessmentQuestionRepo{f}
}

func (f *fakeRepository) Question() repositories.QuestionRepository {
	return &fakeQuestionRepo{f}
}

func (f *fakeRepository) Attempt() repositories.AttemptRepository {
	return &fakeAttemptRepo{f}
}

func (f *fakeRepository) Answer() repositories.AnswerRepository {
	return &fakeAnswerRepo{f}
}

func (f *fakeRepository) User() repositories.UserRepository {
	return &fakeUserRepo{f}
}

func (f *fakeRepository) Candidate() repositories.CandidateRepository {
	return &fakeCandidateRepo{f}
}

func (f *fakeRepository) VerificationToken() repositories.VerificationTokenRepository {
	return &fakeTokenRepo{f}
}

func (f *fakeRepository) Content() repositories.ContentRepository {
	return &fakeContentRepo{f}
}

func (f *fakeRepository) Page() repositories.PageRepository {
	return &fakePageRepo{f}
}

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ===== ASSESSMENT =====

type fakeAssessmentRepo struct{ f *fakeRepository }

func (r *fakeAssessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error {
	assessment.ID = r.f.nextSeq()
	assessment.CreatedAt = time.Now()
	r.f.assessments[assessment.ID] = assessment
	return nil
}

func (r *fakeAssessmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error) {
	a, ok := r.f.assessments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *a
	return &copy, nil
}

func (r *fakeAssessmentRepo) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error) {
	a, err := r.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	a.Questions = r.f.joinsFor(id)
	return a, nil
}

func (r *fakeAssessmentRepo) GetByShareableLink(ctx context.Context, tx *gorm.DB, link string) (*models.Assessment, error) {
	for _, a := range r.f.assessments {
		if a.ShareableLink == link {
			copy := *a
			copy.Questions = r.f.joinsFor(a.ID)
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAssessmentRepo) Update(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error {
	if _, ok := r.f.assessments[assessment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copy := *assessment
	r.f.assessments[assessment.ID] = &copy
	return nil
}

func (r *fakeAssessmentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(r.f.assessments, id)
	return nil
}

func (r *fakeAssessmentRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	var out []*models.Assessment
	for _, a := range r.f.assessments {
		if filters.CreatorID != nil && a.CreatorID != *filters.CreatorID {
			continue
		}
		if filters.IsTemplate != nil && a.IsTemplate != *filters.IsTemplate {
			continue
		}
		copy := *a
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeAssessmentRepo) ExistsByShareableLink(ctx context.Context, tx *gorm.DB, link string) (bool, error) {
	for _, a := range r.f.assessments {
		if a.ShareableLink == link {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAssessmentRepo) GetStats(ctx context.Context, tx *gorm.DB, id uint) (*repositories.AssessmentStats, error) {
	a, ok := r.f.assessments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	stats := &repositories.AssessmentStats{
		QuestionCount: len(r.f.joinsFor(id)),
		MaxScore:      a.MaxScore,
	}
	for _, at := range r.f.attempts {
		if at.AssessmentID != id {
			continue
		}
		stats.TotalAttempts++
		if at.Status == models.AttemptCompleted {
			stats.CompletedAttempts++
		}
		if at.Status == models.AttemptExpired {
			stats.ExpiredAttempts++
		}
	}
	return stats, nil
}

func (f *fakeRepository) joinsFor(assessmentID uint) []models.AssessmentQuestion {
	var rows []models.AssessmentQuestion
	for _, j := range f.joins {
		if j.AssessmentID != assessmentID {
			continue
		}
		if q, ok := f.questions[j.QuestionID]; ok {
			j.Question = *q
		}
		rows = append(rows, j)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Order < rows[j].Order })
	return rows
}

// ===== ASSESSMENT QUESTIONS =====

type fakeAssessmentQuestionRepo struct{ f *fakeRepository }

func (r *fakeAssessmentQuestionRepo) CreateBatch(ctx context.Context, tx *gorm.DB, questions []models.AssessmentQuestion) error {
	for _, q := range questions {
		q.ID = r.f.nextSeq()
		r.f.joins = append(r.f.joins, q)
	}
	return nil
}

func (r *fakeAssessmentQuestionRepo) GetByAssessment(ctx context.Context, tx *gorm.DB, assessmentID uint) ([]*models.AssessmentQuestion, error) {
	rows := r.f.joinsFor(assessmentID)
	out := make([]*models.AssessmentQuestion, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *fakeAssessmentQuestionRepo) GetByAssessmentAndQuestion(ctx context.Context, tx *gorm.DB, assessmentID, questionID uint) (*models.AssessmentQuestion, error) {
	for _, j := range r.f.joins {
		if j.AssessmentID == assessmentID && j.QuestionID == questionID {
			row := j
			return &row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAssessmentQuestionRepo) DeleteByAssessment(ctx context.Context, tx *gorm.DB, assessmentID uint) error {
	kept := r.f.joins[:0]
	for _, j := range r.f.joins {
		if j.AssessmentID != assessmentID {
			kept = append(kept, j)
		}
	}
	r.f.joins = kept
	return nil
}

// ===== QUESTIONS =====

type fakeQuestionRepo struct{ f *fakeRepository }

func (r *fakeQuestionRepo) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	question.ID = r.f.nextSeq()
	r.f.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	q, ok := r.f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *q
	return &copy, nil
}

func (r *fakeQuestionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Question, error) {
	var out []*models.Question
	for _, id := range ids {
		if q, ok := r.f.questions[id]; ok {
			copy := *q
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	if _, ok := r.f.questions[question.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copy := *question
	r.f.questions[question.ID] = &copy
	return nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(r.f.questions, id)
	return nil
}

func (r *fakeQuestionRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	var out []*models.Question
	for _, q := range r.f.questions {
		if filters.Category != nil && q.Category != *filters.Category {
			continue
		}
		if filters.DifficultyLevel != nil && q.DifficultyLevel != *filters.DifficultyLevel {
			continue
		}
		if filters.Search != nil && !strings.Contains(strings.ToLower(q.Title), strings.ToLower(*filters.Search)) {
			continue
		}
		copy := *q
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeQuestionRepo) DistinctCategories(ctx context.Context, tx *gorm.DB) ([]string, error) {
	return r.distinct(func(q *models.Question) string { return q.Category }), nil
}

func (r *fakeQuestionRepo) DistinctDifficultyLevels(ctx context.Context, tx *gorm.DB) ([]string, error) {
	return r.distinct(func(q *models.Question) string { return string(q.DifficultyLevel) }), nil
}

func (r *fakeQuestionRepo) DistinctProgrammingLanguages(ctx context.Context, tx *gorm.DB) ([]string, error) {
	return r.distinct(func(q *models.Question) string {
		if q.ProgrammingLanguage == nil {
			return ""
		}
		return *q.ProgrammingLanguage
	}), nil
}

func (r *fakeQuestionRepo) distinct(get func(*models.Question) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range r.f.questions {
		v := get(q)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ===== ATTEMPTS =====

type fakeAttemptRepo struct{ f *fakeRepository }

func (r *fakeAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *models.AssessmentAttempt) error {
	attempt.ID = r.f.nextSeq()
	attempt.CreatedAt = time.Now()
	copy := *attempt
	r.f.attempts[attempt.ID] = &copy
	return nil
}

func (r *fakeAttemptRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AssessmentAttempt, error) {
	a, ok := r.f.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *a
	if assessment, ok := r.f.assessments[a.AssessmentID]; ok {
		copy.Assessment = *assessment
	}
	return &copy, nil
}

func (r *fakeAttemptRepo) GetByIDWithAnswers(ctx context.Context, tx *gorm.DB, id uint) (*models.AssessmentAttempt, error) {
	a, err := r.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	a.Answers = r.f.answersFor(id)
	return a, nil
}

func (r *fakeAttemptRepo) Update(ctx context.Context, tx *gorm.DB, attempt *models.AssessmentAttempt) error {
	if _, ok := r.f.attempts[attempt.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copy := *attempt
	copy.Assessment = models.Assessment{}
	copy.Answers = nil
	r.f.attempts[attempt.ID] = &copy
	return nil
}

func (r *fakeAttemptRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.AttemptFilters) ([]*models.AssessmentAttempt, int64, error) {
	var out []*models.AssessmentAttempt
	for _, a := range r.f.attempts {
		if filters.Status != nil && a.Status != *filters.Status {
			continue
		}
		if filters.AssessmentID != nil && a.AssessmentID != *filters.AssessmentID {
			continue
		}
		if filters.CandidateEmail != nil && a.CandidateEmail != *filters.CandidateEmail {
			continue
		}
		copy := *a
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeAttemptRepo) GetRecentByCreator(ctx context.Context, tx *gorm.DB, creatorID uint, limit int) ([]*models.AssessmentAttempt, error) {
	var out []*models.AssessmentAttempt
	for _, a := range r.f.attempts {
		assessment, ok := r.f.assessments[a.AssessmentID]
		if !ok || assessment.CreatorID != creatorID {
			continue
		}
		copy := *a
		copy.Assessment = *assessment
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAttemptRepo) GetByAssessment(ctx context.Context, tx *gorm.DB, assessmentID uint, filters repositories.AttemptFilters) ([]*models.AssessmentAttempt, int64, error) {
	filters.AssessmentID = &assessmentID
	return r.List(ctx, tx, filters)
}

func (r *fakeAttemptRepo) GetExpiredCandidates(ctx context.Context, tx *gorm.DB, grace time.Duration, limit int) ([]*models.AssessmentAttempt, error) {
	now := time.Now()
	var out []*models.AssessmentAttempt
	for _, a := range r.f.attempts {
		if a.Status != models.AttemptInProgress {
			continue
		}
		assessment, ok := r.f.assessments[a.AssessmentID]
		if !ok {
			continue
		}
		if now.After(a.Deadline(assessment.TotalDuration, grace)) {
			copy := *a
			copy.Assessment = *assessment
			out = append(out, &copy)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepository) answersFor(attemptID uint) []models.AssessmentAnswer {
	var out []models.AssessmentAnswer
	for _, ans := range f.answers {
		if ans.AttemptID == attemptID {
			out = append(out, *ans)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ===== ANSWERS =====

type fakeAnswerRepo struct{ f *fakeRepository }

func (r *fakeAnswerRepo) Create(ctx context.Context, tx *gorm.DB, answer *models.AssessmentAnswer) error {
	answer.ID = r.f.nextSeq()
	copy := *answer
	r.f.answers[answer.ID] = &copy
	return nil
}

func (r *fakeAnswerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.AssessmentAnswer, error) {
	a, ok := r.f.answers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *a
	return &copy, nil
}

func (r *fakeAnswerRepo) GetByAttemptAndQuestion(ctx context.Context, tx *gorm.DB, attemptID, questionID uint) (*models.AssessmentAnswer, error) {
	for _, a := range r.f.answers {
		if a.AttemptID == attemptID && a.QuestionID == questionID {
			copy := *a
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAnswerRepo) GetByAttempt(ctx context.Context, tx *gorm.DB, attemptID uint) ([]models.AssessmentAnswer, error) {
	return r.f.answersFor(attemptID), nil
}

func (r *fakeAnswerRepo) Update(ctx context.Context, tx *gorm.DB, answer *models.AssessmentAnswer) error {
	if _, ok := r.f.answers[answer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copy := *answer
	r.f.answers[answer.ID] = &copy
	return nil
}

// ===== USERS =====

type fakeUserRepo struct{ f *fakeRepository }

func (r *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	for _, u := range r.f.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.f.nextSeq()
	copy := *user
	r.f.users[user.ID] = &copy
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	u, ok := r.f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.f.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if _, ok := r.f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copy := *user
	r.f.users[user.ID] = &copy
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, tx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

// ===== CANDIDATES =====

type fakeCandidateRepo struct{ f *fakeRepository }

func (r *fakeCandidateRepo) Create(ctx context.Context, tx *gorm.DB, candidate *models.Candidate) error {
	for _, c := range r.f.candidates {
		if c.Email == candidate.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	candidate.ID = r.f.nextSeq()
	copy := *candidate
	r.f.candidates[candidate.ID] = &copy
	return nil
}

func (r *fakeCandidateRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Candidate, error) {
	c, ok := r.f.candidates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *fakeCandidateRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Candidate, error) {
	for _, c := range r.f.candidates {
		if c.Email == email {
			copy := *c
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCandidateRepo) Update(ctx context.Context, tx *gorm.DB, candidate *models.Candidate) error {
	if _, ok := r.f.candidates[candidate.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copy := *candidate
	r.f.candidates[candidate.ID] = &copy
	return nil
}

func (r *fakeCandidateRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(r.f.candidates, id)
	return nil
}

func (r *fakeCandidateRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.CandidateFilters) ([]*models.Candidate, int64, error) {
	var out []*models.Candidate
	for _, c := range r.f.candidates {
		if filters.Search != nil {
			needle := strings.ToLower(*filters.Search)
			haystack := strings.ToLower(c.FirstName + " " + c.LastName + " " + c.Email)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		copy := *c
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeCandidateRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, tx, email)
	return err == nil, nil
}

// ===== VERIFICATION TOKENS =====

type fakeTokenRepo struct{ f *fakeRepository }

func (r *fakeTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *models.VerificationToken) error {
	token.ID = r.f.nextSeq()
	copy := *token
	r.f.tokens[token.ID] = &copy
	return nil
}

func (r *fakeTokenRepo) GetByHash(ctx context.Context, tx *gorm.DB, tokenHash string) (*models.VerificationToken, error) {
	for _, t := range r.f.tokens {
		if t.TokenHash == tokenHash {
			copy := *t
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTokenRepo) MarkConsumed(ctx context.Context, tx *gorm.DB, id uint, when time.Time) error {
	t, ok := r.f.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.ConsumedAt = &when
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, before time.Time) (int64, error) {
	var purged int64
	for id, t := range r.f.tokens {
		if t.ExpiresAt.Before(before) {
			delete(r.f.tokens, id)
			purged++
		}
	}
	return purged, nil
}

// ===== CMS =====

type fakeContentRepo struct{ f *fakeRepository }

func (r *fakeContentRepo) Create(ctx context.Context, tx *gorm.DB, content *models.Content) error {
	if _, ok := r.f.contents[content.Key]; ok {
		return gorm.ErrDuplicatedKey
	}
	content.ID = r.f.nextSeq()
	copy := *content
	r.f.contents[content.Key] = &copy
	return nil
}

func (r *fakeContentRepo) GetByKey(ctx context.Context, tx *gorm.DB, key string) (*models.Content, error) {
	c, ok := r.f.contents[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *fakeContentRepo) Update(ctx context.Context, tx *gorm.DB, content *models.Content) error {
	if _, ok := r.f.contents[content.Key]; !ok {
		return gorm.ErrRecordNotFound
	}
	copy := *content
	r.f.contents[content.Key] = &copy
	return nil
}

func (r *fakeContentRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.ContentFilters) ([]*models.Content, int64, error) {
	var out []*models.Content
	for _, c := range r.f.contents {
		if filters.Category != nil && c.Category != *filters.Category {
			continue
		}
		copy := *c
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

type fakePageRepo struct{ f *fakeRepository }

func (r *fakePageRepo) Create(ctx context.Context, tx *gorm.DB, page *models.Page) error {
	if _, ok := r.f.pages[page.Slug]; ok {
		return gorm.ErrDuplicatedKey
	}
	page.ID = r.f.nextSeq()
	copy := *page
	r.f.pages[page.Slug] = &copy
	return nil
}

func (r *fakePageRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*models.Page, error) {
	p, ok := r.f.pages[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *fakePageRepo) GetBySlugWithSections(ctx context.Context, tx *gorm.DB, slug string) (*models.Page, error) {
	return r.GetBySlug(ctx, tx, slug)
}

func (r *fakePageRepo) Update(ctx context.Context, tx *gorm.DB, page *models.Page) error {
	if _, ok := r.f.pages[page.Slug]; !ok {
		return gorm.ErrRecordNotFound
	}
	copy := *page
	r.f.pages[page.Slug] = &copy
	return nil
}

func (r *fakePageRepo) ReplaceSections(ctx context.Context, tx *gorm.DB, pageID uint, sections []models.Section) error {
	for _, p := range r.f.pages {
		if p.ID == pageID {
			p.Sections = make([]models.Section, len(sections))
			for i, s := range sections {
				s.ID = r.f.nextSeq()
				s.PageID = pageID
				p.Sections[i] = s
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
