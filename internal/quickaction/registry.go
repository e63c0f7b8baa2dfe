// Package quickaction keeps the session-local point presets teachers use to
// file common evaluations in one tap. The registry never talks to the
// ledger itself except through QuickCreate.
package quickaction

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/doanvu/school-eval-api/internal/apperr"
	"github.com/doanvu/school-eval-api/internal/models"
)

// Creator is the slice of the evaluation service QuickCreate needs.
type Creator interface {
	Create(ctx context.Context, ident models.Identity, draft models.EvaluationDraft) (*models.Evaluation, error)
}

// defaults mirror the stock preset set shipped with the dashboard.
func defaults() []models.QuickActionTemplate {
	return []models.QuickActionTemplate{
		{ID: "qa-speak-up", Name: "Phát biểu", StudyPoint: 2, DisciplinePoint: 0, Type: models.EvalStudy, Content: "Phát biểu xây dựng bài"},
		{ID: "qa-homework-done", Name: "Làm bài đầy đủ", StudyPoint: 1, DisciplinePoint: 0, Type: models.EvalStudy, Content: "Hoàn thành bài tập về nhà"},
		{ID: "qa-chatting", Name: "Nói chuyện riêng", StudyPoint: -1, DisciplinePoint: -2, Type: models.EvalDiscipline, Content: "Nói chuyện riêng trong giờ học"},
		{ID: "qa-late", Name: "Đi học muộn", StudyPoint: 0, DisciplinePoint: -1, Type: models.EvalDiscipline, Content: "Đi học muộn"},
		{ID: "qa-no-homework", Name: "Không làm bài", StudyPoint: -2, DisciplinePoint: 0, Type: models.EvalStudy, Content: "Không làm bài tập về nhà"},
	}
}

type Registry struct {
	mu        sync.Mutex
	templates []models.QuickActionTemplate
}

func NewRegistry() *Registry {
	return &Registry{templates: defaults()}
}

// List returns a copy in insertion order.
func (r *Registry) List() []models.QuickActionTemplate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.QuickActionTemplate, len(r.templates))
	copy(out, r.templates)
	return out
}

func (r *Registry) Get(id string) (models.QuickActionTemplate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.templates {
		if t.ID == id {
			return t, true
		}
	}
	return models.QuickActionTemplate{}, false
}

// Add appends a template. A blank id gets one assigned; a duplicate id is a
// validation error.
func (r *Registry) Add(t models.QuickActionTemplate) (models.QuickActionTemplate, error) {
	if t.Name == "" {
		return models.QuickActionTemplate{}, apperr.Validation("name", "required")
	}
	if !t.Type.Valid() {
		return models.QuickActionTemplate{}, apperr.Validation("type", "must be study or discipline")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	} else {
		for _, have := range r.templates {
			if have.ID == t.ID {
				return models.QuickActionTemplate{}, apperr.Validation("id", "already exists")
			}
		}
	}
	r.templates = append(r.templates, t)
	return t, nil
}

func (r *Registry) Edit(t models.QuickActionTemplate) error {
	if !t.Type.Valid() {
		return apperr.Validation("type", "must be study or discipline")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, have := range r.templates {
		if have.ID == t.ID {
			r.templates[i] = t
			return nil
		}
	}
	return apperr.NotFound("quick action", 0)
}

func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, have := range r.templates {
		if have.ID == id {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("quick action", 0)
}

// ResetToDefaults discards session customizations.
func (r *Registry) ResetToDefaults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates = defaults()
}

// Apply copies the template's value fields into a draft. Pure: the ledger is
// untouched and the caller still owns the student/class selection.
func Apply(t models.QuickActionTemplate) models.EvaluationDraft {
	return models.EvaluationDraft{
		Type:            t.Type,
		StudyPoint:      t.StudyPoint,
		DisciplinePoint: t.DisciplinePoint,
		Content:         t.Content,
	}
}

// QuickCreate is Apply followed by Create. The student+class precondition is
// checked before the creator (and so the store) is ever called.
func (r *Registry) QuickCreate(ctx context.Context, creator Creator, ident models.Identity, templateID string, studentID, classID int64) (*models.Evaluation, error) {
	t, ok := r.Get(templateID)
	if !ok {
		return nil, apperr.NotFound("quick action", 0)
	}
	if studentID == 0 || classID == 0 {
		return nil, apperr.Precondition("student and class must be selected")
	}
	draft := Apply(t)
	draft.StudentID = studentID
	draft.ClassID = classID
	return creator.Create(ctx, ident, draft)
}
