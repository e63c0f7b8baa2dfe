package evaluation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/doanvu/school-eval-api/internal/access"
	"github.com/doanvu/school-eval-api/internal/apperr"
	"github.com/doanvu/school-eval-api/internal/metrics"
	"github.com/doanvu/school-eval-api/internal/models"
	"github.com/doanvu/school-eval-api/internal/notify"
)

// Store is the ledger persistence contract. Note the absence of an update
// method: corrections are delete + create.
type Store interface {
	Create(ctx context.Context, ev models.Evaluation) (*models.Evaluation, error)
	List(ctx context.Context, skip, limit int) ([]models.EvaluationView, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.EvaluationView, error)
	ListByStudentClass(ctx context.Context, studentID, classID int64) ([]models.EvaluationView, error)
	Get(ctx context.Context, id int64) (*models.Evaluation, error)
	Delete(ctx context.Context, id int64) error
}

// Roster validates (class, student) pairs and teacher assignments. Consumed,
// not owned, by this package.
type Roster interface {
	HasStudent(ctx context.Context, classID, studentID int64) (bool, error)
	HasTeacher(ctx context.Context, classID, teacherID int64) (bool, error)
}

type Service struct {
	store  Store
	roster Roster
	sink   notify.Sink
	log    *zap.SugaredLogger
}

func NewService(store Store, roster Roster, sink notify.Sink, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{store: store, roster: roster, sink: sink, log: log}
}

// Create appends a ledger entry. Validation and capability checks all run
// before the store is touched, so a rejected draft causes no I/O.
func (s *Service) Create(ctx context.Context, ident models.Identity, draft models.EvaluationDraft) (*models.Evaluation, error) {
	if !access.Can(ident.Roles, access.Evaluation, access.OpCreate) {
		return nil, apperr.Access("evaluation creation is teacher-only")
	}
	if draft.StudentID == 0 {
		return nil, apperr.Validation("student_id", "required")
	}
	if draft.ClassID == 0 {
		return nil, apperr.Validation("class_id", "required")
	}
	if !draft.Type.Valid() {
		return nil, apperr.Validation("type", "must be study or discipline")
	}

	date := time.Now()
	if draft.Date != "" {
		norm, ok := NormalizeDate(draft.Date)
		if !ok {
			return nil, apperr.Validation("date", "not a valid calendar date")
		}
		date, _ = time.Parse("2006-01-02", norm)
	}

	ok, err := s.roster.HasStudent(ctx, draft.ClassID, draft.StudentID)
	if err != nil {
		return nil, fmt.Errorf("roster lookup: %w", err)
	}
	if !ok {
		return nil, apperr.Validation("student_id", "student is not in this class")
	}
	ok, err = s.roster.HasTeacher(ctx, draft.ClassID, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("roster lookup: %w", err)
	}
	if !ok {
		return nil, apperr.Access("teachers may evaluate only their own classes")
	}

	created, err := s.store.Create(ctx, models.Evaluation{
		StudentID:       draft.StudentID,
		ClassID:         draft.ClassID,
		TeacherID:       ident.UserID,
		Type:            draft.Type,
		StudyPoint:      draft.StudyPoint,
		DisciplinePoint: draft.DisciplinePoint,
		Content:         draft.Content,
		Date:            date,
	})
	if err != nil {
		s.notifyFailure("không thể lưu đánh giá")
		return nil, err
	}

	metrics.EvaluationsCreated.Inc()
	s.log.Infow("evaluation created", "id", created.ID, "student", created.StudentID, "class", created.ClassID)
	s.notifySuccess("đã lưu đánh giá")
	return created, nil
}

// Delete removes one ledger entry. Ownership is checked against the stored
// row before anything is removed; an unknown id is NotFound either way.
func (s *Service) Delete(ctx context.Context, ident models.Identity, id int64) error {
	if !access.Can(ident.Roles, access.Evaluation, access.OpDelete) {
		return apperr.Access("evaluation delete is teacher-only")
	}
	ev, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanDeleteEvaluation(ident, ev) {
		return apperr.Access("teachers may delete only their own records")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.notifyFailure("không thể xoá đánh giá")
		return err
	}
	metrics.EvaluationsDeleted.Inc()
	s.log.Infow("evaluation deleted", "id", id, "by", ident.UserID)
	s.notifySuccess("đã xoá đánh giá")
	return nil
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]models.EvaluationView, error) {
	return s.store.List(ctx, skip, limit)
}

func (s *Service) ListByStudent(ctx context.Context, studentID int64) ([]models.EvaluationView, error) {
	return s.store.ListByStudent(ctx, studentID)
}

func (s *Service) ListByStudentClass(ctx context.Context, studentID, classID int64) ([]models.EvaluationView, error) {
	return s.store.ListByStudentClass(ctx, studentID, classID)
}

// Summary derives the global standing for a student: a fresh fold over the
// scoped fetch, never a cached value.
func (s *Service) Summary(ctx context.Context, studentID int64) (models.ScoreSummary, error) {
	records, err := s.store.ListByStudent(ctx, studentID)
	if err != nil {
		return models.ScoreSummary{}, err
	}
	return Summarize(records), nil
}

// ClassSummary derives the standing for a student within one class. Same
// fold as Summary; only the slice differs.
func (s *Service) ClassSummary(ctx context.Context, studentID, classID int64) (models.ScoreSummary, error) {
	records, err := s.store.ListByStudentClass(ctx, studentID, classID)
	if err != nil {
		return models.ScoreSummary{}, err
	}
	return Summarize(records), nil
}

func (s *Service) notifySuccess(msg string) {
	if s.sink != nil {
		s.sink.Success(msg)
	}
}

func (s *Service) notifyFailure(msg string) {
	if s.sink != nil {
		s.sink.Failure(msg)
	}
}
