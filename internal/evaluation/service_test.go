package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/doanvu/school-eval-api/internal/apperr"
	"github.com/doanvu/school-eval-api/internal/models"
)

type fakeStore struct {
	records    map[int64]*models.Evaluation
	nextID     int64
	createCall int
	deleteCall int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[int64]*models.Evaluation{}, nextID: 1}
}

func (f *fakeStore) Create(_ context.Context, ev models.Evaluation) (*models.Evaluation, error) {
	f.createCall++
	ev.ID = f.nextID
	f.nextID++
	f.records[ev.ID] = &ev
	return &ev, nil
}

func (f *fakeStore) List(context.Context, int, int) ([]models.EvaluationView, error) {
	return f.views(), nil
}

func (f *fakeStore) ListByStudent(_ context.Context, studentID int64) ([]models.EvaluationView, error) {
	var out []models.EvaluationView
	for _, v := range f.views() {
		if v.StudentID == studentID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByStudentClass(_ context.Context, studentID, classID int64) ([]models.EvaluationView, error) {
	var out []models.EvaluationView
	for _, v := range f.views() {
		if v.StudentID == studentID && v.ClassID == classID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id int64) (*models.Evaluation, error) {
	ev, ok := f.records[id]
	if !ok {
		return nil, apperr.NotFound("evaluation", id)
	}
	return ev, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	f.deleteCall++
	if _, ok := f.records[id]; !ok {
		return apperr.NotFound("evaluation", id)
	}
	delete(f.records, id)
	return nil
}

func (f *fakeStore) views() []models.EvaluationView {
	var out []models.EvaluationView
	for _, ev := range f.records {
		out = append(out, models.EvaluationView{
			ID: ev.ID, StudentID: ev.StudentID, ClassID: ev.ClassID, TeacherID: ev.TeacherID,
			Type: ev.Type, StudyPoint: ev.StudyPoint, DisciplinePoint: ev.DisciplinePoint,
			Content: ev.Content, Date: ev.Date.Format("2006-01-02"),
		})
	}
	return out
}

type fakeRoster struct {
	calls int
}

func (f *fakeRoster) HasStudent(context.Context, int64, int64) (bool, error) {
	f.calls++
	return true, nil
}

func (f *fakeRoster) HasTeacher(context.Context, int64, int64) (bool, error) {
	f.calls++
	return true, nil
}

var teacherIdent = models.Identity{UserID: 7, Roles: []models.Role{models.Teacher}}

func TestCreateValidationShortCircuits(t *testing.T) {
	store := newFakeStore()
	roster := &fakeRoster{}
	svc := NewService(store, roster, nil, nil)

	cases := []models.EvaluationDraft{
		{ClassID: 1, Type: models.EvalStudy},                  // missing student
		{StudentID: 1, Type: models.EvalStudy},                // missing class
		{StudentID: 1, ClassID: 1},                            // missing type
		{StudentID: 1, ClassID: 1, Type: "bonus"},             // unknown type
		{StudentID: 1, ClassID: 1, Type: models.EvalStudy, Date: "tomorrow"}, // bad date
	}
	for i, draft := range cases {
		_, err := svc.Create(context.Background(), teacherIdent, draft)
		var vErr *apperr.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("case %d: want ValidationError, got %v", i, err)
		}
	}
	if store.createCall != 0 {
		t.Fatalf("invalid drafts must not reach the store, got %d calls", store.createCall)
	}
	if roster.calls != 0 {
		t.Fatalf("invalid drafts must not reach the roster, got %d calls", roster.calls)
	}
}

func TestCreateRequiresTeacherRole(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeRoster{}, nil, nil)

	for _, role := range []models.Role{models.Student, models.Parent, models.Manager} {
		ident := models.Identity{UserID: 1, Roles: []models.Role{role}}
		_, err := svc.Create(context.Background(), ident, models.EvaluationDraft{
			StudentID: 1, ClassID: 1, Type: models.EvalStudy,
		})
		var aErr *apperr.AccessError
		if !errors.As(err, &aErr) {
			t.Fatalf("%s: want AccessError, got %v", role, err)
		}
	}
	if store.createCall != 0 {
		t.Fatalf("rejected roles must not reach the store")
	}
}

func TestCreateDefaultsAndReturnsServerID(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeRoster{}, nil, nil)

	created, err := svc.Create(context.Background(), teacherIdent, models.EvaluationDraft{
		StudentID: 3, ClassID: 2, Type: models.EvalStudy,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 {
		t.Fatal("id must be assigned")
	}
	if created.StudyPoint != 0 || created.DisciplinePoint != 0 {
		t.Fatalf("absent points must default to zero, got %+v", created)
	}
	if created.TeacherID != teacherIdent.UserID {
		t.Fatalf("teacher id must come from the identity, got %d", created.TeacherID)
	}
}

func TestDeleteOwnershipEnforced(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeRoster{}, nil, nil)

	created, err := svc.Create(context.Background(), teacherIdent, models.EvaluationDraft{
		StudentID: 3, ClassID: 2, Type: models.EvalDiscipline, DisciplinePoint: -2,
	})
	if err != nil {
		t.Fatal(err)
	}

	other := models.Identity{UserID: 99, Roles: []models.Role{models.Teacher}}
	err = svc.Delete(context.Background(), other, created.ID)
	var aErr *apperr.AccessError
	if !errors.As(err, &aErr) {
		t.Fatalf("want AccessError for foreign record, got %v", err)
	}
	if store.deleteCall != 0 {
		t.Fatal("rejected delete must not reach the store")
	}

	if err := svc.Delete(context.Background(), teacherIdent, created.ID); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteUnknownIDIsNotFound(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeRoster{}, nil, nil)
	err := svc.Delete(context.Background(), teacherIdent, 12345)
	var nErr *apperr.NotFoundError
	if !errors.As(err, &nErr) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestSummaryDerivesFreshFromLedger(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeRoster{}, nil, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, teacherIdent, models.EvaluationDraft{
		StudentID: 3, ClassID: 2, Type: models.EvalStudy, StudyPoint: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, teacherIdent, models.EvaluationDraft{
		StudentID: 3, ClassID: 2, Type: models.EvalDiscipline, StudyPoint: -1, DisciplinePoint: -2,
	}); err != nil {
		t.Fatal(err)
	}

	sum, err := svc.Summary(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if sum.FinalStudyPoint != 101 || sum.FinalDisciplinePoint != 98 {
		t.Fatalf("got %+v", sum)
	}

	// delete + recompute: totals move back by exactly the deleted deltas
	if err := svc.Delete(ctx, teacherIdent, first.ID); err != nil {
		t.Fatal(err)
	}
	sum, err = svc.Summary(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if sum.FinalStudyPoint != 99 || sum.FinalDisciplinePoint != 98 {
		t.Fatalf("after delete got %+v", sum)
	}
}
