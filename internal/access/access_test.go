package access

import (
	"testing"

	"github.com/doanvu/school-eval-api/internal/models"
)

func roles(r models.Role) []models.Role { return []models.Role{r} }

func TestEvaluationMatrix(t *testing.T) {
	cases := []struct {
		role      models.Role
		op        Op
		want      bool
	}{
		{models.Student, OpCreate, false},
		{models.Student, OpDelete, false},
		{models.Student, OpList, true},
		{models.Parent, OpCreate, false},
		{models.Parent, OpDelete, false},
		{models.Parent, OpList, true},
		{models.Teacher, OpCreate, true},
		{models.Teacher, OpDelete, true},
		{models.Teacher, OpList, true},
		// evaluation creation is teacher-only; manager does not get it
		{models.Manager, OpCreate, false},
		{models.Manager, OpDelete, false},
		{models.Manager, OpList, true},
	}
	for _, tc := range cases {
		if got := Can(roles(tc.role), Evaluation, tc.op); got != tc.want {
			t.Fatalf("%s %s evaluation: want %v, got %v", tc.role, tc.op, tc.want, got)
		}
	}
}

func TestAdministrativeEntities(t *testing.T) {
	for _, res := range []Resource{Class, Payroll, Tuition, TeacherReview} {
		if !Can(roles(models.Manager), res, OpCreate) || !Can(roles(models.Manager), res, OpDelete) {
			t.Fatalf("manager must administer %s", res)
		}
		if Can(roles(models.Student), res, OpCreate) {
			t.Fatalf("student must not create %s", res)
		}
	}
	for _, res := range []Resource{Schedule, Test} {
		if !Can(roles(models.Teacher), res, OpCreate) || !Can(roles(models.Teacher), res, OpEdit) {
			t.Fatalf("teacher must maintain %s", res)
		}
		if Can(roles(models.Teacher), res, OpDelete) {
			t.Fatalf("teacher delete on %s is not granted", res)
		}
	}
}

func TestNoEditOnEvaluations(t *testing.T) {
	// the ledger has no edit anywhere; correction is delete + create
	for _, role := range Roles() {
		if Can(roles(role), Evaluation, OpEdit) {
			t.Fatalf("%s must not edit evaluations", role)
		}
	}
}

func TestMultiRoleUnion(t *testing.T) {
	both := []models.Role{models.Parent, models.Teacher}
	if !Can(both, Evaluation, OpCreate) {
		t.Fatal("any granting role suffices")
	}
}

func TestCanDeleteEvaluationOwnership(t *testing.T) {
	teacher := models.Identity{UserID: 7, Roles: roles(models.Teacher)}
	own := &models.Evaluation{ID: 1, TeacherID: 7}
	foreign := &models.Evaluation{ID: 2, TeacherID: 8}

	if !CanDeleteEvaluation(teacher, own) {
		t.Fatal("teacher must delete own records")
	}
	if CanDeleteEvaluation(teacher, foreign) {
		t.Fatal("teacher must not delete another teacher's record")
	}

	manager := models.Identity{UserID: 7, Roles: roles(models.Manager)}
	if CanDeleteEvaluation(manager, own) {
		t.Fatal("manager holds no evaluation delete, ownership or not")
	}
}

func TestHiddenColumns(t *testing.T) {
	if h := HiddenColumns(roles(models.Student), Evaluation); !h["student"] {
		t.Fatal("student list hides the self-evident student column")
	}
	if h := HiddenColumns(roles(models.Teacher), Evaluation); !h["teacher"] {
		t.Fatal("teacher list hides the self-evident teacher column")
	}
	if h := HiddenColumns(roles(models.Parent), Evaluation); h != nil {
		t.Fatalf("parent hides nothing, got %v", h)
	}
	if h := HiddenColumns(roles(models.Manager), Evaluation); h != nil {
		t.Fatalf("manager hides nothing, got %v", h)
	}
	if h := HiddenColumns(roles(models.Student), Class); h != nil {
		t.Fatalf("only evaluation lists are column-scoped, got %v", h)
	}
}

func TestMatrixIsTotal(t *testing.T) {
	// every (role, resource, op) pair must resolve without panicking, and
	// list everything a role can reach must at least be consistent
	for _, role := range Roles() {
		for _, res := range Resources() {
			for _, op := range []Op{OpCreate, OpEdit, OpDelete, OpList} {
				_ = Can(roles(role), res, op)
			}
		}
	}
}
