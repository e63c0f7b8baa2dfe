// Package access is the capability matrix: (role, resource, operation) →
// allowed, plus the column-visibility map applied to list responses. One
// data table instead of per-screen role conditionals.
package access

import "github.com/doanvu/school-eval-api/internal/models"

type Resource string

const (
	Evaluation    Resource = "evaluation"
	Class         Resource = "class"
	Payroll       Resource = "payroll"
	Tuition       Resource = "tuition"
	Schedule      Resource = "schedule"
	Test          Resource = "test"
	TeacherReview Resource = "teacher_review"
)

type Op string

const (
	OpCreate Op = "create"
	OpEdit   Op = "edit"
	OpDelete Op = "delete"
	OpList   Op = "list"
)

type capSet struct {
	create, edit, delete, list bool
}

func (c capSet) allows(op Op) bool {
	switch op {
	case OpCreate:
		return c.create
	case OpEdit:
		return c.edit
	case OpDelete:
		return c.delete
	case OpList:
		return c.list
	default:
		return false
	}
}

var readOnly = capSet{list: true}
var full = capSet{create: true, edit: true, delete: true, list: true}

// matrix is the whole authorization story. Evaluation creation is
// teacher-only; managers administer the administrative entities; teachers
// additionally maintain schedules and tests. Evaluation delete for teachers
// is further scoped by ownership (CanDeleteEvaluation).
var matrix = map[models.Role]map[Resource]capSet{
	models.Student: {
		Evaluation: readOnly, Class: readOnly, Schedule: readOnly, Test: readOnly,
	},
	models.Parent: {
		Evaluation: readOnly, Class: readOnly, Schedule: readOnly, Test: readOnly, Tuition: readOnly,
	},
	models.Teacher: {
		Evaluation: {create: true, delete: true, list: true},
		Class:      readOnly,
		Schedule:   {create: true, edit: true, list: true},
		Test:       {create: true, edit: true, list: true},
		Payroll:    readOnly,
	},
	models.Manager: {
		Evaluation:    readOnly,
		Class:         full,
		Payroll:       full,
		Tuition:       full,
		TeacherReview: full,
		Schedule:      readOnly,
		Test:          readOnly,
	},
}

// Can reports whether any of the caller's roles grants the operation.
func Can(roles []models.Role, res Resource, op Op) bool {
	for _, role := range roles {
		if caps, ok := matrix[role]; ok && caps[res].allows(op) {
			return true
		}
	}
	return false
}

// CanDeleteEvaluation applies the ownership rule on top of the matrix: a
// teacher may delete only records they could have created.
func CanDeleteEvaluation(ident models.Identity, ev *models.Evaluation) bool {
	if !Can(ident.Roles, Evaluation, OpDelete) {
		return false
	}
	return ev.TeacherID == ident.UserID
}

// HiddenColumns names list columns suppressed for the caller: a student's
// own rows need no student column, a teacher's no teacher column.
func HiddenColumns(roles []models.Role, res Resource) map[string]bool {
	if res != Evaluation {
		return nil
	}
	hidden := map[string]bool{}
	for _, role := range roles {
		switch role {
		case models.Student:
			hidden["student"] = true
		case models.Teacher:
			hidden["teacher"] = true
		}
	}
	if len(hidden) == 0 {
		return nil
	}
	return hidden
}

// Roles lists every role the matrix knows, for table-completeness tests.
func Roles() []models.Role {
	return []models.Role{models.Student, models.Parent, models.Teacher, models.Manager}
}

func Resources() []Resource {
	return []Resource{Evaluation, Class, Payroll, Tuition, Schedule, Test, TeacherReview}
}
