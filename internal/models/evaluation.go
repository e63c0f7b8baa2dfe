package models

import "time"

type EvalType string

const (
	EvalStudy      EvalType = "study"
	EvalDiscipline EvalType = "discipline"
)

func (t EvalType) Valid() bool {
	return t == EvalStudy || t == EvalDiscipline
}

// Label used for display and free-text search.
func (t EvalType) Label() string {
	switch t {
	case EvalStudy:
		return "Học tập"
	case EvalDiscipline:
		return "Kỷ luật"
	default:
		return string(t)
	}
}

// Evaluation is one row of the ledger. Rows are immutable once created:
// a mistaken entry is deleted and re-created, never updated in place.
type Evaluation struct {
	ID              int64     `db:"id" json:"id"`
	StudentID       int64     `db:"student_id" json:"student_id"`
	ClassID         int64     `db:"class_id" json:"class_id"`
	TeacherID       int64     `db:"teacher_id" json:"teacher_id"`
	Type            EvalType  `db:"type" json:"type"`
	StudyPoint      int       `db:"study_point" json:"study_point"`
	DisciplinePoint int       `db:"discipline_point" json:"discipline_point"`
	Content         string    `db:"content" json:"content"`
	Date            time.Time `db:"date" json:"date"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// EvaluationView is a ledger row joined with display names, the shape list
// endpoints return and the query filter matches against.
type EvaluationView struct {
	ID              int64    `db:"id" json:"id"`
	StudentID       int64    `db:"student_id" json:"student_id"`
	ClassID         int64    `db:"class_id" json:"class_id"`
	TeacherID       int64    `db:"teacher_id" json:"teacher_id"`
	Type            EvalType `db:"type" json:"type"`
	StudyPoint      int      `db:"study_point" json:"study_point"`
	DisciplinePoint int      `db:"discipline_point" json:"discipline_point"`
	Content         string   `db:"content" json:"content"`
	Date            string   `db:"date" json:"date"`
	StudentName     string   `db:"student_name" json:"student_name,omitempty"`
	TeacherName     string   `db:"teacher_name" json:"teacher_name,omitempty"`
	ClassName       string   `db:"class_name" json:"class_name"`
}

// EvaluationDraft is what create consumes; id and names are server-assigned.
type EvaluationDraft struct {
	StudentID       int64    `json:"student_id"`
	ClassID         int64    `json:"class_id"`
	Type            EvalType `json:"type"`
	StudyPoint      int      `json:"study_point"`
	DisciplinePoint int      `json:"discipline_point"`
	Content         string   `json:"content"`
	Date            string   `json:"date"`
}

// ScoreSummary is derived from a ledger slice, never persisted.
type ScoreSummary struct {
	FinalStudyPoint      int `json:"final_study_point"`
	FinalDisciplinePoint int `json:"final_discipline_point"`
}

// QuickActionTemplate is a reusable point preset a teacher applies to speed
// up common entries. Session-local, not server-persisted.
type QuickActionTemplate struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	StudyPoint      int      `json:"study_point"`
	DisciplinePoint int      `json:"discipline_point"`
	Type            EvalType `json:"type"`
	Content         string   `json:"content"`
}
