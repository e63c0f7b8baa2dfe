package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doanvu/school-eval-api/internal/apperr"
	"github.com/doanvu/school-eval-api/internal/ctxutil"
	"github.com/doanvu/school-eval-api/internal/models"
)

// EvaluationRepo owns the evaluations table. The table is a ledger: there is
// deliberately no update statement here.
type EvaluationRepo struct {
	DB *sql.DB
}

const viewColumns = `
e.id, e.student_id, e.class_id, e.teacher_id, e.type,
e.study_point, e.discipline_point, e.content,
to_char(e.date, 'YYYY-MM-DD') AS date,
s.name AS student_name, t.name AS teacher_name, c.name AS class_name`

const viewJoins = `
FROM evaluations e
JOIN users s ON s.id = e.student_id
JOIN users t ON t.id = e.teacher_id
JOIN classes c ON c.id = e.class_id`

func (r *EvaluationRepo) Create(ctx context.Context, ev models.Evaluation) (*models.Evaluation, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	err := r.DB.QueryRowContext(ctx, `
INSERT INTO evaluations (student_id, class_id, teacher_id, type, study_point, discipline_point, content, date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at`,
		ev.StudentID, ev.ClassID, ev.TeacherID, ev.Type,
		ev.StudyPoint, ev.DisciplinePoint, ev.Content, ev.Date,
	).Scan(&ev.ID, &ev.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert evaluation: %w", err)
	}
	return &ev, nil
}

// List returns the global ledger, newest first. limit<=0 means no limit.
func (r *EvaluationRepo) List(ctx context.Context, skip, limit int) ([]models.EvaluationView, error) {
	query := "SELECT " + viewColumns + viewJoins + " ORDER BY e.date DESC, e.id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, skip)
	} else if skip > 0 {
		query += " OFFSET $1"
		args = append(args, skip)
	}
	return r.queryViews(ctx, query, args...)
}

func (r *EvaluationRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.EvaluationView, error) {
	query := "SELECT " + viewColumns + viewJoins + " WHERE e.student_id = $1 ORDER BY e.date DESC, e.id DESC"
	return r.queryViews(ctx, query, studentID)
}

func (r *EvaluationRepo) ListByStudentClass(ctx context.Context, studentID, classID int64) ([]models.EvaluationView, error) {
	query := "SELECT " + viewColumns + viewJoins +
		" WHERE e.student_id = $1 AND e.class_id = $2 ORDER BY e.date DESC, e.id DESC"
	return r.queryViews(ctx, query, studentID, classID)
}

func (r *EvaluationRepo) Get(ctx context.Context, id int64) (*models.Evaluation, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var ev models.Evaluation
	err := r.DB.QueryRowContext(ctx, `
SELECT id, student_id, class_id, teacher_id, type, study_point, discipline_point, content, date, created_at
FROM evaluations WHERE id = $1`, id).Scan(
		&ev.ID, &ev.StudentID, &ev.ClassID, &ev.TeacherID, &ev.Type,
		&ev.StudyPoint, &ev.DisciplinePoint, &ev.Content, &ev.Date, &ev.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("evaluation", id)
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *EvaluationRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	res, err := r.DB.ExecContext(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return apperr.NotFound("evaluation", id)
	}
	return nil
}

func (r *EvaluationRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluations`).Scan(&n)
	return n, err
}

func (r *EvaluationRepo) queryViews(ctx context.Context, query string, args ...any) ([]models.EvaluationView, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.EvaluationView
	for rows.Next() {
		var v models.EvaluationView
		if err := rows.Scan(
			&v.ID, &v.StudentID, &v.ClassID, &v.TeacherID, &v.Type,
			&v.StudyPoint, &v.DisciplinePoint, &v.Content, &v.Date,
			&v.StudentName, &v.TeacherName, &v.ClassName,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
