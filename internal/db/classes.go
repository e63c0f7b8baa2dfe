package db

import (
	"context"
	"database/sql"

	"github.com/doanvu/school-eval-api/internal/apperr"
	"github.com/doanvu/school-eval-api/internal/ctxutil"
	"github.com/doanvu/school-eval-api/internal/models"
)

// ClassRepo is the roster provider: which students belong to which class,
// and which teachers teach it.
type ClassRepo struct {
	DB *sql.DB
}

func (r *ClassRepo) Get(ctx context.Context, id int64) (*models.Class, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var c models.Class
	err := r.DB.QueryRowContext(ctx, `SELECT id, name FROM classes WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("class", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassRepo) Create(ctx context.Context, name string) (int64, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var id int64
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO classes (name) VALUES ($1) ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`,
		name,
	).Scan(&id)
	return id, err
}

func (r *ClassRepo) AddStudent(ctx context.Context, classID, studentID int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO class_students (class_id, student_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		classID, studentID)
	return err
}

func (r *ClassRepo) AddTeacher(ctx context.Context, classID, teacherID int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO class_teachers (class_id, teacher_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		classID, teacherID)
	return err
}

// HasStudent reports whether the (class, student) pair is on the roster.
func (r *ClassRepo) HasStudent(ctx context.Context, classID, studentID int64) (bool, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var one int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM class_students WHERE class_id = $1 AND student_id = $2`,
		classID, studentID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasTeacher reports whether the teacher teaches the class.
func (r *ClassRepo) HasTeacher(ctx context.Context, classID, teacherID int64) (bool, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var one int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM class_teachers WHERE class_id = $1 AND teacher_id = $2`,
		classID, teacherID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
