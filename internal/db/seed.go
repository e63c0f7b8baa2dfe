package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doanvu/school-eval-api/internal/models"
)

// SeedDemo inserts a small demo school when the users table is empty.
// Idempotent: a non-empty table is left alone.
func SeedDemo(ctx context.Context, database *sql.DB) error {
	var count int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	users := &UserRepo{DB: database}
	classes := &ClassRepo{DB: database}

	classID, err := classes.Create(ctx, "10A1")
	if err != nil {
		return fmt.Errorf("seed: class: %w", err)
	}

	teacherID, err := users.Create(ctx, models.User{Name: "Trần Thị Hoa", Role: models.Teacher})
	if err != nil {
		return fmt.Errorf("seed: teacher: %w", err)
	}
	if err := classes.AddTeacher(ctx, classID, teacherID); err != nil {
		return err
	}

	students := []string{"Nguyễn Văn An", "Lê Thị Bình", "Phạm Minh Châu"}
	for _, name := range students {
		sid, err := users.Create(ctx, models.User{Name: name, Role: models.Student, ClassID: &classID})
		if err != nil {
			return fmt.Errorf("seed: student: %w", err)
		}
		if err := classes.AddStudent(ctx, classID, sid); err != nil {
			return err
		}
	}

	if _, err := users.Create(ctx, models.User{Name: "Hoàng Văn Quản", Role: models.Manager}); err != nil {
		return fmt.Errorf("seed: manager: %w", err)
	}
	return nil
}
