package db

import (
	"context"
	"database/sql"

	"github.com/doanvu/school-eval-api/internal/apperr"
	"github.com/doanvu/school-eval-api/internal/ctxutil"
	"github.com/doanvu/school-eval-api/internal/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r *UserRepo) Get(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var u models.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, role, class_id FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Role, &u.ClassID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("user", id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u models.User) (int64, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	var id int64
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO users (name, role, class_id) VALUES ($1, $2, $3) RETURNING id`,
		u.Name, u.Role, u.ClassID,
	).Scan(&id)
	return id, err
}

func (r *UserRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, role, class_id FROM users WHERE role = $1 ORDER BY name`, role)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.ClassID); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
