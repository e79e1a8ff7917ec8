package repository

import (
	"context"
	"time"

	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/pkg/errs"
	"venue-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `
	id, email, password_hash, role, display_name, last_login, is_active,
	created_at, updated_at`

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	return r.findOne(ctx, query, pgconv.UUIDToPgtype(id))
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login = $2, updated_at = now() WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
		pgconv.TimeToPgtype(at),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id                   pgtype.UUID
		email, passwordHash  string
		role, displayName    string
		lastLogin            pgtype.Timestamptz
		isActive             bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &email, &passwordHash, &role, &displayName, &lastLogin,
		&isActive, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	addr, err := user.NewEmail(email)
	if err != nil {
		return nil, errs.Wrap(err, "stored email is invalid")
	}
	return user.ReconstructUser(
		uuid.UUID(id.Bytes),
		addr,
		passwordHash,
		user.Role(role),
		displayName,
		pgconv.TimePtrFromPgtype(lastLogin),
		isActive,
		createdAt.Time,
		updatedAt.Time,
	), nil
}
