package repository

import (
	"context"

	"venue-reservations/internal/infra"
	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/pkg/pgconv"
	"venue-reservations/internal/usecase/shared"
)

type RunRepository struct {
	db db.DBTX
}

func NewRunRepository(dbtx db.DBTX) *RunRepository {
	return &RunRepository{db: dbtx}
}

func (r *RunRepository) Insert(ctx context.Context, rec *shared.RunRecord) error {
	const query = `
		INSERT INTO automation_runs (id, ran_at, success, message, report)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(rec.ID),
		pgconv.TimeToPgtype(rec.RanAt),
		rec.Success,
		rec.Message,
		rec.Report,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert automation run", err)
	}
	return nil
}
