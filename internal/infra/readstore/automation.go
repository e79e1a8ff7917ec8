package readstore

import (
	"context"

	"venue-reservations/internal/infra"
	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AutomationReadStore struct {
	db db.DBTX
}

func NewAutomationReadStore(dbtx db.DBTX) *AutomationReadStore {
	return &AutomationReadStore{db: dbtx}
}

func (r *AutomationReadStore) FindRecent(ctx context.Context, limit int) ([]*queries.RunView, error) {
	const query = `
		SELECT id, ran_at, success, message, report
		FROM automation_runs
		ORDER BY ran_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list automation runs", err)
	}
	defer rows.Close()

	var result []*queries.RunView
	for rows.Next() {
		var (
			id      pgtype.UUID
			ranAt   pgtype.Timestamptz
			success bool
			message string
			report  []byte
		)
		if err := rows.Scan(&id, &ranAt, &success, &message, &report); err != nil {
			return nil, infra.WrapRepoErr("failed to scan automation run", err)
		}
		result = append(result, &queries.RunView{
			ID:      uuid.UUID(id.Bytes),
			RanAt:   ranAt.Time,
			Success: success,
			Message: message,
			Report:  report,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate automation runs", err)
	}
	return result, nil
}
