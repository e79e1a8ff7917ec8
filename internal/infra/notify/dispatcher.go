package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/pkg/pgconv"
	"venue-reservations/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// JobDispatcher enqueues notifications as notification_jobs rows for an
// external delivery worker. Send never returns an error: a failed enqueue is
// logged and dropped so it cannot undo the state change that triggered it.
//
// Dedup-keyed notifications hit the unique index on dedup_key, so a rerun of
// the daily automation enqueues nothing new.
type JobDispatcher struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewJobDispatcher(dbtx db.DBTX, logger *slog.Logger) *JobDispatcher {
	return &JobDispatcher{db: dbtx, logger: logger}
}

func (d *JobDispatcher) Send(ctx context.Context, n commands.Notification) {
	payload, err := json.Marshal(n.Payload)
	if err != nil {
		d.logger.Error("failed to encode notification payload",
			slog.String("template", n.Template),
			slog.String("entity_id", n.EntityID.String()),
			slog.String("error", err.Error()))
		return
	}

	const query = `
		INSERT INTO notification_jobs (
			id, template, entity_type, entity_id, dedup_key, payload, channels
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (dedup_key) DO NOTHING`

	var dedupKey pgtype.Text
	if n.DedupKey != "" {
		dedupKey = pgtype.Text{String: n.DedupKey, Valid: true}
	}

	tag, err := d.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(uuid.New()),
		n.Template,
		n.EntityType,
		pgconv.UUIDToPgtype(n.EntityID),
		dedupKey,
		payload,
		n.Channels,
	)
	if err != nil {
		d.logger.Error("failed to enqueue notification",
			slog.String("template", n.Template),
			slog.String("entity_id", n.EntityID.String()),
			slog.String("error", err.Error()))
		return
	}
	if tag.RowsAffected() == 0 {
		d.logger.Debug("notification deduplicated",
			slog.String("template", n.Template),
			slog.String("dedup_key", n.DedupKey))
	}
}
