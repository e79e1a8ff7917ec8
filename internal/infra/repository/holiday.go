package repository

import (
	"context"
	"time"

	"venue-reservations/internal/domain/holiday"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type HolidayRuleRepository struct {
	db db.DBTX
}

func NewHolidayRuleRepository(dbtx db.DBTX) *HolidayRuleRepository {
	return &HolidayRuleRepository{db: dbtx}
}

func (r *HolidayRuleRepository) ListActive(ctx context.Context) ([]holiday.Rule, error) {
	const query = `
		SELECT id, name, kind, month, day, weekday, ordinal, ref_rule_id,
		       offset_days, active
		FROM holiday_rules
		WHERE active
		ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list holiday rules", err)
	}
	defer rows.Close()

	var rules []holiday.Rule
	for rows.Next() {
		var (
			id                     pgtype.UUID
			name, kind             string
			month, day             pgtype.Int4
			weekday, ordinal       pgtype.Int4
			refRuleID              pgtype.UUID
			offsetDays             pgtype.Int4
			active                 bool
		)
		if err := rows.Scan(
			&id, &name, &kind, &month, &day, &weekday, &ordinal,
			&refRuleID, &offsetDays, &active,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan holiday rule", err)
		}

		rule := holiday.Rule{
			ID:        uuid.UUID(id.Bytes),
			Name:      name,
			Kind:      holiday.RuleKind(kind),
			RefRuleID: pgconv.UUIDPtrFromPgtype(refRuleID),
			Active:    active,
		}
		if month.Valid {
			rule.Month = time.Month(month.Int32)
		}
		if day.Valid {
			rule.Day = int(day.Int32)
		}
		if weekday.Valid {
			rule.Weekday = time.Weekday(weekday.Int32)
		}
		if ordinal.Valid {
			rule.Ordinal = int(ordinal.Int32)
		}
		if offsetDays.Valid {
			rule.OffsetDays = int(offsetDays.Int32)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate holiday rules", err)
	}
	return rules, nil
}
