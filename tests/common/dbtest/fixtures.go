//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

// inserts the holiday rule set the pricing engine expects
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO holiday_rules (id, name, kind, month, day, weekday, ordinal, ref_rule_id, offset_days, active) VALUES
		    ('a1a40200-0f0e-4f59-9c39-0a3b27c52101', 'Independence Day', 'fixed_date', 7, 4, NULL, NULL, NULL, 0, true),
		    ('a1a40200-0f0e-4f59-9c39-0a3b27c52102', 'Thanksgiving', 'nth_weekday', 11, NULL, 4, 4, NULL, 0, true),
		    ('a1a40200-0f0e-4f59-9c39-0a3b27c52103', 'Day After Thanksgiving', 'relative', NULL, NULL, NULL, NULL, 'a1a40200-0f0e-4f59-9c39-0a3b27c52102', 1, true),
		    ('a1a40200-0f0e-4f59-9c39-0a3b27c52104', 'Memorial Day', 'last_weekday', 5, NULL, 1, NULL, NULL, 0, true),
		    ('a1a40200-0f0e-4f59-9c39-0a3b27c52105', 'New Year''s Day', 'fixed_date', 1, 1, NULL, NULL, NULL, 0, true),
		    ('a1a40200-0f0e-4f59-9c39-0a3b27c52106', 'Labor Day', 'nth_weekday', 9, NULL, 1, 1, NULL, 0, true)
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
