package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// textOrNull stores empty optional strings as NULL so partial unique and
// filter queries behave.
func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func textValue(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
