package holiday

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRuleKind = errors.New("invalid holiday rule kind")
	ErrUnknownRef      = errors.New("relative rule references unknown rule")
	ErrRuleCycle       = errors.New("relative rule chain forms a cycle")
)

type RuleKind string

const (
	// KindFixedDate: same month/day every year (e.g. July 4).
	KindFixedDate RuleKind = "fixed_date"
	// KindNthWeekday: the nth occurrence of a weekday in a month
	// (e.g. 4th Thursday of November).
	KindNthWeekday RuleKind = "nth_weekday"
	// KindLastWeekday: the last occurrence of a weekday in a month
	// (e.g. last Monday of May).
	KindLastWeekday RuleKind = "last_weekday"
	// KindRelative: a signed day offset from another rule
	// (e.g. the day after the nth-weekday rule above).
	KindRelative RuleKind = "relative"
	// KindWeekend: Saturdays and Sundays. Never resolved to a single date;
	// checked against day-of-week directly.
	KindWeekend RuleKind = "weekend"
)

func (k RuleKind) IsValid() bool {
	switch k {
	case KindFixedDate, KindNthWeekday, KindLastWeekday, KindRelative, KindWeekend:
		return true
	default:
		return false
	}
}

// Rule is a declarative, evergreen holiday definition. Which attributes are
// meaningful depends on Kind; the rest stay zero.
type Rule struct {
	ID   uuid.UUID
	Name string
	Kind RuleKind

	// fixed_date, nth_weekday, last_weekday
	Month time.Month
	// fixed_date
	Day int
	// nth_weekday, last_weekday
	Weekday time.Weekday
	// nth_weekday: 1-based ordinal within the month
	Ordinal int

	// relative
	RefRuleID  *uuid.UUID
	OffsetDays int

	Active bool
}
