package holiday

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// maxRelativeDepth bounds relative-rule chains; anything deeper is treated
// as unresolved.
const maxRelativeDepth = 8

// Calendar evaluates a rule set for arbitrary years. It is pure: rules go in
// once, every query is a function of (rules, year).
type Calendar struct {
	rules []Rule
	byID  map[uuid.UUID]Rule
}

func NewCalendar(rules []Rule) (*Calendar, error) {
	byID := make(map[uuid.UUID]Rule, len(rules))
	for _, r := range rules {
		if !r.Kind.IsValid() {
			return nil, ErrInvalidRuleKind
		}
		byID[r.ID] = r
	}
	for _, r := range rules {
		if r.Kind == KindRelative {
			if r.RefRuleID == nil {
				return nil, ErrUnknownRef
			}
			if _, ok := byID[*r.RefRuleID]; !ok {
				return nil, ErrUnknownRef
			}
		}
	}
	return &Calendar{rules: rules, byID: byID}, nil
}

func (c *Calendar) Rules() []Rule {
	return c.rules
}

// Resolve evaluates a rule for the given year. The second return value is
// false when the rule has no occurrence that year: a "5th Monday" that does
// not exist, a relative rule whose parent is unresolved or cyclic, or a
// weekend rule (which never names a single date). That is an expected
// outcome, not an error.
func (c *Calendar) Resolve(rule Rule, year int) (time.Time, bool) {
	return c.resolve(rule, year, make(map[uuid.UUID]bool), 0)
}

func (c *Calendar) resolve(rule Rule, year int, visited map[uuid.UUID]bool, depth int) (time.Time, bool) {
	if depth > maxRelativeDepth || visited[rule.ID] {
		return time.Time{}, false
	}
	visited[rule.ID] = true

	switch rule.Kind {
	case KindFixedDate:
		return date(year, rule.Month, rule.Day), true

	case KindNthWeekday:
		first := date(year, rule.Month, 1)
		offset := (int(rule.Weekday) - int(first.Weekday()) + 7) % 7
		d := first.AddDate(0, 0, offset+(rule.Ordinal-1)*7)
		if d.Month() != rule.Month {
			// e.g. a 5th Monday that does not exist this year
			return time.Time{}, false
		}
		return d, true

	case KindLastWeekday:
		last := date(year, rule.Month+1, 1).AddDate(0, 0, -1)
		back := (int(last.Weekday()) - int(rule.Weekday) + 7) % 7
		return last.AddDate(0, 0, -back), true

	case KindRelative:
		if rule.RefRuleID == nil {
			return time.Time{}, false
		}
		parent, ok := c.byID[*rule.RefRuleID]
		if !ok {
			return time.Time{}, false
		}
		base, ok := c.resolve(parent, year, visited, depth+1)
		if !ok {
			return time.Time{}, false
		}
		return base.AddDate(0, 0, rule.OffsetDays), true

	default:
		return time.Time{}, false
	}
}

// IsHolidayOrWeekend reports whether t falls on a Saturday, a Sunday, or a
// date any active non-weekend rule resolves to for t's year.
func (c *Calendar) IsHolidayOrWeekend(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return true
	}
	target := date(t.Year(), t.Month(), t.Day())
	for _, r := range c.rules {
		if !r.Active || r.Kind == KindWeekend {
			continue
		}
		if d, ok := c.Resolve(r, t.Year()); ok && d.Equal(target) {
			return true
		}
	}
	return false
}

type Occurrence struct {
	Name string
	Date time.Time
}

// Holidays resolves every active non-weekend rule for the year, sorted by
// date. Rules without an occurrence that year are omitted.
func (c *Calendar) Holidays(year int) []Occurrence {
	var out []Occurrence
	for _, r := range c.rules {
		if !r.Active || r.Kind == KindWeekend {
			continue
		}
		if d, ok := c.Resolve(r, year); ok {
			out = append(out, Occurrence{Name: r.Name, Date: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
