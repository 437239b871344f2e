package service

import (
	"time"

	"github.com/lshigami/dailydose/config"
)

const dateLayout = "2006-01-02"

// Calendar answers "what day is it" in the configured time zone. Daily sets,
// sessions and streaks all roll over on its date boundary.
type Calendar struct {
	now func() time.Time
	loc *time.Location
}

func NewCalendar(cfg *config.Config) *Calendar {
	return &Calendar{now: time.Now, loc: cfg.App.Location()}
}

// NewFixedCalendar builds a calendar whose clock is driven by now.
func NewFixedCalendar(now func() time.Time, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{now: now, loc: loc}
}

func (c *Calendar) Now() time.Time {
	return c.now().UTC()
}

func (c *Calendar) Today() string {
	return c.now().In(c.loc).Format(dateLayout)
}

// NextStreak derives the login streak for a login on today given the last
// recorded login date. Dates are YYYY-MM-DD in the same zone.
func NextStreak(current, longest int, lastLogin *string, today string) (int, int) {
	switch {
	case lastLogin != nil && *lastLogin == today:
		if current < 1 {
			current = 1
		}
	case lastLogin != nil && isPreviousDay(*lastLogin, today):
		current++
	default:
		current = 1
	}
	if current > longest {
		longest = current
	}
	return current, longest
}

func isPreviousDay(last, today string) bool {
	l, err := time.Parse(dateLayout, last)
	if err != nil {
		return false
	}
	t, err := time.Parse(dateLayout, today)
	if err != nil {
		return false
	}
	return l.AddDate(0, 0, 1).Equal(t)
}
