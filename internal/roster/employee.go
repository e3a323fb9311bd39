package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const minutesPerDay = 24 * 60

var sixty = decimal.NewFromInt(60)

// ClockTime is a wall clock time of day with minute precision.
type ClockTime struct {
	minutes int
}

// ParseClock parses an "HH:MM" 24-hour time.
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time %q, expected HH:MM: %w", s, err)
	}
	return ClockTime{minutes: t.Hour()*60 + t.Minute()}, nil
}

// Clock builds a ClockTime from hour and minute.
func Clock(hour, minute int) ClockTime {
	return ClockTime{minutes: hour*60 + minute}
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

// ParseWeekday accepts full English day names in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// Employee is one member of the shop staff.
type Employee struct {
	ID         string
	Name       string
	Role       Role
	Start      ClockTime
	End        ClockTime
	WorkDays   []time.Weekday
	HourlyRate decimal.Decimal
	FullTime   bool
}

// ShiftMinutes returns the length of one shift. Shifts ending at or before
// their start time run past midnight.
func (e Employee) ShiftMinutes() int {
	d := e.End.minutes - e.Start.minutes
	if d <= 0 {
		d += minutesPerDay
	}
	return d
}

// ShiftHours returns the length of one shift in hours.
func (e Employee) ShiftHours() decimal.Decimal {
	return decimal.NewFromInt(int64(e.ShiftMinutes())).Div(sixty)
}

// WeeklyHours returns the scheduled hours per week.
func (e Employee) WeeklyHours() decimal.Decimal {
	return e.ShiftHours().Mul(decimal.NewFromInt(int64(len(e.WorkDays))))
}

// WeeklySalary returns the gross weekly pay.
func (e Employee) WeeklySalary() decimal.Decimal {
	return e.WeeklyHours().Mul(e.HourlyRate)
}

// WorksOn reports whether day is one of the employee's work days.
func (e Employee) WorksOn(day time.Weekday) bool {
	for _, d := range e.WorkDays {
		if d == day {
			return true
		}
	}
	return false
}

// Employment returns whether the employee is full-time or part-time.
func (e Employee) Employment() Employment {
	if e.FullTime {
		return FullTime
	}
	return PartTime
}
