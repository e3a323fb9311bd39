// Package roster is the read-only staff dataset: who works when, and what it costs.
package roster

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

var ErrDuplicateID = errors.New("duplicate employee id")

// Roster is an ordered, read-only list of employees. It is safe for concurrent use.
type Roster struct {
	employees []Employee
	byID      map[string]int
}

// Query narrows an employee listing. Zero fields match everyone.
type Query struct {
	Role       Role
	Day        *time.Weekday
	Employment Employment
}

// New builds a roster keeping the order of employees.
func New(employees ...Employee) (*Roster, error) {
	r := &Roster{
		employees: make([]Employee, 0, len(employees)),
		byID:      make(map[string]int, len(employees)),
	}
	for _, e := range employees {
		if _, exists := r.byID[e.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		e.WorkDays = slices.Clone(e.WorkDays)
		r.byID[e.ID] = len(r.employees)
		r.employees = append(r.employees, e)
	}
	return r, nil
}

// All returns every employee in roster order.
func (r *Roster) All() []Employee {
	return r.Filter(Query{})
}

// ByID looks an employee up by ID.
func (r *Roster) ByID(id string) (Employee, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Employee{}, false
	}
	return clone(r.employees[i]), true
}

// ByRole returns the employees with the given role.
func (r *Roster) ByRole(role Role) []Employee {
	return r.Filter(Query{Role: role})
}

// ByWorkDay returns the employees scheduled on day.
func (r *Roster) ByWorkDay(day time.Weekday) []Employee {
	return r.Filter(Query{Day: &day})
}

// FullTime returns the full-time employees.
func (r *Roster) FullTime() []Employee {
	return r.Filter(Query{Employment: FullTime})
}

// PartTime returns the part-time employees.
func (r *Roster) PartTime() []Employee {
	return r.Filter(Query{Employment: PartTime})
}

// Filter returns the employees matching every set field of q.
func (r *Roster) Filter(q Query) []Employee {
	list := make([]Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if q.Role != "" && e.Role != q.Role {
			continue
		}
		if q.Day != nil && !e.WorksOn(*q.Day) {
			continue
		}
		if q.Employment != "" && e.Employment() != q.Employment {
			continue
		}
		list = append(list, clone(e))
	}
	return list
}

// TotalWeeklyPayroll sums the weekly salary of every employee.
func (r *Roster) TotalWeeklyPayroll() decimal.Decimal {
	total := decimal.Zero
	for _, e := range r.employees {
		total = total.Add(e.WeeklySalary())
	}
	return total
}

func clone(e Employee) Employee {
	e.WorkDays = slices.Clone(e.WorkDays)
	return e
}
