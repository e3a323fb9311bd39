package service

import (
	"context"
	"fmt"

	shoperrors "github.com/abgdnv/musicshop/internal/errors"
	"github.com/abgdnv/musicshop/internal/roster"
)

// RosterService exposes the read-only staff roster.
type RosterService interface {
	// ListEmployees returns the employees matching q in roster order.
	// Returns ErrInvalidFilter for an unknown role, weekday or employment type.
	ListEmployees(ctx context.Context, q EmployeeQuery) ([]EmployeeDto, error)

	// FindEmployee returns ErrEmployeeNotFound if no employee has the given ID.
	FindEmployee(ctx context.Context, id string) (*EmployeeDto, error)

	// Payroll returns the weekly salary of every employee and their total.
	Payroll(ctx context.Context) (*PayrollDto, error)
}

// Staff implements RosterService.
type Staff struct {
	roster *roster.Roster
}

// NewStaff creates a RosterService over r.
func NewStaff(r *roster.Roster) *Staff {
	return &Staff{roster: r}
}

func (s *Staff) ListEmployees(_ context.Context, q EmployeeQuery) ([]EmployeeDto, error) {
	var query roster.Query
	if q.Role != "" {
		role, err := roster.ParseRole(q.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shoperrors.ErrInvalidFilter, err)
		}
		query.Role = role
	}
	if q.Day != "" {
		day, err := roster.ParseWeekday(q.Day)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shoperrors.ErrInvalidFilter, err)
		}
		query.Day = &day
	}
	if q.Employment != "" {
		employment, err := roster.ParseEmployment(q.Employment)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shoperrors.ErrInvalidFilter, err)
		}
		query.Employment = employment
	}

	employees := s.roster.Filter(query)
	list := make([]EmployeeDto, 0, len(employees))
	for _, e := range employees {
		list = append(list, toEmployeeDto(e))
	}
	return list, nil
}

func (s *Staff) FindEmployee(_ context.Context, id string) (*EmployeeDto, error) {
	e, ok := s.roster.ByID(id)
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", id, shoperrors.ErrEmployeeNotFound)
	}
	dto := toEmployeeDto(e)
	return &dto, nil
}

func (s *Staff) Payroll(_ context.Context) (*PayrollDto, error) {
	employees := s.roster.All()
	lines := make([]PayrollLineDto, 0, len(employees))
	for _, e := range employees {
		lines = append(lines, PayrollLineDto{
			ID:           e.ID,
			Name:         e.Name,
			WeeklyHours:  e.WeeklyHours(),
			WeeklySalary: e.WeeklySalary(),
		})
	}
	return &PayrollDto{Employees: lines, Total: s.roster.TotalWeeklyPayroll()}, nil
}
