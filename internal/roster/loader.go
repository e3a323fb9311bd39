package roster

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type file struct {
	Employees []entry `yaml:"employees" validate:"dive"`
}

type entry struct {
	ID       string   `yaml:"id" validate:"required"`
	Name     string   `yaml:"name" validate:"required"`
	Role     string   `yaml:"role" validate:"required"`
	Start    string   `yaml:"start" validate:"required"`
	End      string   `yaml:"end" validate:"required"`
	Days     []string `yaml:"days" validate:"required,min=1,max=7,unique"`
	Rate     string   `yaml:"rate" validate:"required,numeric"`
	FullTime bool     `yaml:"fullTime"`
}

// Load reads a roster data file.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a roster from YAML data.
func Parse(data []byte) (*Roster, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse roster YAML: %w", err)
	}
	if err := validator.New().Struct(f); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fieldErr := validationErrors[0]
			return nil, fmt.Errorf("invalid roster entry %s: failed on rule: %s", fieldErr.Namespace(), fieldErr.Tag())
		}
		return nil, fmt.Errorf("invalid roster: %w", err)
	}

	employees := make([]Employee, 0, len(f.Employees))
	for _, e := range f.Employees {
		employee, err := e.toEmployee()
		if err != nil {
			return nil, fmt.Errorf("roster entry %s: %w", e.ID, err)
		}
		employees = append(employees, employee)
	}
	return New(employees...)
}

func (e entry) toEmployee() (Employee, error) {
	role, err := ParseRole(e.Role)
	if err != nil {
		return Employee{}, err
	}
	start, err := ParseClock(e.Start)
	if err != nil {
		return Employee{}, err
	}
	end, err := ParseClock(e.End)
	if err != nil {
		return Employee{}, err
	}
	if start == end {
		return Employee{}, fmt.Errorf("shift start and end are both %s", start)
	}
	days := make([]time.Weekday, 0, len(e.Days))
	for _, s := range e.Days {
		d, err := ParseWeekday(s)
		if err != nil {
			return Employee{}, err
		}
		days = append(days, d)
	}
	rate, err := decimal.NewFromString(e.Rate)
	if err != nil {
		return Employee{}, fmt.Errorf("invalid hourly rate %q: %w", e.Rate, err)
	}
	if !rate.IsPositive() {
		return Employee{}, fmt.Errorf("hourly rate must be positive, got %s", rate)
	}
	return Employee{
		ID:         e.ID,
		Name:       e.Name,
		Role:       role,
		Start:      start,
		End:        end,
		WorkDays:   days,
		HourlyRate: rate,
		FullTime:   e.FullTime,
	}, nil
}
