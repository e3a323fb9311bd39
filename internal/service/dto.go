package service

import (
	"time"

	"github.com/abgdnv/musicshop/internal/roster"
	"github.com/abgdnv/musicshop/internal/shop"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDto represents a catalog item. TrackCount and Duration are only set for CDs.
type ProductDto struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Name       string          `json:"name"`
	Artist     string          `json:"artist"`
	Genre      string          `json:"genre"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image,omitempty"`
	TrackCount int             `json:"track_count,omitempty"`
	Duration   string          `json:"duration,omitempty"`
	Label      string          `json:"label"`
}

// ProductQuery filters the catalog listing. Empty fields match every product.
type ProductQuery struct {
	Kind   string
	Genre  string
	Artist string
}

// CartDto represents the contents of a customer's cart.
type CartDto struct {
	Items   []ProductDto    `json:"items"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Summary string          `json:"summary"`
}

// CustomerDto represents a shopping session.
type CustomerDto struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Purchases []ProductDto `json:"purchases"`
	Remaining int          `json:"remaining_purchases"`
	Cart      CartDto      `json:"cart"`
}

// CustomerCreateDto represents the data transfer object for opening a new session.
type CustomerCreateDto struct {
	Name string `json:"name" validate:"required,max=100"`
}

// AddItemDto represents the data transfer object for adding an item to a cart.
// A zero Quantity adds a single copy.
type AddItemDto struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=2"`
}

// SaleDto represents a recorded sale.
type SaleDto struct {
	ID           uuid.UUID       `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Items        []ProductDto    `json:"items"`
	Count        int             `json:"count"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    string          `json:"created_at"`
}

// EmployeeQuery filters the roster listing. Empty fields match every employee.
type EmployeeQuery struct {
	Role       string
	Day        string
	Employment string
}

// EmployeeDto represents a member of staff with the derived schedule figures.
type EmployeeDto struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	Title        string          `json:"title"`
	Start        string          `json:"start"`
	End          string          `json:"end"`
	WorkDays     []string        `json:"work_days"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	Employment   string          `json:"employment"`
	ShiftHours   decimal.Decimal `json:"shift_hours"`
	WeeklyHours  decimal.Decimal `json:"weekly_hours"`
	WeeklySalary decimal.Decimal `json:"weekly_salary"`
}

// PayrollDto is the weekly payroll of the whole roster.
type PayrollDto struct {
	Employees []PayrollLineDto `json:"employees"`
	Total     decimal.Decimal  `json:"total"`
}

type PayrollLineDto struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	WeeklyHours  decimal.Decimal `json:"weekly_hours"`
	WeeklySalary decimal.Decimal `json:"weekly_salary"`
}

func toProductDto(p shop.Product) ProductDto {
	return ProductDto{
		ID:         p.ID,
		Kind:       string(p.Kind),
		Name:       p.Name,
		Artist:     p.Artist,
		Genre:      p.Genre.String(),
		Price:      p.Price,
		Image:      p.ImageRef,
		TrackCount: p.TrackCount,
		Duration:   p.Duration,
		Label:      p.Label(),
	}
}

func toProductDtos(products []shop.Product) []ProductDto {
	list := make([]ProductDto, 0, len(products))
	for _, p := range products {
		list = append(list, toProductDto(p))
	}
	return list
}

func toCartDto(c *shop.Cart) CartDto {
	return CartDto{
		Items:   toProductDtos(c.Items()),
		Count:   c.Len(),
		Total:   c.Total(),
		Summary: c.Summary(),
	}
}

func toCustomerDto(id uuid.UUID, c *shop.Customer) *CustomerDto {
	return &CustomerDto{
		ID:        id,
		Name:      c.Name(),
		Purchases: toProductDtos(c.Purchases()),
		Remaining: c.Remaining(),
		Cart:      toCartDto(c.Cart()),
	}
}

func toSaleDto(s shop.Sale) (*SaleDto, error) {
	id, err := uuid.Parse(s.ID())
	if err != nil {
		return nil, err
	}
	return &SaleDto{
		ID:           id,
		CustomerID:   s.Customer().ID,
		CustomerName: s.Customer().Name,
		Items:        toProductDtos(s.Items()),
		Count:        s.Len(),
		Total:        s.Total(),
		CreatedAt:    s.Timestamp().Format(time.RFC3339),
	}, nil
}

func toEmployeeDto(e roster.Employee) EmployeeDto {
	days := make([]string, 0, len(e.WorkDays))
	for _, d := range e.WorkDays {
		days = append(days, d.String())
	}
	return EmployeeDto{
		ID:           e.ID,
		Name:         e.Name,
		Role:         string(e.Role),
		Title:        e.Role.Title(),
		Start:        e.Start.String(),
		End:          e.End.String(),
		WorkDays:     days,
		HourlyRate:   e.HourlyRate,
		Employment:   string(e.Employment()),
		ShiftHours:   e.ShiftHours(),
		WeeklyHours:  e.WeeklyHours(),
		WeeklySalary: e.WeeklySalary(),
	}
}
