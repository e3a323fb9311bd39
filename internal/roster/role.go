package roster

import (
	"fmt"
	"strings"
)

// Role is the job an employee is hired for.
type Role string

const (
	RoleManager        Role = "MANAGER"
	RoleSalesAssociate Role = "SALES_ASSOCIATE"
	RoleInventoryClerk Role = "INVENTORY_CLERK"
	RoleCashier        Role = "CASHIER"
	RoleMusicExpert    Role = "MUSIC_EXPERT"
	RoleSecurity       Role = "SECURITY"
)

var titles = map[Role]string{
	RoleManager:        "Store Manager",
	RoleSalesAssociate: "Sales Associate",
	RoleInventoryClerk: "Inventory Clerk",
	RoleCashier:        "Cashier",
	RoleMusicExpert:    "Music Expert",
	RoleSecurity:       "Security Guard",
}

// ParseRole converts a role name such as "cashier" or "SALES_ASSOCIATE" to a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := titles[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Title is the human readable job title.
func (r Role) Title() string {
	return titles[r]
}

// Employment selects full-time or part-time staff.
type Employment string

const (
	FullTime Employment = "full-time"
	PartTime Employment = "part-time"
)

// ParseEmployment accepts "full-time" or "part-time".
func ParseEmployment(s string) (Employment, error) {
	switch e := Employment(strings.ToLower(strings.TrimSpace(s))); e {
	case FullTime, PartTime:
		return e, nil
	default:
		return "", fmt.Errorf("unknown employment type %q", s)
	}
}
