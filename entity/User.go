package entity

import "gorm.io/gorm"

const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleCashier   = "cashier"
	RoleWaiter    = "waiter"
	RoleKitchen   = "kitchen"
	RoleReception = "reception"
)

var roles = []string{RoleAdmin, RoleManager, RoleCashier, RoleWaiter, RoleKitchen, RoleReception}

// User is a staff account. Customers are tracked separately (see Customer).
type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `gorm:"size:20;not null;index" json:"role"`
	IsActive    bool   `json:"isActive"`
}

func ValidRole(r string) bool {
	for _, v := range roles {
		if v == r {
			return true
		}
	}
	return false
}

func Roles() []string {
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}
