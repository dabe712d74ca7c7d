package model

// Role represents user roles within an organization.
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // OWNER, ADMIN, STAFF
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleOwner = "OWNER"
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleOwner,
		Name:        "Organization Owner",
		Description: "Full access including user management and credit adjustments",
	},
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Manages products, orders and shipping configuration",
	},
	{
		Code:        RoleStaff,
		Name:        "Staff",
		Description: "Creates orders and views inventory",
	},
}
