package model

// Privilege represents a permission that can be assigned to roles
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// Product management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	// Order management
	{Code: "order:view", Name: "View Order"},
	{Code: "order:create", Name: "Create Order"},
	{Code: "order:update_status", Name: "Update Order Status"},
	{Code: "order:confirm_shipping", Name: "Confirm Shipping Cost"},
	{Code: "order:stats", Name: "View Order Stats"},
	// Credit ledger
	{Code: "credits:view", Name: "View Credits"},
	{Code: "credits:add", Name: "Add Credits"},
	{Code: "credits:adjust", Name: "Adjust Credits"},
	{Code: "credits:refund", Name: "Refund Order"},
	// Shipping rate configuration
	{Code: "config:view", Name: "View Shipping Rates"},
	{Code: "config:update", Name: "Update Shipping Rates"},
	// Activity log
	{Code: "activity:view", Name: "View Activity Log"},
	{Code: "activity:prune", Name: "Prune Activity Log"},
	// User management (OWNER only)
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
}

// StaffPrivileges lists what the STAFF role is allowed to do.
var StaffPrivileges = []string{
	"product:view",
	"order:view",
	"order:create",
	"order:update_status",
	"credits:view",
	"config:view",
	"activity:view",
}
