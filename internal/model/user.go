package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated user. Credentials and profile live on
// the same row; organization membership scopes everything the user can see.
type User struct {
	BaseModel
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password       string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName       string     `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	PhoneNumber    string     `gorm:"type:varchar(20)" json:"phone_number"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	RoleID         *uint      `gorm:"index" json:"role_id"`
	Role           *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	TokenVersion   string     `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastSeenAt     *time.Time `json:"last_seen_at,omitempty"`
}

// SetPassword hashes and sets the user's password.
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// GetPrivilegeCodes returns the privilege codes granted via the user's role.
func (u *User) GetPrivilegeCodes() []string {
	if u.Role == nil {
		return nil
	}
	codes := make([]string, len(u.Role.Privileges))
	for i, p := range u.Role.Privileges {
		codes[i] = p.Code
	}
	return codes
}

// UserResponse is used for API responses (without sensitive data).
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	PhoneNumber    string     `json:"phone_number"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	RoleID         *uint      `json:"role_id,omitempty"`
	Role           *Role      `json:"role,omitempty"`
	IsActive       bool       `json:"is_active"`
	LastSeenAt     *time.Time `json:"last_seen_at,omitempty"`
}

// ToResponse converts User to UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		PhoneNumber:    u.PhoneNumber,
		OrganizationID: u.OrganizationID,
		RoleID:         u.RoleID,
		Role:           u.Role,
		IsActive:       u.IsActive,
		LastSeenAt:     u.LastSeenAt,
	}
}
