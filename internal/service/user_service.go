package service

import (
	"fmt"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/pkg/validator"

	"github.com/google/uuid"
)

// UserService manages the organization's staff accounts. Only OWNER-role
// users hold the user:* privileges that reach these operations.
type UserService interface {
	CreateUser(orgID uuid.UUID, req *CreateUserRequest, actor Actor) (*model.User, error)
	UpdateUser(orgID, userID uuid.UUID, req *UpdateUserRequest, actor Actor) (*model.User, error)
	DeleteUser(orgID, userID uuid.UUID) error
	GetAllUsers(orgID uuid.UUID) ([]model.UserResponse, error)
	GetUserByID(orgID, userID uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	RoleID      uint   `json:"role_id" validate:"required"`
}

type UpdateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number"`
	RoleID      uint    `json:"role_id" validate:"required"`
	IsActive    *bool   `json:"is_active"`
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

func (s *userService) CreateUser(orgID uuid.UUID, req *CreateUserRequest, actor Actor) (*model.User, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	existing, _ := s.userRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrEmailExists
	}

	role, err := s.roleRepo.FindByID(req.RoleID)
	if err != nil {
		return nil, fmt.Errorf("role not found")
	}

	user := &model.User{
		Email:          req.Email,
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		OrganizationID: orgID,
		RoleID:         &role.ID,
		IsActive:       true,
	}
	user.CreatedBy = actor.ID
	user.UpdatedBy = actor.ID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.Create(nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(orgID, userID uuid.UUID, req *UpdateUserRequest, actor Actor) (*model.User, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil || user.OrganizationID != orgID {
		return nil, ErrUserNotFound
	}

	if req.Email != user.Email {
		existing, _ := s.userRepo.FindByEmail(req.Email)
		if existing != nil && existing.ID != userID {
			return nil, ErrEmailExists
		}
	}

	role, err := s.roleRepo.FindByID(req.RoleID)
	if err != nil {
		return nil, fmt.Errorf("role not found")
	}

	user.Email = req.Email
	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	user.RoleID = &role.ID
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedBy = actor.ID

	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(orgID, userID uuid.UUID) error {
	return s.userRepo.Delete(orgID, userID)
}

func (s *userService) GetAllUsers(orgID uuid.UUID) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAllByOrg(orgID)
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(orgID, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil || user.OrganizationID != orgID {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}
