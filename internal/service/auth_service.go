package service

import (
	"fmt"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/pkg/jwt"
	"go-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Signup(req *SignupRequest) (*LoginResponse, error)
	Login(email, password string) (*LoginResponse, error)
	Logout(userID uuid.UUID) error
	Me(userID uuid.UUID) (*MeResponse, error)
}

type SignupRequest struct {
	OrganizationName string `json:"organization_name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=6"`
	FullName         string `json:"full_name" validate:"required"`
	PhoneNumber      string `json:"phone_number"`
}

type LoginResponse struct {
	Token        string              `json:"token"`
	User         model.UserResponse  `json:"user"`
	Organization *model.Organization `json:"organization"`
	Privileges   []string            `json:"privileges"`
}

type MeResponse struct {
	User         model.UserResponse  `json:"user"`
	Organization *model.Organization `json:"organization"`
	Privileges   []string            `json:"privileges"`
}

type authService struct {
	db       repository.TxManager
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	rateRepo repository.RateConfigRepository
	roleRepo repository.RoleRepository
}

func NewAuthService(
	db repository.TxManager,
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	rateRepo repository.RateConfigRepository,
	roleRepo repository.RoleRepository,
) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
		orgRepo:  orgRepo,
		rateRepo: rateRepo,
		roleRepo: roleRepo,
	}
}

// Signup provisions a tenant: organization, its zeroed shipping rate
// config and the OWNER user, all in one transaction.
func (s *authService) Signup(req *SignupRequest) (*LoginResponse, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailExists
	}
	if existing, _ := s.orgRepo.FindByName(req.OrganizationName); existing != nil {
		return nil, ErrOrganizationExists
	}

	ownerRole, err := s.roleRepo.FindByCode(model.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("owner role not seeded: %w", err)
	}

	var user *model.User

	err = s.db.Transaction(func(tx *gorm.DB) error {
		org := &model.Organization{Name: req.OrganizationName}
		org.CreatedBy = "signup"
		org.UpdatedBy = "signup"
		if err := s.orgRepo.Create(tx, org); err != nil {
			return err
		}

		cfg := &model.ShippingRateConfig{OrganizationID: org.ID}
		cfg.CreatedBy = "signup"
		cfg.UpdatedBy = "signup"
		if err := s.rateRepo.Create(tx, cfg); err != nil {
			return err
		}

		user = &model.User{
			Email:          req.Email,
			FullName:       req.FullName,
			PhoneNumber:    req.PhoneNumber,
			OrganizationID: org.ID,
			RoleID:         &ownerRole.ID,
			IsActive:       true,
		}
		user.CreatedBy = "signup"
		user.UpdatedBy = "signup"
		if err := user.SetPassword(req.Password); err != nil {
			return err
		}
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}

		return s.orgRepo.SetOwner(tx, org.ID, user.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.Login(req.Email, req.Password)
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	roleCode := ""
	if user.Role != nil {
		roleCode = user.Role.Code
	}

	// Single session: issuing a fresh token version invalidates tokens
	// from earlier logins.
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	token, err := jwt.GenerateToken(user.ID, user.OrganizationID, user.Email, user.FullName, roleCode, user.GetPrivilegeCodes(), newTokenVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	org, err := s.orgRepo.FindByID(user.OrganizationID)
	if err != nil {
		return nil, ErrOrganizationNotFound
	}

	return &LoginResponse{
		Token:        token,
		User:         user.ToResponse(),
		Organization: org,
		Privileges:   user.GetPrivilegeCodes(),
	}, nil
}

// Logout bumps the token version so every outstanding token is rejected.
func (s *authService) Logout(userID uuid.UUID) error {
	return s.userRepo.UpdateTokenVersion(userID, uuid.New().String())
}

func (s *authService) Me(userID uuid.UUID) (*MeResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	org, err := s.orgRepo.FindByID(user.OrganizationID)
	if err != nil {
		return nil, ErrOrganizationNotFound
	}

	_ = s.userRepo.UpdateLastSeen(userID)

	return &MeResponse{
		User:         user.ToResponse(),
		Organization: org,
		Privileges:   user.GetPrivilegeCodes(),
	}, nil
}
