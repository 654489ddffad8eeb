package service

import (
	"context"
	"errors"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles signup, login, profiles, and role management.
// Signup and login return a signed session token alongside the user.
type UserService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

type SignupInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

type LoginInput struct {
	Email    string
	Password string
}

type UpdateProfileInput struct {
	ActorID   uint
	FullName  *string
	AvatarURL *string
}

type UpdateRoleInput struct {
	ActorID uint
	UserID  uint
	Role    string
}

func NewUserService(userRepo repository.UserRepository, jwtSecret string) *UserService {
	return &UserService{userRepo: userRepo, jwtSecret: jwtSecret}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.AuthResponse, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
		FullName: in.FullName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := middleware.SignSession(s.jwtSecret, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials. Absent user and wrong password return the
// same error, so accounts cannot be enumerated.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.AuthResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := middleware.SignSession(s.jwtSecret, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", userID)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, in.ActorID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.List(ctx, limit, offset)
}

// UpdateRole changes a user's role. Admins cannot change their own role,
// so the last admin cannot lock everyone out.
func (s *UserService) UpdateRole(ctx context.Context, in UpdateRoleInput) (*models.User, error) {
	if !models.ValidRole(in.Role) {
		return nil, models.NewValidationError("Unknown role")
	}
	if in.ActorID == in.UserID {
		return nil, models.NewValidationError("You cannot change your own role")
	}

	if err := s.userRepo.UpdateRole(ctx, in.UserID, in.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", in.UserID)
		}
		return nil, err
	}

	return s.userRepo.GetByID(ctx, in.UserID)
}
