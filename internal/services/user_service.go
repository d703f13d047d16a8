package services

import (
	"context"
	"strings"

	"dealerstock/internal/common"
	"dealerstock/internal/models"
	"dealerstock/internal/repositories"

	"github.com/google/uuid"
)

type UserServiceInterface interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUsersByRole(ctx context.Context, role string) ([]*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type userService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserServiceInterface {
	return &userService{users: users}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}

	if taken, err := s.users.ExistsByUsername(ctx, user.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, common.Conflictf("username %s already exists", user.Username)
	}
	if taken, err := s.users.ExistsByEmail(ctx, user.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, common.Conflictf("email %s already exists", user.Email)
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, user.ID)
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

func (s *userService) GetUsersByRole(ctx context.Context, role string) ([]*models.User, error) {
	if !models.ValidUserRole(role) {
		return nil, common.Validationf("invalid role: %s", role)
	}
	return s.users.ListByRole(ctx, role)
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, user *models.User) (*models.User, error) {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateUser(user); err != nil {
		return nil, err
	}

	user.ID = existing.ID
	user.CreatedAt = existing.CreatedAt
	if user.Password == "" {
		user.Password = existing.Password
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

func (s *userService) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.users.ExistsByUsername(ctx, username)
}

func (s *userService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.users.ExistsByEmail(ctx, email)
}

func validateUser(user *models.User) error {
	if strings.TrimSpace(user.Username) == "" {
		return common.Validationf("username is required")
	}
	if strings.TrimSpace(user.Email) == "" {
		return common.Validationf("email is required")
	}
	if !strings.Contains(user.Email, "@") {
		return common.Validationf("invalid email: %s", user.Email)
	}
	if user.Role != "" && !models.ValidUserRole(user.Role) {
		return common.Validationf("invalid role: %s", user.Role)
	}
	return nil
}
