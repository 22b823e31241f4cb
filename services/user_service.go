package services

import (
	"context"
	"errors"
	"strings"

	"kitchen-inventory-service/models"
	"kitchen-inventory-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService defines the business logic interface for staff and admin
// accounts.
type UserService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, *ServiceError)
	GetByID(ctx context.Context, id uint) (*models.User, *ServiceError)
	List(ctx context.Context) ([]models.User, *ServiceError)
	Update(ctx context.Context, id uint, req *models.UpdateUserRequest) (*models.User, *ServiceError)
	Delete(ctx context.Context, id uint) *ServiceError
	Authenticate(ctx context.Context, username, password string) (*models.User, *ServiceError)
	SeedDefaults(ctx context.Context, adminPassword string) error
}

type userServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, logger *zap.Logger) UserService {
	return &userServiceImpl{repo: repo, logger: logger}
}

// Create registers a new account with the default privilege set for its
// role.
func (s *userServiceImpl) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, *ServiceError) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, validationError("username must not be empty")
	}

	if existing, err := s.repo.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, conflictError("username already taken")
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check username", zap.Error(err))
		return nil, storageFaultError("Failed to create user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, storageFaultError("Failed to create user")
	}

	privilege := models.DefaultStaffPrivileges()
	if req.Role == models.RoleAdmin {
		privilege = models.DefaultAdminPrivileges()
	}

	user := &models.User{
		Username:   username,
		Password:   string(hash),
		Role:       req.Role,
		ExternalID: uuid.NewString(),
		Privilege:  privilege,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, storageFaultError("Failed to create user")
	}

	s.logger.Info("User created", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

func (s *userServiceImpl) GetByID(ctx context.Context, id uint) (*models.User, *ServiceError) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("User not found")
		}
		s.logger.Error("Failed to load user", zap.Uint("user_id", id), zap.Error(err))
		return nil, storageFaultError("Failed to load user")
	}
	return user, nil
}

func (s *userServiceImpl) List(ctx context.Context) ([]models.User, *ServiceError) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, storageFaultError("Failed to list users")
	}
	return users, nil
}

func (s *userServiceImpl) Update(ctx context.Context, id uint, req *models.UpdateUserRequest) (*models.User, *ServiceError) {
	user, svcErr := s.GetByID(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, validationError("username must not be empty")
		}
		if username != user.Username {
			if existing, err := s.repo.FindByUsername(ctx, username); err == nil && existing != nil {
				return nil, conflictError("username already taken")
			} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
				s.logger.Error("Failed to check username", zap.Error(err))
				return nil, storageFaultError("Failed to update user")
			}
			user.Username = username
		}
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Error(err))
			return nil, storageFaultError("Failed to update user")
		}
		user.Password = string(hash)
	}
	if req.Privilege != nil {
		user.Privilege = *req.Privilege
	}

	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Uint("user_id", id), zap.Error(err))
		return nil, storageFaultError("Failed to update user")
	}
	return user, nil
}

func (s *userServiceImpl) Delete(ctx context.Context, id uint) *ServiceError {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError("User not found")
		}
		s.logger.Error("Failed to delete user", zap.Uint("user_id", id), zap.Error(err))
		return storageFaultError("Failed to delete user")
	}
	s.logger.Info("User deleted", zap.Uint("user_id", id))
	return nil
}

// Authenticate verifies credentials. Unknown usernames and wrong passwords
// return the same error to avoid account probing.
func (s *userServiceImpl) Authenticate(ctx context.Context, username, password string) (*models.User, *ServiceError) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, unauthorizedError("Invalid credentials")
		}
		s.logger.Error("Failed to load user for login", zap.Error(err))
		return nil, storageFaultError("Failed to authenticate")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, unauthorizedError("Invalid credentials")
	}
	return user, nil
}

// SeedDefaults creates an initial admin account when the user table is
// empty, so a fresh deployment is reachable.
func (s *userServiceImpl) SeedDefaults(ctx context.Context, adminPassword string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:   "admin",
		Password:   string(hash),
		Role:       models.RoleAdmin,
		ExternalID: uuid.NewString(),
		Privilege:  models.DefaultAdminPrivileges(),
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("Seeded default admin account")
	return nil
}
