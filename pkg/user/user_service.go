package user

import (
	"context"
	"errors"
	"fmt"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/internal/utils"
	"recipe-hub/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) error
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
		UpdateProfile(ctx context.Context, user *entities.User, req domain.UpdateProfileRequest) (bool, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func ToProfile(user *entities.User) domain.UserProfileResponse {
	return domain.UserProfileResponse{
		ID:     user.ID.String(),
		Handle: user.Handle,
		Name:   user.Name,
		Email:  user.Email,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) error {
	handle := utils.SlugifyHandle(req.Handle)
	if handle == "" {
		return domain.ErrInvalidHandle
	}

	taken, err := s.emailTaken(ctx, req.Email, uuid.Nil)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrEmailInUse
	}

	taken, err = s.handleTaken(ctx, handle, uuid.Nil)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrHandleInUse
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	name := req.Name
	if name == "" {
		name = handle
	}

	user := &entities.User{
		ID:       uuid.New(),
		Handle:   handle,
		Name:     name,
		Email:    req.Email,
		Password: hash,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.conflictFor(ctx, req.Email, uuid.Nil)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrUserNotFound
		}
		return domain.LoginResponse{}, fmt.Errorf("find user by email: %w", err)
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID, user.Handle, user.Email)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{Token: token}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies req to user and reports whether anything was written.
func (s *userService) UpdateProfile(ctx context.Context, user *entities.User, req domain.UpdateProfileRequest) (bool, error) {
	handle := utils.SlugifyHandle(req.Handle)
	if handle == "" {
		return false, domain.ErrInvalidHandle
	}

	if user.Handle == handle && user.Email == req.Email && user.Name == req.Name {
		return false, nil
	}

	if handle != user.Handle {
		taken, err := s.handleTaken(ctx, handle, user.ID)
		if err != nil {
			return false, err
		}
		if taken {
			return false, domain.ErrHandleInUse
		}
	}
	if req.Email != user.Email {
		taken, err := s.emailTaken(ctx, req.Email, user.ID)
		if err != nil {
			return false, err
		}
		if taken {
			return false, domain.ErrEmailInUse
		}
	}

	updated := *user
	updated.Handle = handle
	updated.Name = req.Name
	updated.Email = req.Email
	if err := s.userRepository.UpdateUser(ctx, &updated); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, s.conflictFor(ctx, req.Email, user.ID)
		}
		return false, fmt.Errorf("update user: %w", err)
	}
	*user = updated
	return true, nil
}

func (s *userService) emailTaken(ctx context.Context, email string, self uuid.UUID) (bool, error) {
	existing, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find user by email: %w", err)
	}
	return existing.ID != self, nil
}

func (s *userService) handleTaken(ctx context.Context, handle string, self uuid.UUID) (bool, error) {
	existing, err := s.userRepository.GetUserByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find user by handle: %w", err)
	}
	return existing.ID != self, nil
}

// conflictFor names the unique key that lost a write race. The unique index
// is the final arbiter; this only picks the message.
func (s *userService) conflictFor(ctx context.Context, email string, self uuid.UUID) error {
	if taken, err := s.emailTaken(ctx, email, self); err == nil && taken {
		return domain.ErrEmailInUse
	}
	return domain.ErrHandleInUse
}
