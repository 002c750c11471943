package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"invoiceapi/dto"
	apperr "invoiceapi/errors"
	"invoiceapi/models"
	"invoiceapi/services/logger"
	"invoiceapi/validator"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	logger   logger.Logger
	tokens   *TokenService
	hashCost int
}

type UserServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Tokens *TokenService
	// HashCost mặc định là bcrypt.DefaultCost
	HashCost int
}

func NewUserService(opts UserServiceOptions) *UserService {
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &UserService{
		db:       opts.DB,
		logger:   log,
		tokens:   opts.Tokens,
		hashCost: cost,
	}
}

// Register creates a user after the required-field and uniqueness checks.
// Only the bcrypt hash of the password is persisted.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (models.User, error) {
	if err := validator.ValidateRegister(&input); err != nil {
		return models.User{}, err
	}

	name := strings.TrimSpace(dto.Value(input.Name))
	email := validator.NormalizeEmail(dto.Value(input.Email))

	if err := s.checkUnique(ctx, name, email); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Value(input.Password)), s.hashCost)
	if err != nil {
		return models.User{}, apperr.NewAppError(apperr.ErrCodeDBError, "Failed to hash password", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(dto.Value(input.Phone)),
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against a concurrent registration; report which field collided.
			if uerr := s.checkUnique(ctx, name, email); uerr != nil {
				return models.User{}, uerr
			}
			return models.User{}, apperr.NewAppError(apperr.ErrCodeUserExists, "User already registered", err)
		}
		return models.User{}, apperr.NewAppError(apperr.ErrCodeDBError, "Failed to create user", err)
	}

	s.logger.Info("registered user id=%d", user.ID)
	return user, nil
}

func (s *UserService) checkUnique(ctx context.Context, name, email string) error {
	taken, err := s.exists(ctx, "name = ?", name)
	if err != nil {
		return err
	}
	if taken {
		return apperr.NewAppError(apperr.ErrCodeUserExists, "Username already registered", nil)
	}

	taken, err = s.exists(ctx, "email = ?", email)
	if err != nil {
		return err
	}
	if taken {
		return apperr.NewAppError(apperr.ErrCodeUserExists, "Email already registered", nil)
	}
	return nil
}

func (s *UserService) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, apperr.NewAppError(apperr.ErrCodeDBError, "Failed to query users", err)
	}
	return count > 0, nil
}

// Login verifies the credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (models.User, string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", validator.NormalizeEmail(dto.Value(input.Email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", invalidCredentials()
		}
		return models.User{}, "", apperr.NewAppError(apperr.ErrCodeDBError, "Failed to query users", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Value(input.Password))); err != nil {
		return models.User{}, "", invalidCredentials()
	}

	token, err := s.tokens.GenerateToken(UserInfo{UserId: user.ID, Email: user.Email})
	if err != nil {
		return models.User{}, "", apperr.NewAppError(apperr.ErrCodeDBError, "Failed to issue token", fmt.Errorf("sign token: %w", err))
	}
	return user, token, nil
}

func invalidCredentials() error {
	return apperr.NewAppError(apperr.ErrCodeUnauthorized, "Invalid credentials", apperr.ErrInvalidCredentials)
}

// GetByID trả về user theo id
func (s *UserService) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NewAppError(apperr.ErrCodeDBNotFound, "User not found", apperr.ErrUserNotFound)
		}
		return models.User{}, apperr.NewAppError(apperr.ErrCodeDBError, "Failed to query users", err)
	}
	return user, nil
}

// Authenticate resolves a bearer token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (models.User, error) {
	info, err := s.tokens.ParseToken(token)
	if err != nil {
		return models.User{}, err
	}
	user, err := s.GetByID(ctx, info.UserId)
	if apperr.HasCode(err, apperr.ErrCodeDBNotFound) {
		return models.User{}, apperr.NewAppError(apperr.ErrCodeInvalidToken, "Invalid token", err)
	}
	return user, err
}
