package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/repository"
	"github.com/rajeshhitechvalley/Cfapp-sub001/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLen = 6

// AuthService handles staff login and account management.
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
	log       *logger.Logger
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration, log *logger.Logger) *AuthService {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
		log:       log,
	}
}

type CreateUserInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

type UpdateUserInput struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Role        *string `json:"role"`
	IsActive    *bool   `json:"isActive"`
	Password    *string `json:"password"`
}

// Login checks the credentials and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrUnauthorized
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Warn(ctx, "login", "bad password", slog.Uint64("user_id", uint64(user.ID)))
		return "", nil, ErrUnauthorized
	}
	if !user.IsActive {
		return "", nil, ErrForbidden
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	s.log.Info(ctx, "login", "user logged in", slog.Uint64("user_id", uint64(user.ID)), slog.String("role", user.Role))
	return token, user, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*entity.User, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	return u, dbErr(err, "user")
}

// CreateStaff adds a staff account with the given role.
func (s *AuthService) CreateStaff(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, invalid("a valid email is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, invalid("password must be at least %d characters", minPasswordLen)
	}
	if !entity.ValidRole(in.Role) {
		return nil, invalid("unknown role %q", in.Role)
	}

	count, err := s.userRepo.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, conflict("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:       email,
		Password:    string(hashed),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Role:        in.Role,
		IsActive:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, dbErr(err, "user")
	}
	s.log.Info(ctx, "create_staff", "staff user created", slog.Uint64("user_id", uint64(user.ID)), slog.String("role", user.Role))
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context, role string) ([]entity.User, error) {
	if role != "" && !entity.ValidRole(role) {
		return nil, invalid("unknown role %q", role)
	}
	return s.userRepo.List(ctx, role)
}

func (s *AuthService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*entity.User, error) {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return nil, dbErr(err, "user")
	}

	updates := map[string]any{}
	if in.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, invalid("unknown role %q", *in.Role)
		}
		updates["role"] = *in.Role
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, invalid("password must be at least %d characters", minPasswordLen)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hashed)
	}
	if len(updates) == 0 {
		return nil, invalid("nothing to update")
	}

	if err := s.userRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, id)
}
