package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/dailydose/config"
	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/lshigami/dailydose/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = apperror.Unauthenticated("invalid email or password")
	ErrUserNotProvisioned = apperror.Forbidden("account is not provisioned")
	ErrInvalidSession     = apperror.Unauthenticated("session is invalid or has expired")
)

// Caller is the authenticated user behind a request. Role is always the one
// stored in the database.
type Caller struct {
	ID    uint
	Email string
	Role  model.Role
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      dto.UserResponse
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*LoginResult, error)
	Authenticate(ctx context.Context, token string) (*Caller, error)
	Me(ctx context.Context, userID uint) (*dto.UserResponse, error)
	Logout(ctx context.Context, userID uint) error
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	BootstrapSuperAdmin(ctx context.Context, email, password string) error
}

type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	users    repository.UserRepository
	sessions SessionService
	calendar *Calendar
	secret   []byte
	ttl      time.Duration
}

func NewAuthService(users repository.UserRepository, sessions SessionService, calendar *Calendar, cfg *config.Config) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		calendar: calendar,
		secret:   []byte(cfg.Auth.JWTSecret),
		ttl:      cfg.Auth.SessionTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	role := model.RoleStudent
	if req.Role != "" {
		role = model.Role(req.Role)
	}
	if role != model.RoleStudent && role != model.RoleQAuthor {
		return nil, apperror.Validation("invalid role", map[string]string{"role": "must be STUDENT or QAUTHOR"})
	}
	user, err := s.createAccount(ctx, normalizeEmail(req.Email), req.Password, strings.TrimSpace(req.FullName), role)
	if err != nil {
		return nil, err
	}
	log.Info().Uint("userID", user.ID).Str("role", string(role)).Msg("User registered")
	return toUserResponse(user), nil
}

func (s *authService) createAccount(ctx context.Context, email, password, fullName string, role model.Role) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Upstream("failed to hash password", err)
	}
	identity := model.Identity{Email: email, PasswordHash: string(hash)}
	user := model.User{Email: email, FullName: fullName, Role: role}
	if err := s.users.CreateWithIdentity(ctx, &identity, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("email is already registered")
		}
		log.Error().Err(err).Str("email", email).Msg("Failed to create account")
		return nil, apperror.Upstream("failed to create account", err)
	}
	return &user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*LoginResult, error) {
	email := normalizeEmail(req.Email)
	identity, err := s.users.FindIdentityByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load identity", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByIdentityID(ctx, identity.ID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Error().Uint("identityID", identity.ID).Str("email", email).Msg("Identity has no provisioned user row")
		return nil, ErrUserNotProvisioned
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load user", err)
	}

	if err := s.sessions.RecordLogin(ctx, user); err != nil {
		log.Warn().Err(err).Uint("userID", user.ID).Msg("Failed to record login streak/session")
	}

	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, apperror.Upstream("failed to issue session token", err)
	}
	log.Info().Uint("userID", user.ID).Msg("User logged in")
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: *toUserResponse(user)}, nil
}

func (s *authService) issueToken(user *model.User) (string, time.Time, error) {
	now := s.calendar.Now()
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*Caller, error) {
	if token == "" {
		return nil, apperror.Unauthenticated("authentication required")
	}
	claims := &sessionClaims{}
	// expiry is checked against the service clock below
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}
	if claims.ExpiresAt == nil || !s.calendar.Now().Before(claims.ExpiresAt.Time) {
		return nil, ErrInvalidSession
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidSession
	}

	user, err := s.users.FindByID(ctx, uint(id))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load user", err)
	}
	return &Caller{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *authService) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("user not found")
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load user", err)
	}
	return toUserResponse(user), nil
}

func (s *authService) Logout(ctx context.Context, userID uint) error {
	_, err := s.sessions.EndSession(ctx, userID)
	return err
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperror.Upstream("failed to list users", err)
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, *toUserResponse(&users[i]))
	}
	return resp, nil
}

// BootstrapSuperAdmin provisions the configured super admin. It does nothing
// when no credentials are configured or the account already exists.
func (s *authService) BootstrapSuperAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		log.Info().Msg("No bootstrap super admin configured")
		return nil
	}
	_, err := s.users.FindIdentityByEmail(ctx, email)
	if err == nil {
		log.Info().Str("email", email).Msg("Bootstrap super admin already exists")
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	user, err := s.createAccount(ctx, email, password, "Super Admin", model.RoleSuperAdmin)
	if apperror.Is(err, apperror.KindConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Uint("userID", user.ID).Str("email", email).Msg("Bootstrap super admin created")
	return nil
}

func toUserResponse(user *model.User) *dto.UserResponse {
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	resp.Role = string(user.Role)
	return &resp
}
