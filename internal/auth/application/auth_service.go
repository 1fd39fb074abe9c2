package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/davicafu/academylab/internal/auth/domain"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	sharedEvents "github.com/davicafu/academylab/shared/events"
)

const (
	MsgEmailRegistered     = "Email already registered"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgAccountDisabled     = "Account is disabled"
	MsgInvalidRefreshToken = "Invalid refresh token"
)

type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required,min=1,max=50"`
	LastName  string `json:"lastName" binding:"required,min=1,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=100"`
	Phone     string `json:"phone" binding:"omitempty,max=20"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthUser es la vista mínima del usuario que devuelven register y login.
type AuthUser struct {
	ID    uuid.UUID       `json:"id"`
	Email string          `json:"email"`
	Role  userDomain.Role `json:"role"`
}

type LoginResult struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         AuthUser `json:"user"`
}

// AuthService cubre registro, login y renovación de tokens.
type AuthService struct {
	users      userDomain.UserRepository
	tokens     domain.TokenManager
	bcryptCost int
	log        *zap.Logger
}

func NewAuthService(users userDomain.UserRepository, tokens domain.TokenManager, bcryptCost int, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost, log: log}
}

// Register crea un STUDENT activo y sin verificar. El chequeo previo del email
// da un mensaje claro; la restricción UNIQUE del store cubre la carrera.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthUser, error) {
	email := normalizeEmail(in.Email)

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, sharedDomain.NewConflictError(MsgEmailRegistered)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, sharedDomain.NewUpstreamError("bcrypt", err)
	}

	now := time.Now().UTC()
	user := &userDomain.User{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         userDomain.RoleStudent,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	evt := sharedDomain.NewOutboxEvent(userDomain.UserAggregateType, user.ID.String(), userDomain.UserRegistered,
		sharedEvents.UserRegistered{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})

	if err := s.users.Create(ctx, user, evt); err != nil {
		return nil, err
	}

	s.log.Info("👤 usuario registrado", zap.String("user_id", user.ID.String()))
	return &AuthUser{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if sharedDomain.IsNotFound(err) {
			return nil, sharedDomain.NewAuthenticationError(MsgInvalidCredentials)
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, sharedDomain.NewAuthorizationError(MsgAccountDisabled)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, sharedDomain.NewAuthenticationError(MsgInvalidCredentials)
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Role)
	if err != nil {
		return nil, sharedDomain.NewUpstreamError("jwt", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, sharedDomain.NewUpstreamError("jwt", err)
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         AuthUser{ID: user.ID, Email: user.Email, Role: user.Role},
	}, nil
}

// Refresh emite un nuevo access token a partir de un refresh token válido.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", sharedDomain.NewAuthenticationError(MsgInvalidRefreshToken)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if sharedDomain.IsNotFound(err) {
			return "", sharedDomain.NewAuthenticationError(MsgInvalidRefreshToken)
		}
		return "", err
	}
	if !user.IsActive || user.IsBlocked {
		return "", sharedDomain.NewAuthenticationError(MsgInvalidRefreshToken)
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Role)
	if err != nil {
		return "", sharedDomain.NewUpstreamError("jwt", err)
	}
	return access, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
