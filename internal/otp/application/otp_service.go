package application

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userDomain "github.com/davicafu/academylab/internal/user/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	sharedEvents "github.com/davicafu/academylab/shared/events"
	sharedCache "github.com/davicafu/academylab/shared/platform/cache"
	sharedMail "github.com/davicafu/academylab/shared/platform/mail"
)

const (
	MsgAlreadyVerified = "User already verified"
	MsgOTPExpired      = "OTP expired or not found"
	MsgInvalidOTP      = "Invalid OTP"

	otpMin = 100000
	otpMax = 999999
)

type SendInput struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// CacheKey es la misma en Send y Verify.
func CacheKey(email string) string {
	return "otp:" + strings.ToLower(strings.TrimSpace(email))
}

// OTPService envía y verifica códigos de un solo uso por email.
// El código sólo se guarda hasheado y con TTL; nunca se persiste en claro.
type OTPService struct {
	users      userDomain.UserRepository
	cache      sharedCache.Cache
	mailer     sharedMail.Sender
	ttl        time.Duration
	bcryptCost int
	log        *zap.Logger
}

func NewOTPService(
	users userDomain.UserRepository,
	cache sharedCache.Cache,
	mailer sharedMail.Sender,
	ttl time.Duration,
	bcryptCost int,
	log *zap.Logger,
) *OTPService {
	return &OTPService{users: users, cache: cache, mailer: mailer, ttl: ttl, bcryptCost: bcryptCost, log: log}
}

// Send genera un código nuevo; uno anterior sin usar queda sobrescrito.
func (s *OTPService) Send(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return sharedDomain.NewValidationError(MsgAlreadyVerified)
	}

	code, err := generateCode()
	if err != nil {
		return sharedDomain.NewUpstreamError("otp", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.bcryptCost)
	if err != nil {
		return sharedDomain.NewUpstreamError("bcrypt", err)
	}

	if err := s.cache.Set(ctx, CacheKey(user.Email), string(hash), int(s.ttl.Seconds())); err != nil {
		return sharedDomain.NewUpstreamError("cache", err)
	}

	if err := s.mailer.Send(ctx, sharedMail.Message{
		To:       user.Email,
		Subject:  "Your verification code",
		Template: sharedMail.TemplateOTP,
		Data:     map[string]string{"name": user.FullName(), "otp": code},
	}); err != nil {
		return err
	}

	s.log.Info("📨 OTP enviado", zap.String("user_id", user.ID.String()))
	return nil
}

// Verify marca al usuario como verificado y consume el código.
func (s *OTPService) Verify(ctx context.Context, email, otp string) error {
	key := CacheKey(email)

	var hash string
	found, err := s.cache.Get(ctx, key, &hash)
	if err != nil {
		return sharedDomain.NewUpstreamError("cache", err)
	}
	if !found {
		return sharedDomain.NewValidationError(MsgOTPExpired)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(otp))); err != nil {
		return sharedDomain.NewValidationError(MsgInvalidOTP)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	user.IsVerified = true
	user.UpdatedAt = time.Now().UTC()
	evt := sharedDomain.NewOutboxEvent(userDomain.UserAggregateType, user.ID.String(), userDomain.UserVerified,
		sharedEvents.UserVerified{ID: user.ID, Email: user.Email})

	if err := s.users.Update(ctx, user, evt); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		// el usuario ya está verificado; un código huérfano caduca solo
		s.log.Warn("failed to delete OTP", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(otpMin)).String(), nil
}
