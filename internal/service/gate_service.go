package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/zad-edu/masadr2040/internal/dto"
	"github.com/zad-edu/masadr2040/internal/models"
	"github.com/zad-edu/masadr2040/pkg/config"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
)

// GateService implements the protected-action gate: a correct password mints
// a token whose lifetime is the grace window, so re-entry is only demanded
// after the token expires.
type GateService struct {
	config    config.GateConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewGateService constructs a GateService.
func NewGateService(cfg config.GateConfig, validate *validator.Validate, logger *zap.Logger) *GateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.GraceWindow <= 0 {
		cfg.GraceWindow = 5 * time.Minute
	}
	return &GateService{config: cfg, validator: validate, logger: logger, now: time.Now}
}

// Unlock verifies the password and issues a gate token.
func (s *GateService) Unlock(ctx context.Context, req dto.UnlockRequest) (*dto.UnlockResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unlock payload")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.config.PINHash), []byte(req.PIN)); err != nil {
		s.logger.Warn("gate unlock rejected")
		return nil, appErrors.Clone(appErrors.ErrWrongPIN, "")
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.GraceWindow)
	claims := &models.GateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   "gate",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign gate token")
	}

	return &dto.UnlockResponse{
		Token:     signed,
		ExpiresIn: int64(s.config.GraceWindow.Seconds()),
		IssuedAt:  issuedAt,
	}, nil
}

// Validate parses a gate token. Any failure, including expiry, reports that
// the gate must be passed again.
func (s *GateService) Validate(tokenString string) (*models.GateClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.GateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrGateRequired.Code, appErrors.ErrGateRequired.Status, appErrors.ErrGateRequired.Message)
	}

	claims, ok := token.Claims.(*models.GateClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrGateRequired, "")
	}

	return claims, nil
}
