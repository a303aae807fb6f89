package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/asetku/marketplace/cmd/config"
	"github.com/asetku/marketplace/constant"
	"github.com/asetku/marketplace/model"
	sessionrepo "github.com/asetku/marketplace/repository/session"
	userrepo "github.com/asetku/marketplace/repository/user"
	"github.com/asetku/marketplace/utils/errors"
	"github.com/asetku/marketplace/utils/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthApp interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (uint64, error)
}

type authAppImpl struct {
	config      *config.Config
	userRepo    userrepo.UserRepository
	sessionRepo sessionrepo.Repository
}

func NewAuthApp(config *config.Config, userRepo userrepo.UserRepository, sessionRepo sessionrepo.Repository) AuthApp {
	return &authAppImpl{
		config:      config,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *authAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	// Verify password
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	// Generate JWT token
	token, jti, err := s.generateJWT(user.ID)
	if err != nil {
		logger.Error("[Login] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// Store session in Redis
	err = s.sessionRepo.SetSession(ctx, jti, user.ID, s.config.Auth.SessionExpTime)
	if err != nil {
		logger.Error("[Login] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.LoginResponse{
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}

func (s *authAppImpl) ValidateToken(ctx context.Context, tokenString string) (uint64, error) {
	// Parse token
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	// Extract claims
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid claims")
	}

	// Extract userID from Subject
	userIDStr := claims.Subject
	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id in token")
	}

	// Extract JTI (Token ID)
	jti := claims.ID
	if jti == "" {
		return 0, fmt.Errorf("token missing jti")
	}

	// Check Redis session key
	redisUserID, err := s.sessionRepo.GetSession(ctx, jti)
	if err != nil {
		return 0, fmt.Errorf("invalid or expired session")
	}
	if redisUserID != userID {
		return 0, fmt.Errorf("session user mismatch")
	}

	return userID, nil
}

func (s *authAppImpl) generateJWT(userID uint64) (string, string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Auth.SessionExpTime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", err
	}

	return signed, jti, nil
}
