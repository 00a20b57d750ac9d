package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/dcampelo/permit-management/internal"
	"github.com/dcampelo/permit-management/internal/user"
)

// UserRepository is the slice of the credential store the login flow needs.
type UserRepository interface {
	GetByEmail(email string) (*user.User, error)
	GetByID(id int64) (*user.User, error)
}

// Service verifies credentials against stored bcrypt hashes and issues
// session tokens. An unknown email and a wrong password fail with distinct
// errors; the caller decides how much of that distinction to surface.
type Service struct {
	users          UserRepository
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

func NewService(users UserRepository, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		users:          users,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

// Authenticate validates credentials and returns the account's public
// fields plus fresh tokens.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		if _, ok := apperrors.IsAppError(err); ok {
			s.logger.Warn("login for unknown email")
			return nil, apperrors.ErrUserNotFound
		}
		s.logger.Error("credential lookup failed", "error", err)
		return nil, apperrors.NewInternalError("failed to look up credentials", err)
	}

	// one-way comparison; the stored hash is never decoded
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login with wrong password", "user_id", u.ID)
		return nil, apperrors.ErrWrongPassword
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", "user_id", u.ID)

	return &LoginResult{User: u.Public(), Tokens: tokens}, nil
}

// RefreshTokens validates a refresh token and issues a new token pair.
func (s *Service) RefreshTokens(refreshToken string) (*LoginResult, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	id, err := parseUserID(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	u, err := s.users.GetByID(id)
	if err != nil {
		if _, ok := apperrors.IsAppError(err); ok {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewInternalError("failed to look up user", err)
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: u.Public(), Tokens: tokens}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

func (s *Service) issueTokens(u *user.User) (AuthTokens, error) {
	subject := fmt.Sprintf("%d", u.ID)

	accessToken, err := s.tokenGenerator.GenerateAccessToken(subject, u.Email)
	if err != nil {
		s.logger.Error("access token generation failed", "error", err, "user_id", u.ID)
		return AuthTokens{}, apperrors.NewInternalError("failed to generate token", err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(subject, u.Email)
	if err != nil {
		s.logger.Error("refresh token generation failed", "error", err, "user_id", u.ID)
		return AuthTokens{}, apperrors.NewInternalError("failed to generate token", err)
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID string, email string) (string, error) {
	return j.signedToken(userID, email, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID string, email string) (string, error) {
	return j.signedToken(userID, email, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) signedToken(userID, email string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseUserID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		// Refresh tokens outlive the access TTL; pick the secret by the
		// remaining lifetime the same way they were issued.
		if claims, ok := token.Claims.(*Claims); ok && claims.ExpiresAt != nil {
			if time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrInvalidToken
}
