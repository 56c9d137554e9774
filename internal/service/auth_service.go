package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"xplorer-be/internal/dto"
	"xplorer-be/internal/entity"
	"xplorer-be/internal/repository/contract"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is deliberately generic: it never says whether the
// username or the password was wrong.
var ErrInvalidCredentials = errors.New("user not known or password incorrect")

// dummyHash is compared against when the username is unknown, so known and
// unknown usernames take the same time to reject.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type IAuthService interface {
	// Login checks the credentials and, on success, creates a session and
	// returns a signed session token for the cookie. The raw credentials are
	// not retained anywhere after the check.
	Login(ctx context.Context, req *dto.LoginRequest) (string, error)
	Logout(ctx context.Context, sessionId uuid.UUID) error
}

type authService struct {
	users      map[string]string
	jwtSecret  []byte
	sessionTTL time.Duration
	sessions   contract.ISessionRepository
}

func NewAuthService(users map[string]string, jwtSecret string, sessionTTL time.Duration, sessions contract.ISessionRepository) IAuthService {
	return &authService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
		sessions:   sessions,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (string, error) {
	secret, known := s.users[req.Username]
	if !known {
		secret = dummyHash
	}

	if !verifySecret(secret, req.Password) || !known {
		return "", ErrInvalidCredentials
	}

	session := &entity.Session{
		Id:         uuid.New(),
		Transcript: []entity.Message{},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"session_id": session.Id.String(),
		"exp":        time.Now().Add(s.sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) Logout(ctx context.Context, sessionId uuid.UUID) error {
	return s.sessions.Delete(ctx, sessionId)
}

// verifySecret accepts either a bcrypt hash or a plaintext secret. Both
// branches are constant-time in the password.
func verifySecret(stored, password string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
