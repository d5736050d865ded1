package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

var (
	// ErrInvalidCredentials signals wrong email or password.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrSessionRevoked signals a token that was signed out.
	ErrSessionRevoked = errors.New("auth: session revoked")
)

// Service handles session business logic: password sign-in, token
// verification, and sign-out revocation.
type Service struct {
	repo      Repository
	denylist  Denylist
	jwtSecret []byte
	now       func() time.Time
}

// NewService creates a new session service. A nil denylist disables
// revocation checks.
func NewService(repo Repository, denylist Denylist, jwtSecret string) *Service {
	if denylist == nil {
		denylist = noopDenylist{}
	}
	return &Service{
		repo:      repo,
		denylist:  denylist,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// SignIn authenticates the credentials and issues a session token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, creds Credentials) (Session, error) {
	user, err := s.repo.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("auth: generate token: %w", err)
	}

	return Session{Token: token, User: user}, nil
}

// SignOut revokes the token for the rest of its lifetime. Signing out an
// expired or malformed token is not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	userID, expiresAt, err := s.parseToken(token)
	if err != nil || userID == "" {
		return nil
	}

	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.denylist.Revoke(ctx, token, ttl); err != nil {
		return fmt.Errorf("auth: revoke session: %w", err)
	}

	return nil
}

// CurrentUser resolves a session token to the account it belongs to,
// refusing revoked sessions.
func (s *Service) CurrentUser(ctx context.Context, token string) (*User, error) {
	userID, _, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("auth: check revocation: %w", err)
	}
	if revoked {
		return nil, ErrSessionRevoked
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account for the notes page dump.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// generateToken creates a session JWT for the user.
func (s *Service) generateToken(userID string) (string, error) {
	issuedAt := s.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     issuedAt.Add(sessionTTL).Unix(),
		"iat":     issuedAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// parseToken validates signature and expiry, returning the subject and
// expiry time.
func (s *Service) parseToken(tokenString string) (string, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", time.Time{}, fmt.Errorf("auth: invalid token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", time.Time{}, fmt.Errorf("auth: invalid user_id in token")
	}

	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return "", time.Time{}, fmt.Errorf("auth: missing expiry in token")
	}

	return userID, expiresAt.Time, nil
}
