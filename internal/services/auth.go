package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// IDTokenVerifier verifies Firebase ID tokens; *auth.Client implements it
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthService issues local session tokens for password and Firebase sign-in
type AuthService struct {
	users    repositories.UserRepository
	verifier IDTokenVerifier
	secret   []byte
	now      func() time.Time
}

// NewAuthService creates an AuthService. verifier may be nil when Firebase
// login is not configured.
func NewAuthService(users repositories.UserRepository, verifier IDTokenVerifier, jwtSecret string) *AuthService {
	return &AuthService{
		users:    users,
		verifier: verifier,
		secret:   []byte(jwtSecret),
		now:      time.Now,
	}
}

// Session is returned by every sign-in path
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// SignUp registers a local account and signs it in
func (s *AuthService) SignUp(ctx context.Context, req models.CreateLocalUserRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s: %w", email, ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeErr("lookup email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, storeErr("create user", err)
	}
	return s.session(user)
}

// SignIn checks a local password
func (s *AuthService) SignIn(ctx context.Context, req models.SignInRequest) (*Session, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, storeErr("lookup email", err)
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrNotAuthenticated
	}
	if user.IsBanned() {
		return nil, ErrBanned
	}
	return s.session(user)
}

// FirebaseLogin verifies a Firebase ID token and links it to a local user,
// matching first by Firebase UID, then by email, creating one otherwise.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*Session, error) {
	if s.verifier == nil {
		return nil, fmt.Errorf("firebase login: %w", ErrNotAuthenticated)
	}
	token, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", ErrNotAuthenticated)
	}
	user, err := s.linkFirebaseUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if user.IsBanned() {
		return nil, ErrBanned
	}
	return s.session(user)
}

// ResolveFirebaseUser maps a verified token to its local user. Used by the
// Firebase bearer middleware.
func (s *AuthService) ResolveFirebaseUser(ctx context.Context, token *auth.Token) (*models.User, error) {
	user, err := s.linkFirebaseUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if user.IsBanned() {
		return nil, ErrBanned
	}
	return user, nil
}

func (s *AuthService) linkFirebaseUser(ctx context.Context, token *auth.Token) (*models.User, error) {
	uid := token.UID
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	email = strings.ToLower(email)

	user, err := s.users.GetUserByFirebaseUID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeErr("lookup firebase uid", err)
	}

	if email != "" {
		user, err = s.users.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			user.FirebaseUID = &uid
			if err := s.users.UpdateUser(ctx, user); err != nil {
				return nil, storeErr("link firebase uid", err)
			}
			return user, nil
		case !errors.Is(err, repositories.ErrNotFound):
			return nil, storeErr("lookup email", err)
		}
	}

	if name == "" {
		name = anonymousName
	}
	user = &models.User{Name: name, Email: email, FirebaseUID: &uid}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, storeErr("create user", err)
	}
	return user, nil
}

func (s *AuthService) session(user *models.User) (*Session, error) {
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user}, nil
}

// IssueToken signs an HS256 session token for user
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a session token and returns its claims
func (s *AuthService) ParseToken(tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNotAuthenticated
	}
	return claims, nil
}

// ActiveUser loads the user behind a session and rejects banned accounts
func (s *AuthService) ActiveUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, storeErr("get user", err)
	}
	if user.IsBanned() {
		return nil, ErrBanned
	}
	return user, nil
}
