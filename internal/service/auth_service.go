package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"jalali-planner/internal/model"
	"jalali-planner/internal/repository"
)

const tokenTTL = 24 * time.Hour

// AuthService handles registration, login and token verification.
type AuthService struct {
	userRepo *repository.UserRepository
	secret   []byte
}

func NewAuthService(userRepo *repository.UserRepository, secret string) *AuthService {
	return &AuthService{userRepo: userRepo, secret: []byte(secret)}
}

// Register creates a user and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	verrs := ValidationErrors{}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		verrs.Add("name", "The name field is required.")
	}
	if email == "" {
		verrs.Add("email", "The email field is required.")
	} else if !strings.Contains(email, "@") {
		verrs.Add("email", "The email field must be a valid email address.")
	}
	if len(password) < 8 {
		verrs.Add("password", "The password field must be at least 8 characters.")
	}

	if !verrs.Any() {
		_, err := s.userRepo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			verrs.Add("email", "The email has already been taken.")
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, "", fmt.Errorf("check email: %w", err)
		}
	}

	if verrs.Any() {
		return nil, "", verrs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks credentials and returns the user with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, "", ErrInvalidCredentials
	case err != nil:
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// VerifyToken parses a bearer token and returns the user id it carries.
func (s *AuthService) VerifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token")
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id < 1 {
		return 0, errors.New("invalid token claims")
	}
	return uint(id), nil
}

func (s *AuthService) issueToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
