package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sharmasagarr/taskmanager/config"
	"github.com/sharmasagarr/taskmanager/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

type TokenClaims struct {
	UserId string `json:"userId"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users         domain.UserRepository
	secretKey     []byte
	tokenDuration time.Duration
	tracer        trace.Tracer
}

func NewAuthService(users domain.UserRepository, cfg config.Config, tracer trace.Tracer) *AuthService {
	return &AuthService{
		users:         users,
		secretKey:     []byte(cfg.JWTSecret),
		tokenDuration: cfg.TokenDuration,
		tracer:        tracer,
	}
}

// Register creates a user with a bcrypt-hashed credential and signs a
// token for it. The email must not already be registered.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if err := validateSignup(name, email, password); err != nil {
		return "", domain.User{}, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound()) {
		return "", domain.User{}, err
	}
	if existing != nil {
		return "", domain.User{}, domain.ErrEmailTaken()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.User{}, err
	}

	user, err := s.users.Insert(ctx, domain.User{
		Name:      name,
		Email:     email,
		Password:  string(hash),
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", domain.User{}, err
	}

	token, err := s.createToken(user)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

// LogIn verifies the credential and signs a token for the user.
func (s *AuthService) LogIn(ctx context.Context, email, password string) (string, domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.LogIn")
	defer span.End()

	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound()) {
			return "", domain.User{}, domain.ErrUserNotFound()
		}
		return "", domain.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", domain.User{}, domain.ErrInvalidCredentials()
	}

	token, err := s.createToken(*user)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, *user, nil
}

// ResolveToken returns the user id a valid token was signed for.
// Side-effect free.
func (s *AuthService) ResolveToken(ctx context.Context, tokenString string) (string, error) {
	_, span := s.tracer.Start(ctx, "AuthService.ResolveToken")
	defer span.End()

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken()
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", domain.ErrInvalidToken()
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.UserId == "" {
		return "", domain.ErrInvalidToken()
	}
	return claims.UserId, nil
}

func (s *AuthService) createToken(user domain.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserId: user.Id.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func validateSignup(name, email, password string) error {
	if name == "" {
		return domain.NewValidationError("name is required")
	}
	if email == "" {
		return domain.NewValidationError("email is required")
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return domain.NewValidationError("email is malformed")
	}
	if len(password) < 6 {
		return domain.NewValidationError("password must be at least 6 characters")
	}
	return nil
}
