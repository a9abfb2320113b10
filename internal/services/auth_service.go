package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/JoTroup/woocommerce-default-ordering/internal/auth"
	"github.com/JoTroup/woocommerce-default-ordering/internal/domain"
	"github.com/JoTroup/woocommerce-default-ordering/internal/repositories"
	"github.com/JoTroup/woocommerce-default-ordering/internal/utils"
)

const invalidLogin = "invalid login or password"

type UserFinder interface {
	FindByLogin(ctx context.Context, login string) (repositories.UserRecord, error)
}

type AuthService struct {
	Users     UserFinder
	Secret    []byte
	TTL       time.Duration
	Now       func() time.Time
	Logger    *zap.Logger
	RequestID string
}

// LoginResult is returned to a successfully authenticated user.
type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      domain.Viewer `json:"user"`
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the password and issues a token carrying the user's roles.
func (s AuthService) Login(ctx context.Context, login, password string) (LoginResult, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Msg: "login and password are required"}
	}

	u, err := s.Users.FindByLogin(ctx, login)
	if err != nil {
		if domain.IsNotFound(err) {
			return LoginResult{}, domain.UnauthorizedError{Msg: invalidLogin}
		}
		return LoginResult{}, domain.InternalError{Msg: "failed to look up user", Err: err}
	}
	if u.Status != "" && u.Status != "active" {
		return LoginResult{}, domain.UnauthorizedError{Msg: "account disabled"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, domain.UnauthorizedError{Msg: invalidLogin}
	}

	viewer := domain.Viewer{UserID: u.ID, Roles: u.Roles}
	now := s.now()
	token, err := auth.IssueToken(s.Secret, s.TTL, viewer, now)
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}

	utils.LogEvent(s.Logger, s.RequestID, "auth", "login", "user signed in", zap.Int64("user_id", u.ID))
	return LoginResult{Token: token, ExpiresAt: now.Add(s.TTL), User: viewer}, nil
}
