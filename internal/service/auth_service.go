package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/guardstation/internal/content"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrCredentialsMissing = errors.New("admin credentials are not configured")
)

// AuthService 校验固定的管理员账号。密码只在启动时以 bcrypt 哈希保存在内存中。
type AuthService struct {
	username string
	hash     []byte
	delay    time.Duration
}

// NewAuthService hashes password once. delay is applied to every attempt so
// wrong and right guesses take the same time.
func NewAuthService(username, password string, delay time.Duration) (*AuthService, error) {
	user := strings.TrimSpace(username)
	if user == "" || password == "" {
		return nil, ErrCredentialsMissing
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{username: user, hash: hash, delay: delay}, nil
}

// Authenticate checks the credential pair after the fixed delay.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (content.User, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return content.User{}, ctx.Err()
		case <-timer.C:
		}
	}

	nameOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.hash, []byte(password))
	if !nameOK || passErr != nil {
		return content.User{}, ErrInvalidCredentials
	}
	return content.User{Username: s.username, Authenticated: true}, nil
}

// UserFromSession turns the stored session value into a user. Only the
// configured admin name counts as authenticated.
func (s *AuthService) UserFromSession(value interface{}) (content.User, bool) {
	name, ok := value.(string)
	if !ok || name == "" || name != s.username {
		return content.User{}, false
	}
	return content.User{Username: name, Authenticated: true}, true
}
