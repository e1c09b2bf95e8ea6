// Package services contains the application services sitting between the
// HTTP boundary and the repositories. Services own validation, the
// ownership guard, and error mapping to the sentinel values in common.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/projboard/internal/common"
	"github.com/dmitrijs2005/projboard/internal/server/auth"
	"github.com/dmitrijs2005/projboard/internal/server/config"
	"github.com/dmitrijs2005/projboard/internal/server/models"
	"github.com/dmitrijs2005/projboard/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// dummyPasswordHash is compared against when the username does not exist,
// so unknown-user and wrong-password logins take the same time and return
// the same error.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewUserService(db *sql.DB, repomanager repomanager.RepositoryManager, config *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// Register creates a new account. The password is stored only as a bcrypt
// hash. Returns common.ErrorAlreadyExists when the username is taken.
// Registration does not log the user in; the caller redirects to the login
// page.
func (s *UserService) Register(ctx context.Context, userName, password string) (*models.User, error) {

	userName = strings.TrimSpace(userName)
	if userName == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		UserName:     userName,
		PasswordHash: hash,
	}

	user, err = s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed session token for the
// user. Both unknown usernames and wrong passwords come back as
// common.ErrorUnauthorized; nothing distinguishes the two cases.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, error) {

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same bcrypt cost as a real comparison
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.config.SecretKey), s.config.SessionValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}
