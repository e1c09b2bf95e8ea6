package useradm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/projboard/internal/common"
	"github.com/dmitrijs2005/projboard/internal/server/models"
	"github.com/dmitrijs2005/projboard/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser inserts a user with the given name, prompting for the password
// on the terminal. The server must have run its migrations already.
func CreateUser(ctx context.Context, dsn, userName string, w io.Writer) error {

	if userName == "" {
		return common.ErrorValidation
	}

	password, err := GetPassword(w)
	if err != nil {
		return fmt.Errorf("password prompt: %w", err)
	}
	if len(password) == 0 {
		return common.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	repo := users.NewPostgresRepository(db)
	user, err := repo.Create(ctx, &models.User{UserName: userName, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return fmt.Errorf("username %q is already taken", userName)
		}
		return err
	}

	fmt.Fprintf(w, "created user %s (id %s)\n", user.UserName, user.ID)
	return nil
}
