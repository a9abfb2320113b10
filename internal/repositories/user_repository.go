package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "github.com/JoTroup/woocommerce-default-ordering/internal/config"
	"github.com/JoTroup/woocommerce-default-ordering/internal/domain"
	"github.com/JoTroup/woocommerce-default-ordering/internal/utils"
)

// UserRecord is the subset of a staff account needed to sign in.
type UserRecord struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Roles        []string
	Status       string
}

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// FindByLogin looks a user up by email or username.
func (r UserRepository) FindByLogin(ctx context.Context, login string) (UserRecord, error) {
	db := r.db()
	if db == nil {
		return UserRecord{}, fmt.Errorf("find user: database not connected")
	}
	login = strings.TrimSpace(login)

	var (
		u     UserRecord
		roles sql.NullString
	)
	err := db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, roles, status
		FROM users
		WHERE email = ? OR username = ?
		LIMIT 1
	`, login, login).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &roles, &u.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRecord{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return UserRecord{}, fmt.Errorf("find user: %w", err)
	}
	u.Roles = utils.UniqueTrimmed(utils.SplitList(roles.String))
	return u, nil
}
