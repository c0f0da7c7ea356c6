package rest

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/qhub/qhub_api/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

func (api *API) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	err := api.DB.QueryRow(ctx, stmt, email).Scan(&exists)
	if err != nil {
		log.Println("error checking email", err)
		return false, err
	}
	return exists, nil
}

func (api *API) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	err := api.DB.QueryRow(ctx, stmt, username).Scan(&exists)
	if err != nil {
		log.Println("error checking username", err)
		return false, err
	}
	return exists, nil
}

func (api *API) CreateNewUserRepo(ctx context.Context, user model.User) error {
	stmt := `
        INSERT INTO users (
            id,
            username,
            email,
            password_hash
        ) VALUES ($1, $2, $3, $4)
    `
	_, err := api.DB.Exec(ctx, stmt, user.ID, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		log.Println("error creating new user", err)
		return err
	}
	return nil
}

func (api *API) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	stmt := `SELECT id, username, email, password_hash, is_admin, created_at, updated_at FROM users WHERE email = $1`

	err := api.DB.QueryRow(ctx, stmt, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		log.Println("error getting user by email", err)
		return model.User{}, err
	}
	return user, nil
}

func (api *API) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	var user model.User
	stmt := `SELECT id, username, email, password_hash, is_admin, created_at, updated_at FROM users WHERE id = $1`

	err := api.DB.QueryRow(ctx, stmt, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		log.Println("error getting user by ID", err)
		return model.User{}, err
	}
	return user, nil
}

func (api *API) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	stmt := `SELECT id, username, email, password_hash, is_admin, created_at, updated_at FROM users WHERE username = $1`

	err := api.DB.QueryRow(ctx, stmt, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		log.Println("error getting user by username", err)
		return model.User{}, err
	}
	return user, nil
}

func (api *API) StoreAuthToken(ctx context.Context, userID uuid.UUID, tokenType, tokenValue string, expiresAt time.Time) error {
	stmt := `
        INSERT INTO auth_tokens (
            user_id,
            token_type,
            token_value,
            expires_at
        ) VALUES ($1, $2, $3, $4)
    `
	_, err := api.DB.Exec(ctx, stmt, userID, tokenType, tokenValue, expiresAt)
	if err != nil {
		log.Println("error storing auth token", err)
		return err
	}
	return nil
}

// AuthTokenIsValid reports whether a stored token is known, unrevoked and
// unexpired.
func (api *API) AuthTokenIsValid(ctx context.Context, tokenValue string) (bool, error) {
	var valid bool
	stmt := `
        SELECT EXISTS(
            SELECT 1 FROM auth_tokens
            WHERE token_value = $1
              AND is_revoked = FALSE
              AND expires_at > NOW()
        )
    `
	err := api.DB.QueryRow(ctx, stmt, tokenValue).Scan(&valid)
	if err != nil {
		log.Println("error validating auth token", err)
		return false, err
	}
	return valid, nil
}

func (api *API) RevokeAuthToken(ctx context.Context, tokenValue string) error {
	stmt := `UPDATE auth_tokens SET is_revoked = TRUE WHERE token_value = $1`

	_, err := api.DB.Exec(ctx, stmt, tokenValue)
	if err != nil {
		log.Println("error revoking auth token", err)
		return err
	}
	return nil
}
