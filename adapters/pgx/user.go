package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lborres/rolegate/core"
	"github.com/lborres/rolegate/pkg/crypto"
)

// Schema creates the users table. Emails are unique ignoring case.
const Schema = `
CREATE TABLE IF NOT EXISTS public.users (
	id       TEXT PRIMARY KEY,
	email    TEXT NOT NULL,
	password TEXT NOT NULL,
	role     SMALLINT NOT NULL CHECK (role BETWEEN 0 AND 3),
	name     TEXT NOT NULL,
	avatar   TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON public.users (lower(email));
`

// Migrate applies Schema.
func (a *Adapter) Migrate(ctx context.Context) error {
	if _, err := a.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

func (a *Adapter) GetUserByEmail(email string) (*core.User, error) {
	ctx, cancel := a.context()
	defer cancel()

	q := `SELECT id, email, password, role, name, avatar FROM public.users WHERE lower(email) = lower($1)`

	user := &core.User{}
	var role int16
	var avatar *string
	err := a.db.QueryRow(ctx, q, email).Scan(&user.ID, &user.Email, &user.Password, &role, &user.Name, &avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}

	user.Role = core.Role(role)
	if !user.Role.Valid() {
		return nil, fmt.Errorf("%w: user %s has role %d", core.ErrInvalidRole, user.ID, role)
	}
	user.Avatar = avatar
	return user, nil
}

// UpsertUser inserts or replaces a user keyed by id. The password is stored
// as given by hasher.Hash.
func (a *Adapter) UpsertUser(ctx context.Context, user core.User, hasher crypto.PasswordHandler) error {
	if !user.Role.Valid() {
		return fmt.Errorf("%w: %d", core.ErrInvalidRole, int(user.Role))
	}
	stored, err := hasher.Hash(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	q := `INSERT INTO public.users (id, email, password, role, name, avatar) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, password = EXCLUDED.password, role = EXCLUDED.role, name = EXCLUDED.name, avatar = EXCLUDED.avatar`
	_, err = a.db.Exec(ctx, q, user.ID, user.Email, stored, int16(user.Role), user.Name, user.Avatar)
	return err
}

// Seed upserts users, hashing each password with hasher.
func (a *Adapter) Seed(ctx context.Context, users []core.User, hasher crypto.PasswordHandler) error {
	for _, u := range users {
		if err := a.UpsertUser(ctx, u, hasher); err != nil {
			return fmt.Errorf("failed to seed %s: %w", u.Email, err)
		}
	}
	return nil
}
