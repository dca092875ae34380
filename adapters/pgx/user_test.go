package pgx

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lborres/rolegate/core"
	"github.com/lborres/rolegate/pkg/crypto"
)

// fakeRow implements pgx.Row over fixed values.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int16:
			*p = r.values[i].(int16)
		case **string:
			*p, _ = r.values[i].(*string)
		default:
			return errors.New("unexpected scan target")
		}
	}
	return nil
}

// fakeDB records statements and answers QueryRow from row.
type fakeDB struct {
	row     fakeRow
	queries []string
	args    [][]any
	execErr error
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, args)
	return f.row
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func newTestAdapter(db *fakeDB) *Adapter {
	return &Adapter{db: db, timeout: time.Second}
}

func TestAdapter_GetUserByEmail(t *testing.T) {
	tests := []struct {
		name     string
		row      fakeRow
		wantRole core.Role
		wantErr  error
	}{
		{
			name:     "found",
			row:      fakeRow{values: []any{"3", "admin@test.com", "hash", int16(3), "Admin Super", (*string)(nil)}},
			wantRole: core.RoleAdmin,
		},
		{name: "no rows", row: fakeRow{err: pgx.ErrNoRows}, wantErr: core.ErrUserNotFound},
		{
			name:    "bad role",
			row:     fakeRow{values: []any{"3", "admin@test.com", "hash", int16(9), "Admin Super", (*string)(nil)}},
			wantErr: core.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			db := &fakeDB{row: tt.row}

			// Act
			u, err := newTestAdapter(db).GetUserByEmail("Admin@Test.com")

			// Assert
			require.Len(t, db.queries, 1)
			assert.Contains(t, db.queries[0], "lower(email) = lower($1)")
			assert.Equal(t, []any{"Admin@Test.com"}, db.args[0])
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, u.Role)
			assert.Nil(t, u.Avatar)
		})
	}
}

func TestAdapter_GetUserByEmail_DriverError(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: errors.New("connection reset")}}

	_, err := newTestAdapter(db).GetUserByEmail("a@test.com")

	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrUserNotFound)
}

func TestAdapter_Seed(t *testing.T) {
	db := &fakeDB{}
	hasher := &crypto.Argon2{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	users := []core.User{
		{ID: "1", Email: "user@test.com", Password: "123456", Role: core.RoleUser, Name: "Regular User"},
		{ID: "3", Email: "admin@test.com", Password: "123456", Role: core.RoleAdmin, Name: "Admin Super"},
	}

	require.NoError(t, newTestAdapter(db).Seed(context.Background(), users, hasher))

	require.Len(t, db.args, 2)
	stored := db.args[0][2].(string)
	assert.True(t, strings.HasPrefix(stored, "$argon2id$"))
	ok, err := hasher.Verify("123456", stored)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int16(core.RoleAdmin), db.args[1][3])
}

func TestAdapter_UpsertUser_InvalidRole(t *testing.T) {
	db := &fakeDB{}

	err := newTestAdapter(db).UpsertUser(context.Background(), core.User{ID: "1", Role: core.Role(7)}, crypto.Plaintext{})

	assert.ErrorIs(t, err, core.ErrInvalidRole)
	assert.Empty(t, db.queries)
}

func TestAdapter_Migrate(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, newTestAdapter(db).Migrate(context.Background()))
	assert.Equal(t, []string{Schema}, db.queries)

	db.execErr = errors.New("permission denied for schema public")
	assert.Error(t, newTestAdapter(db).Migrate(context.Background()))
}
