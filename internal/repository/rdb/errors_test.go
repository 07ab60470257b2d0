package rdb

import (
	"errors"
	"fmt"
	"testing"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"Lee_Groups/internal/repository"
)

func TestTranslate(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"not found", fmt.Errorf("first: %w", gorm.ErrRecordNotFound), repository.ErrNotFound},
		{"mysql email", &mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com' for key 'users.uk_users_email'"}, repository.ErrDuplicateEmail},
		{"mysql username", &mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'uk_users_username'"}, repository.ErrDuplicateUsername},
		{"mysql username looks like key", &mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry 'uk_users_email' for key 'users.uk_users_username'"}, repository.ErrDuplicateUsername},
		{"mysql email value with key text", &mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry 'x for key uk_users_username@x.com' for key 'users.uk_users_email'"}, repository.ErrDuplicateEmail},
		{"mysql other unique key", &mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry 'uk_users_email' for key 'groups.PRIMARY'"}, nil},
		{"mysql other", &mysqldrv.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, nil},
		{"pg email", &pgconn.PgError{Code: "23505", ConstraintName: "uk_users_email"}, repository.ErrDuplicateEmail},
		{"pg username", &pgconn.PgError{Code: "23505", ConstraintName: "uk_users_username"}, repository.ErrDuplicateUsername},
		{"other", boom, boom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translate(tc.err)
			if tc.want == nil {
				if tc.err == nil {
					assert.NoError(t, got)
					return
				}
				assert.Same(t, tc.err, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestMysqlKeyName(t *testing.T) {
	assert.Equal(t, "uk_users_email", mysqlKeyName("Duplicate entry 'a@x.com' for key 'users.uk_users_email'"))
	assert.Equal(t, "uk_users_username", mysqlKeyName("Duplicate entry 'alice' for key 'uk_users_username'"))
	assert.Equal(t, "", mysqlKeyName("Cannot add or update a child row"))
}
