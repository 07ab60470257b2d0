package rdb

import (
	"errors"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"Lee_Groups/internal/repository"
)

const (
	mysqlDuplicateEntry = 1062
	pgUniqueViolation   = "23505"

	ukUsersUsername = "uk_users_username"
	ukUsersEmail    = "uk_users_email"
)

// translate 把驱动层错误换成 repository 的哨兵错误
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	if key, ok := duplicateKey(err); ok {
		switch key {
		case ukUsersEmail:
			return repository.ErrDuplicateEmail
		case ukUsersUsername:
			return repository.ErrDuplicateUsername
		}
	}
	return err
}

func duplicateKey(err error) (string, bool) {
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return mysqlKeyName(myErr.Message), true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// mysqlKeyName 从 "Duplicate entry '...' for key 'users.uk_users_email'" 里取索引名，
// 重复的值本身可能包含任意字符，只看最后一个 for key 之后的部分
func mysqlKeyName(msg string) string {
	i := strings.LastIndex(msg, " for key ")
	if i < 0 {
		return ""
	}
	key := strings.Trim(strings.TrimSpace(msg[i+len(" for key "):]), "'`\"")
	if dot := strings.LastIndexByte(key, '.'); dot >= 0 {
		key = key[dot+1:]
	}
	return key
}
