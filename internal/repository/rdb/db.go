// Package rdb 关系型存储（MySQL / PostgreSQL），基于 gorm
package rdb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Lee_Groups/internal/model"
)

type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	LogLevel     logger.LogLevel
}

// Open 打开连接池并 ping 一次
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case "mysql":
		dialector = mysql.Open(opts.DSN)
	case "postgres":
		dialector = postgres.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(opts.LogLevel),
		SkipDefaultTransaction: false,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate 建表，外键带级联删除
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
	)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
