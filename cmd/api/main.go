package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"Lee_Groups/internal/config"
	"Lee_Groups/internal/event"
	"Lee_Groups/internal/handler"
	"Lee_Groups/internal/pkg"
	"Lee_Groups/internal/repository/memory"
	"Lee_Groups/internal/repository/rdb"
	"Lee_Groups/internal/repository/redis"
	"Lee_Groups/internal/router"
	"Lee_Groups/internal/service"
)

func main() {
	configPath := flag.String("config", os.Getenv("APP_CONFIG"), "path to yaml config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err = run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type repos struct {
	users  service.UserRepository
	groups service.GroupRepository
	posts  service.PostRepository
}

func run(cfg *config.Config, logger *slog.Logger) error {
	checks := map[string]handler.Check{}

	// 存储
	var rs repos
	if cfg.DB.Driver == "memory" {
		store := memory.NewStore()
		rs = repos{users: store.Users(), groups: store.Groups(), posts: store.Posts()}
		logger.Warn("using in-memory storage, data is lost on restart")
	} else {
		db, err := rdb.Open(rdb.Options{
			Driver:       cfg.DB.Driver,
			DSN:          cfg.DB.DSN,
			MaxOpenConns: cfg.DB.MaxOpenConns,
			MaxIdleConns: cfg.DB.MaxIdleConns,
		})
		if err != nil {
			return err
		}
		defer rdb.Close(db)

		// 自动建表
		if cfg.DB.AutoMigrate {
			if err = rdb.Migrate(db); err != nil {
				return err
			}
		}
		rs = repos{
			users:  rdb.NewUserRepository(db),
			groups: rdb.NewGroupRepository(db),
			posts:  rdb.NewPostRepository(db),
		}
		checks["db"] = func(ctx context.Context) error { return rdb.Ping(ctx, db) }
	}

	// 登录态：配置了 redis 用 redis，否则放进程内存
	var sessions service.SessionStore
	if cfg.Redis.Addr != "" {
		rdbClient, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rdbClient.Close()
		sessions = redis.NewSessionRepository(rdbClient)
		checks["redis"] = func(ctx context.Context) error { return pingRedis(ctx, rdbClient) }
	} else {
		sessions = memory.NewSessionStore()
	}

	publisher, closeEvents := newPublisher(cfg, logger)
	defer closeEvents()

	issuer := pkg.NewTokenIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	r := router.InitRouter(router.Services{
		Users:  service.NewUserService(rs.users, sessions, publisher, logger),
		Auth:   service.NewAuthService(rs.users, sessions, issuer, logger),
		Groups: service.NewGroupService(rs.groups, publisher, logger),
		Posts:  service.NewPostService(rs.posts, rs.groups, publisher, logger),
		Checks: checks,
	}, logger)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTP.Addr, "driver", cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newPublisher kafka 和欢迎邮件按配置启用，日志总是记一份
func newPublisher(cfg *config.Config, logger *slog.Logger) (event.Publisher, func()) {
	pubs := event.Multi{event.LogPublisher{Logger: logger}}
	closeFn := func() {}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		pubs = append(pubs, event.NewKafkaPublisher(producer))
		closeFn = func() {
			if err := producer.Close(); err != nil {
				logger.Warn("close kafka producer failed", "err", err)
			}
		}
	}

	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}
	if smtp.Enabled() {
		pubs = append(pubs, event.NewWelcomeMailer(smtp))
	}
	return pubs, closeFn
}

func pingRedis(ctx context.Context, c *goredis.Client) error {
	return c.Ping(ctx).Err()
}
