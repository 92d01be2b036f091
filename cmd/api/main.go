package main

import (
	"context"

	"sclusiv/internal/config"
	"sclusiv/internal/handler"
	"sclusiv/internal/model"
	"sclusiv/internal/pkg"
	"sclusiv/internal/repository/mysql"
	redisrepo "sclusiv/internal/repository/redis"
	"sclusiv/internal/router"
	"sclusiv/internal/service"
)

func main() {
	cfg := config.Load()

	pkg.AccessSecret = []byte(cfg.JWTAccessSecret)
	pkg.RefreshSecret = []byte(cfg.JWTRefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		pkg.Error.Fatalf("mysql init: %v", err)
	}
	if err := redisrepo.Init(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB); err != nil {
		pkg.Error.Fatalf("redis init: %v", err)
	}

	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.NameChange{},
		&model.Follow{},
		&model.FollowOutbox{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.Message{},
		&model.CreditEntry{},
	); err != nil {
		pkg.Error.Fatalf("migrate: %v", err)
	}

	userRepo := mysql.NewUserRepository()
	followRepo := mysql.NewFollowRepository()
	outboxRepo := mysql.NewOutboxRepository()
	postRepo := mysql.NewPostRepository()
	likeRepo := mysql.NewPostLikeRepository()
	messageRepo := mysql.NewMessageRepository()
	creditRepo := mysql.NewCreditRepository()

	sessions := &redisrepo.SessionRepository{}
	likeCache := redisrepo.NewLikeCacheRepository()
	likeLock := &redisrepo.DistLock{RDB: redisrepo.Client}

	mailer := pkg.NewMailer(pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	})

	creditSvc := service.NewCreditService(userRepo, creditRepo)
	userSvc := service.NewUserService(userRepo, sessions, creditSvc, mailer, service.AdminConfig{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	followSvc := service.NewFollowService(followRepo, userRepo)
	postSvc := service.NewPostService(postRepo, likeRepo, likeCache, likeLock, userRepo, followSvc, followRepo)
	messageSvc := service.NewMessageService(messageRepo, userRepo, creditSvc)
	adminSvc := service.NewAdminService(userRepo, sessions, creditSvc, mailer)
	assistSvc := service.NewAssistService(pkg.NewAssistClient(cfg.AssistAPIKey))

	ctx := context.Background()
	if err := userSvc.EnsureAdminAccount(ctx); err != nil {
		pkg.Error.Fatalf("ensure admin account: %v", err)
	}

	sender := service.LogSender
	if len(cfg.KafkaBrokers) > 0 {
		producer := pkg.NewFollowEventProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		defer producer.Close()
		sender = func(ctx context.Context, ob *model.FollowOutbox) error {
			return producer.Send(ctx, ob.Follower, []byte(ob.Payload))
		}
	}
	relayer := service.NewOutboxRelayer(outboxRepo, sender)
	go relayer.Run(ctx)

	r := router.InitRouter(router.Deps{
		Users:       handler.NewUserHandler(userSvc, creditSvc),
		Follows:     handler.NewFollowHandler(followSvc),
		Posts:       handler.NewPostHandler(postSvc),
		Messages:    handler.NewMessageHandler(messageSvc),
		Admin:       handler.NewAdminHandler(adminSvc),
		Assist:      handler.NewAssistHandler(assistSvc),
		Sessions:    sessions,
		UserService: userSvc,
	})

	pkg.Info.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		pkg.Error.Fatalf("server: %v", err)
	}
}
