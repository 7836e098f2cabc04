package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"TubeFuss.com/cmd/api/handlers/healthcheck"
	"TubeFuss.com/cmd/api/handlers/interaction"
	"TubeFuss.com/cmd/api/handlers/pack"
	"TubeFuss.com/cmd/api/handlers/relation"
	"TubeFuss.com/cmd/api/handlers/user"
	"TubeFuss.com/cmd/api/handlers/video"
	"TubeFuss.com/cmd/api/router"
	"TubeFuss.com/cmd/api/router/flow"
	"TubeFuss.com/cmd/api/router/mw"
	interactiondb "TubeFuss.com/cmd/interaction/dal/db"
	interactionservice "TubeFuss.com/cmd/interaction/service"
	relationdb "TubeFuss.com/cmd/relation/dal/db"
	relationservice "TubeFuss.com/cmd/relation/service"
	userdb "TubeFuss.com/cmd/user/dal/db"
	userservice "TubeFuss.com/cmd/user/service"
	"TubeFuss.com/cmd/video/common"
	videodb "TubeFuss.com/cmd/video/dal/db"
	videoservice "TubeFuss.com/cmd/video/service"
	"TubeFuss.com/config"
	"TubeFuss.com/config/pprof"
	"TubeFuss.com/pkg/cache"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/jwt"
	"TubeFuss.com/pkg/lock"
	"TubeFuss.com/pkg/mq"
	"TubeFuss.com/pkg/oss"
	"TubeFuss.com/pkg/search"
	"TubeFuss.com/pkg/security"
	"TubeFuss.com/pkg/tracer"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// infra holds the long-lived clients; optional ones stay nil when unconfigured.
type infra struct {
	db       *gorm.DB
	redis    *redis.Client
	media    *oss.MinioStorage
	index    search.VideoIndex
	producer *mq.Producer
	consumer *mq.Consumer
	tracer   io.Closer
	locker   lock.Locker
	limiter  security.Limiter
}

func Init(ctx context.Context) *infra {
	cfg := config.ConfigInfo
	in := &infra{}
	var err error

	if in.tracer, err = tracer.InitJaeger(cfg.Jaeger.ServiceName, cfg.Jaeger.Agent); err != nil {
		hlog.Fatalf("init tracer failed: %v", err)
	}
	if in.db, err = database.Open(config.MysqlDSN(), database.DefaultOptions); err != nil {
		hlog.Fatalf("connect mysql failed: %v", err)
	}
	if in.media, err = oss.NewMinioStorage(ctx, oss.Options{
		Endpoint:    cfg.Minio.Endpoint,
		AccessKey:   cfg.Minio.AccessKey,
		SecretKey:   cfg.Minio.SecretKey,
		UseSSL:      cfg.Minio.UseSSL,
		PublicURL:   cfg.Minio.PublicURL,
		ImageBucket: cfg.Minio.ImageBucket,
		VideoBucket: cfg.Minio.VideoBucket,
	}); err != nil {
		hlog.Fatalf("connect minio failed: %v", err)
	}

	window := config.Duration(cfg.RateLimit.Window, time.Minute)
	in.locker = lock.NewLocalLocker()
	in.limiter = security.NewLocalLimiter(window, cfg.RateLimit.MaxRequests)
	if cfg.Redis.Addr != "" {
		if in.redis, err = cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			hlog.Warnf("redis unavailable, using in-process locks and rate limits: %v", err)
			in.redis = nil
		} else {
			in.locker = lock.NewRedisLocker(in.redis, 5*time.Second)
			in.limiter = security.NewSlidingWindowLimiter(in.redis, window, cfg.RateLimit.MaxRequests)
		}
	}

	if cfg.Elastic.Addr != "" {
		if idx, err := search.NewElasticIndex(ctx, cfg.Elastic.Addr, cfg.Elastic.Index); err != nil {
			hlog.Warnf("elasticsearch unavailable, video search uses SQL: %v", err)
		} else {
			in.index = idx
		}
	}

	if url := config.RabbitURL(); url != "" {
		if in.producer, err = mq.NewProducer(url); err != nil {
			hlog.Fatalf("connect rabbitmq producer failed: %v", err)
		}
		if in.consumer, err = mq.NewConsumer(url); err != nil {
			hlog.Fatalf("connect rabbitmq consumer failed: %v", err)
		}
	}
	return in
}

func main() {
	config.Init()
	cfg := config.ConfigInfo
	ctx, cancel := context.WithCancel(context.Background())
	in := Init(ctx)
	pprof.Load(cfg.Server.PprofAddr)

	maxRetries := cfg.Outbox.MaxRetries
	maxLimit := cfg.Pagination.MaxLimit
	tokens := jwt.NewTokenManager(
		cfg.Jwt.AccessSecret, config.Duration(cfg.Jwt.AccessExpiry, 24*time.Hour),
		cfg.Jwt.RefreshSecret, config.Duration(cfg.Jwt.RefreshExpiry, 240*time.Hour),
	)

	userDao := userdb.NewUserDao(in.db, maxRetries)
	videoDao := videodb.NewVideoDao(in.db, maxRetries)
	playlistDao := videodb.NewPlaylistDao(in.db)
	outboxDao := videodb.NewOutboxDao(in.db)

	var publisher mq.MediaEventPublisher
	if in.producer != nil {
		publisher = in.producer
	}
	relay := common.NewMediaSyncService(outboxDao, in.media, publisher,
		config.Duration(cfg.Outbox.Interval, 10*time.Second), cfg.Outbox.BatchSize)
	if in.consumer != nil {
		if err := in.consumer.ConsumeMediaDelete(ctx, relay); err != nil {
			hlog.Fatalf("start media delete consumer failed: %v", err)
		}
	}
	relay.Run()

	users := userservice.NewUserService(userDao, in.media, tokens)
	handlers := &router.Handlers{
		Authn: users,
		User:  user.New(users, tokens, pack.CookieConfig{Secure: cfg.Server.SecureCookies}, maxLimit),
		Video: video.New(
			videoservice.NewVideoService(videoDao, in.media, in.index),
			videoservice.NewPlaylistService(playlistDao, videoDao, userDao),
			videoservice.NewDashboardService(videodb.NewDashboardDao(in.db)),
			maxLimit,
		),
		Interaction: interaction.New(
			interactionservice.NewCommentService(interactiondb.NewCommentDao(in.db), videoDao),
			interactionservice.NewTweetService(interactiondb.NewTweetDao(in.db), userDao),
			interactionservice.NewLikeService(interactiondb.NewLikeDao(in.db), in.locker),
			maxLimit,
		),
		Relation: relation.New(
			relationservice.NewSubscriptionService(relationdb.NewSubscriptionDao(in.db), userDao, in.locker),
			maxLimit,
		),
		Health: healthcheck.New(func(ctx context.Context) error { return database.Ping(ctx, in.db) }),
	}

	opts := []hertzconfig.Option{
		server.WithHostPorts(cfg.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.Server.MaxBodySize),
	}
	if cfg.Server.TLSCert != "" {
		tlsCfg, err := security.ServerTLSConfig(cfg.Server.TLSCert, cfg.Server.TLSKey)
		if err != nil {
			hlog.Fatalf("load tls config failed: %v", err)
		}
		opts = append(opts, server.WithTLS(tlsCfg))
	}
	h := server.New(opts...)

	// 错误处理
	h.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			pack.SendError(c, fmt.Errorf("panic: %v", err))
		})))

	// 配置 CORS
	h.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	h.Use(mw.Metrics())
	if enabled, err := flow.Init(cfg.Sentinel.QPS); err != nil {
		hlog.Warnf("flow control disabled: %v", err)
	} else if enabled {
		h.Use(flow.Middleware())
	}
	h.Use(mw.RateLimit(in.limiter))

	// 注册路由
	router.Register(h, handlers)

	h.OnShutdown = append(h.OnShutdown, func(context.Context) {
		cancel()
		relay.Stop()
		in.close()
	})
	h.Spin()
}

func (in *infra) close() {
	if in.producer != nil {
		logClose("producer", in.producer.Close())
	}
	if in.consumer != nil {
		logClose("consumer", in.consumer.Close())
	}
	if in.redis != nil {
		logClose("redis", in.redis.Close())
	}
	logClose("mysql", database.Close(in.db))
	logClose("tracer", in.tracer.Close())
}

func logClose(name string, err error) {
	if err != nil {
		hlog.Errorf("close %s failed: %v", name, err)
	}
}
