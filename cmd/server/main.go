package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"

	"github.com/arda-labs/notify-core/internal/broker"
	"github.com/arda-labs/notify-core/internal/cache"
	"github.com/arda-labs/notify-core/internal/config"
	"github.com/arda-labs/notify-core/internal/identity"
	"github.com/arda-labs/notify-core/internal/mailer"
	"github.com/arda-labs/notify-core/internal/peer"
	"github.com/arda-labs/notify-core/internal/poddiscovery"
	"github.com/arda-labs/notify-core/internal/registry"
	"github.com/arda-labs/notify-core/internal/rpc/backstage"
	"github.com/arda-labs/notify-core/internal/rpc/frontend"
	"github.com/arda-labs/notify-core/internal/rpcmw"
	"github.com/arda-labs/notify-core/internal/sms"
	"github.com/arda-labs/notify-core/internal/snowflake"
	"github.com/arda-labs/notify-core/internal/store/postgres"
	"github.com/arda-labs/notify-core/internal/tenantmap"
	"github.com/arda-labs/notify-core/internal/worker"
	"github.com/arda-labs/notify-core/internal/worker/batchnotify"
	"github.com/arda-labs/notify-core/internal/worker/singlenotify"
	notifyv1 "github.com/arda-labs/notify-core/proto/notify/v1"
)

func main() {
	// ── Logging ──────────────────────────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// ── Config ───────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.Server.Env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Info().Str("env", cfg.Server.Env).Str("port", cfg.Server.Port).Msg("starting notify-core")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Database ──────────────────────────────────────────────────────────────
	dbPool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer dbPool.Close()
	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("postgres ping failed")
	}
	log.Info().Msg("postgres connected")

	// ── Cache ─────────────────────────────────────────────────────────────────
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr(), Password: cfg.Redis.Auth, DB: cfg.Redis.Database,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}
	cacheDir := cache.New(redisClient)
	log.Info().Msg("redis connected")

	// ── Broker ────────────────────────────────────────────────────────────────
	brokerTimeout := time.Duration(cfg.RabbitMQ.ConnectionTimeout) * time.Second
	brokerPool, err := broker.NewPool(ctx, broker.PoolConfig{
		URL: cfg.RabbitMQ.URL(), MaxConnection: cfg.RabbitMQ.MaxConnection,
		MinConnection: cfg.RabbitMQ.MinConnection, ConnectionTimeout: brokerTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open broker connection pool")
	}
	defer brokerPool.Close()

	topologyGateway, err := broker.New(ctx, brokerPool)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare broker topology")
	}
	defer topologyGateway.Close()
	log.Info().Msg("broker topology declared")

	// ── Identifiers ───────────────────────────────────────────────────────────
	ids, err := snowflake.NewFromPodIP(cfg.Pod.IP)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build snowflake generator")
	}

	// ── Record store ──────────────────────────────────────────────────────────
	st := postgres.New(dbPool)

	// ── External collaborators ───────────────────────────────────────────────
	idClient := identity.New(cfg.Upstream.UserServerHost, cfg.Upstream.UserServerPort)
	tenantMapClient := tenantmap.New(cfg.Upstream.OAuthServerHost, cfg.Upstream.OAuthServerPort)
	pods := poddiscovery.New(cfg.Pod.Namespace, cfg.Pod.DeploymentName, cfg.Pod.IP)
	mailClient := mailer.New(cfg.Mailgun.APIKey)
	smsClient := sms.New(cfg.Chuanx.AppKey, cfg.Chuanx.AppSecret, cfg.Chuanx.AppCode)

	grpcPort, err := strconv.Atoi(cfg.Server.Port)
	if err != nil {
		log.Fatal().Err(err).Msg("server.port must be numeric for peer forwarding")
	}
	frontendForwarder := peer.NewFrontendForwarder(grpcPort)
	backstageForwarder := peer.NewBackstageForwarder(grpcPort)

	// ── Connection registries ─────────────────────────────────────────────────
	frontendRegistry := registry.NewFrontendRegistry()
	backstageRegistry := registry.NewBackstageRegistry()

	// ── Worker pool ───────────────────────────────────────────────────────────
	// Each worker builds its own gateway, which checks a whole connection
	// out of the shared pool, keeping consumer state isolated per worker
	// (spec §5).
	for i := 0; i < cfg.Worker.SingleNotifyCount; i++ {
		gw, err := broker.New(ctx, brokerPool)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open single-notify worker channel")
		}
		job := singlenotify.New(gw, st, idClient, mailClient, smsClient, cacheDir, frontendRegistry, frontendForwarder, ids, cfg.Pod.IP, log.Logger)
		go worker.New(job, cfg.Worker.Retries, log.Logger).Run(ctx)
	}
	for i := 0; i < cfg.Worker.BatchNotifyCount; i++ {
		gw, err := broker.New(ctx, brokerPool)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open batch-notify worker channel")
		}
		job := batchnotify.New(gw, st, idClient, cfg.Pod.IP, log.Logger)
		go worker.New(job, cfg.Worker.Retries, log.Logger).Run(ctx)
	}
	log.Info().Int("single", cfg.Worker.SingleNotifyCount).Int("batch", cfg.Worker.BatchNotifyCount).Msg("worker pool started")

	// ── gRPC services ─────────────────────────────────────────────────────────
	frontendSrv := frontend.New(frontendRegistry, cacheDir, topologyGateway, st, idClient, frontendForwarder, cfg.Pod.IP)
	backstageSrv := backstage.New(backstageRegistry, cacheDir, topologyGateway, st, idClient, tenantMapClient, pods, backstageForwarder, ids, cfg.Pod.IP)

	auth := rpcmw.NewAuthenticator(cfg.Auth.KeycloakBaseURL, log.Logger)
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(rpcmw.UnaryRequestID(), auth.UnaryInterceptor()),
		grpc.ChainStreamInterceptor(rpcmw.StreamRequestID(), auth.StreamInterceptor()),
	)
	notifyv1.RegisterFrontendNotifyServiceServer(grpcServer, frontendSrv)
	notifyv1.RegisterBackstageNotifyServiceServer(grpcServer, backstageSrv)

	listener, err := net.Listen("tcp", cfg.Server.Host+":"+cfg.Server.Port)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open gRPC listener")
	}

	go func() {
		log.Info().Str("addr", listener.Addr().String()).Msg("gRPC server listening")
		if err := grpcServer.Serve(listener); err != nil {
			log.Info().Msg("gRPC server stopped")
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	<-ctx.Done()
	log.Info().Msg("shutting down gracefully...")

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(10 * time.Second):
		grpcServer.Stop()
	}

	log.Info().Msg("notify-core stopped")
}
