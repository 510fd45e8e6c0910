package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	httpapi "seawatch/internal/http"
	"seawatch/internal/movement/aggregator"
	"seawatch/internal/movement/blacklist"
	"seawatch/internal/movement/clients/portcalls"
	"seawatch/internal/movement/clients/positions"
	"seawatch/internal/movement/countries"
	"seawatch/internal/movement/geo"
	movementmetrics "seawatch/internal/movement/metrics"
	"seawatch/internal/movement/orchestrator"
	"seawatch/internal/movement/ports"
	reportstore "seawatch/internal/movement/report/store"
	"seawatch/internal/movement/severity"
	"seawatch/internal/movement/warmup"
	"seawatch/internal/platform/config"
	"seawatch/internal/platform/httpserver"
	"seawatch/internal/platform/kafka"
	"seawatch/internal/platform/kafka/consumer"
	"seawatch/internal/platform/kafka/producer"
	"seawatch/internal/platform/logger"
	"seawatch/internal/platform/postgres"
	"seawatch/internal/platform/redis"
	"seawatch/internal/screening"
	"seawatch/internal/screening/lock"
	screeningmetrics "seawatch/internal/screening/metrics"
	checkstore "seawatch/internal/screening/store"
)

// main wires dependencies and runs the screening consumer, the warm-up
// worker and the ops HTTP server until SIGINT/SIGTERM.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("seawatch stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("seawatch stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()
	applied, err := postgres.Migrate(ctx, db)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		log.Info("applied migrations", "migrations", applied)
	}

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	kafkaClient, err := kafka.NewClient(cfg.Kafka)
	if err != nil {
		return err
	}
	defer kafkaClient.Close()
	if err := kafka.EnsureTopics(ctx, kafkaClient, cfg.Kafka, cfg.Kafka.ScreeningTopic, cfg.Kafka.WarmupTopic); err != nil {
		return err
	}

	movementMetrics := movementmetrics.New()
	screeningMetrics := screeningmetrics.New()

	table, err := countries.Load()
	if err != nil {
		return err
	}
	portResolver := geo.NewCachedResolver(
		geo.NewPostgresResolver(db, cfg.Movement.PortRadiusKm),
		rdb.Client,
		geo.WithCacheTTL(cfg.Movement.PortCacheTTL),
		geo.WithCacheLogger(log),
	)
	blacklistLookup := blacklist.NewMemo(blacklist.NewPostgresStore(db), cfg.Movement.BlacklistMemoTTL)
	reports := reportstore.NewPostgres(db)

	deps := orchestrator.Dependencies{
		Positions: positions.New(cfg.Positions, positions.WithLogger(log)),
		PortCalls: portcalls.New(cfg.PortCalls, portcalls.WithLogger(log)),
		Ports:     portResolver,
		Blacklist: blacklistLookup,
		Severity: severity.NewResolver(portResolver, blacklistLookup,
			severity.WithCountries(table),
			severity.WithLogger(log),
		),
		Reports: reports,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		blacklistLookup.PurgeEvery(gctx, cfg.Movement.BlacklistMemoTTL)
		return nil
	})

	strategy := orchestrator.ResolveStrategy(orchestrator.FlagsFromConfig(cfg.Aggregator))
	if cfg.Aggregator.Enabled {
		agg := aggregator.New(cfg.Aggregator, rdb.Client,
			aggregator.WithLogger(log),
			aggregator.WithStateChange(movementMetrics.IncrementBreakerTransition),
		)
		deps.Aggregator = agg
		if strategy == orchestrator.StrategyExternalAsyncWarmup {
			queue, err := startWarmup(gctx, g, cfg, agg, kafkaClient, movementMetrics, log)
			if err != nil {
				return err
			}
			deps.Warmup = queue
		}
	}

	orch, err := orchestrator.New(deps, orchestrator.SettingsFromConfig(cfg),
		orchestrator.WithStrategy(strategy),
		orchestrator.WithMetrics(movementMetrics),
		orchestrator.WithLogger(log),
	)
	if err != nil {
		return err
	}
	log.Info("movement orchestrator ready", "strategy", strategy.String())

	runner := screening.NewRunner(orch, checkstore.NewPostgres(db), lock.NewRedis(rdb.Client),
		screening.LimitsFromConfig(cfg.Runner),
		screening.WithMetrics(screeningMetrics),
		screening.WithLogger(log),
	)
	taskClient, err := kafka.NewGroupClient(cfg.Kafka, cfg.Kafka.ScreeningGroup, cfg.Kafka.ScreeningTopic)
	if err != nil {
		return err
	}
	defer taskClient.Close()
	tasks := consumer.New(taskClient, screening.NewTaskHandler(runner, screeningMetrics, log), log)
	g.Go(func() error {
		return tasks.Run(gctx)
	})

	router := httpapi.NewRouter(httpapi.Options{
		Checks: map[string]httpapi.CheckFunc{
			"postgres": db.PingContext,
			"redis":    rdb.Health,
			"kafka": func(ctx context.Context) error {
				return kafka.Health(ctx, kafkaClient)
			},
		},
		Reports:           reports,
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
		Logger:            log,
	})
	srv := httpserver.New(cfg.Server.Addr, router)
	g.Go(func() error {
		log.Info("ops server listening", "addr", cfg.Server.Addr)
		return httpserver.Serve(gctx, srv, cfg.Server.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// startWarmup starts the warm-up worker on the configured transport and
// returns the queue runs enqueue into.
func startWarmup(
	ctx context.Context,
	g *errgroup.Group,
	cfg *config.Config,
	agg *aggregator.Cache,
	kafkaClient *kgo.Client,
	m *movementmetrics.Metrics,
	log *slog.Logger,
) (ports.WarmupQueue, error) {
	worker := warmup.NewWorker(agg, cfg.Warmup.Concurrency,
		warmup.WithMetrics(m),
		warmup.WithLogger(log),
	)

	switch cfg.Warmup.Transport {
	case warmup.TransportChannel:
		queue := warmup.NewChannelQueue(cfg.Warmup.QueueSize, m, log)
		g.Go(func() error {
			return worker.Run(ctx, queue.Requests())
		})
		return queue, nil
	default:
		warmClient, err := kafka.NewGroupClient(cfg.Kafka, cfg.Kafka.WarmupGroup, cfg.Kafka.WarmupTopic)
		if err != nil {
			return nil, err
		}
		prod := producer.New(kafkaClient, log)
		g.Go(func() error {
			defer warmClient.Close()
			defer worker.Wait()
			err := consumer.New(warmClient, worker, log).Run(ctx)
			if flushErr := prod.Flush(context.WithoutCancel(ctx)); flushErr != nil {
				log.Warn("failed to flush warm-up producer", "error", flushErr)
			}
			return err
		})
		return warmup.NewKafkaQueue(prod, cfg.Kafka.WarmupTopic, m, log), nil
	}
}
