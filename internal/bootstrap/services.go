package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/target/t1250-loader/config"
	"github.com/target/t1250-loader/internal/adapters/commsfs"
	"github.com/target/t1250-loader/internal/adapters/loadrunner"
	"github.com/target/t1250-loader/internal/adapters/t1250file"
	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/data"
	"github.com/target/t1250-loader/internal/observability/notify/pagerduty"
	"github.com/target/t1250-loader/internal/observability/notify/slack"
	"github.com/target/t1250-loader/internal/observability/statsd"
	"github.com/target/t1250-loader/internal/service"
	"github.com/target/t1250-loader/internal/service/alertnotifier"
)

// ServiceContainer holds the wired loader.
type ServiceContainer struct {
	Loader        *service.LoaderService
	Agents        *service.AgentLookupService
	Runner        *loadrunner.Runner
	BusinessUnits *config.BusinessUnits
	Observability ObservabilityContainer
}

// Close releases resources owned by the container.
func (c *ServiceContainer) Close() error {
	if c == nil {
		return nil
	}
	return c.Observability.MetricsSink.Close()
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink    *statsd.Client
	MetricsConfig  config.ObservabilityMetricsConfig
	AlertNotifier  *alertnotifier.Service
	NotifierConfig config.ObservabilityNotificationsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient // Optional
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Store  *data.Store
	Agents *data.AgentRepo
	Cache  *data.RedisCacheRepo
}

func buildRepositories(db *sql.DB, client redis.UniversalClient, cfg config.RedisConfig) *serviceRepositories {
	repos := &serviceRepositories{
		Store:  data.NewStore(db),
		Agents: data.NewAgentRepo(db),
	}
	if client != nil {
		repos.Cache = data.NewRedisCacheRepo(data.RedisCacheRepoOptions{Client: client, Prefix: cfg.KeyPrefix})
	}
	return repos
}

// NewServices wires the loader from configuration and open connections.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("service deps with config are required")
	}
	if deps.DB == nil {
		return nil, errors.New("database is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	units, err := config.LoadBusinessUnits(cfg.Loader.BusinessUnitsFile)
	if err != nil {
		return nil, err
	}
	encoding, err := t1250file.ParseEncoding(cfg.Loader.FileEncoding)
	if err != nil {
		return nil, err
	}

	repos := buildRepositories(deps.DB, deps.RedisClient, cfg.Redis)
	agents := newAgentLookupService(repos, cfg.Loader, logger)
	clock := data.RealTimeProvider{}

	comms, err := commsfs.NewWriter(commsfs.WriterOptions{
		Dir:    cfg.Loader.CommsDir,
		Logger: logger.With("component", "commsfs"),
	})
	if err != nil {
		return nil, err
	}

	loader, err := service.NewLoaderService(service.LoaderServiceOptions{
		Store:     repos.Store,
		Comms:     comms,
		Callbacks: service.NewCallbackRegistry(service.CallbackRegistryOptions{Agents: agents, Clock: clock}),
		Clock:     clock,
		Logger:    logger.With("component", "loader"),
	})
	if err != nil {
		return nil, fmt.Errorf("build loader: %w", err)
	}

	obs := buildObservability(logger, cfg.Observability)

	runner, err := loadrunner.NewRunner(loadrunner.RunnerOptions{
		Loader:        loader,
		BusinessUnits: units,
		Notifier:      obs.AlertNotifier,
		Metrics:       obs.MetricsSink,
		Encoding:      encoding,
		Logger:        logger.With("component", "load_runner"),
	})
	if err != nil {
		return nil, fmt.Errorf("build runner: %w", err)
	}

	return &ServiceContainer{
		Loader:        loader,
		Agents:        agents,
		Runner:        runner,
		BusinessUnits: units,
		Observability: obs,
	}, nil
}

func newAgentLookupService(repos *serviceRepositories, cfg config.LoaderConfig, logger *slog.Logger) *service.AgentLookupService {
	var cache *core.AgentCacheService
	if repos.Cache != nil && cfg.AgentCacheTTL > 0 {
		cache = core.NewAgentCacheService(core.AgentCacheServiceOptions{
			Cache:  repos.Cache,
			Config: core.AgentCacheConfig{TTL: cfg.AgentCacheTTL},
		})
	}
	return service.NewAgentLookupService(service.AgentLookupServiceOptions{
		Agents: repos.Agents,
		Cache:  cache,
		Logger: logger.With("component", "agent_lookup"),
	})
}

// buildObservability configures metrics and notification adapters. Adapter
// failures are logged and the loader runs without them.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		tags := map[string]string{}
		for k, v := range cfg.Metrics.Tags {
			tags[k] = v
		}
		if host, err := os.Hostname(); err == nil {
			tags["host"] = host
		}
		client, err := statsd.NewClient(statsd.Config{
			Enabled:    true,
			Address:    cfg.Metrics.StatsdAddress,
			Prefix:     cfg.Metrics.Prefix,
			GlobalTags: tags,
			Logger:     obsLogger.With("component", "statsd"),
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:    metricsSink,
		MetricsConfig:  cfg.Metrics,
		AlertNotifier:  buildAlertNotifier(obsLogger, cfg.Notifications),
		NotifierConfig: cfg.Notifications,
	}
}

func buildAlertNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig) *alertnotifier.Service {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = slog.Default()
	}
	notifierLogger := baseLogger.With("component", "alert_notifier")

	if !cfg.Enabled {
		return alertnotifier.NewService(alertnotifier.Options{Logger: notifierLogger})
	}

	sinks := make([]alertnotifier.SinkRegistration, 0, 2)

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL: cfg.Slack.WebhookURL,
			Channel:    cfg.Slack.Channel,
			Username:   cfg.Slack.Username,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			baseLogger.Error("failed to initialise slack notifier", "error", err)
		} else {
			sinks = append(sinks, alertnotifier.SinkRegistration{Name: "slack", Sink: client})
		}
	}

	if cfg.PagerDuty.Enabled {
		client, err := pagerduty.NewClient(pagerduty.Config{
			RoutingKey: cfg.PagerDuty.RoutingKey,
			Source:     cfg.PagerDuty.Source,
			Component:  cfg.PagerDuty.Component,
			Endpoint:   cfg.PagerDuty.Endpoint,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			baseLogger.Error("failed to initialise pagerduty notifier", "error", err)
		} else {
			sinks = append(sinks, alertnotifier.SinkRegistration{Name: "pagerduty", Sink: client})
		}
	}

	var metadata map[string]string
	if host, err := os.Hostname(); err == nil {
		metadata = map[string]string{"host": host}
	}

	return alertnotifier.NewService(alertnotifier.Options{
		Logger:   notifierLogger,
		Sinks:    sinks,
		Metadata: metadata,
		Policy:   alertnotifier.ParsePolicy(cfg.NotifyOn),
	})
}
