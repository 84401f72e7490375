package api

import (
	"time"

	"farewatch/internal/common"
	"farewatch/internal/config"
	"farewatch/internal/db"
	"farewatch/internal/db/repositories"
	"farewatch/internal/metrics"
	"farewatch/internal/providers"
	"farewatch/internal/services"
)

type Repositories struct {
	Observations *repositories.ObservationRepository
	FetchRuns    *repositories.FetchRunRepo
}

type Services struct {
	Fetch        *services.FetchService
	Insights     *services.InsightService
	RouteSummary *services.RouteSummaryService
	Cache        *common.CacheService
	KeyRing      *common.KeyRing
	RedisQueue   *common.RedisQueueService
	URLSigner    *common.URLSignerService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services. The database
// connections must already be initialized.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Observations: repositories.NewObservationRepository(db.PgDB),
		FetchRuns:    repositories.NewFetchRunRepo(db.DB),
	}

	cacheSvc := common.NewCacheService(60, 600)
	keyRing := common.NewKeyRing(cfg.FareAPIKeys)
	fareSource := providers.NewFareAPIProvider(cfg.FareAPIBaseURL)
	matcher := services.NewCarrierMatcher(cfg.TrackedCarriers)

	redisClient := common.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword)
	redisQueue := common.NewRedisQueueService(redisClient)
	urlSigner := common.NewURLSignerService([]byte(cfg.DashboardSigningSecret), redisClient)

	fetchSvc := services.NewFetchService(
		repos.Observations,
		repos.FetchRuns,
		fareSource,
		keyRing,
		matcher,
		time.Duration(cfg.FetchPacingMs)*time.Millisecond,
		metricsReg,
	)

	svcs := &Services{
		Fetch:        fetchSvc,
		Insights:     services.NewInsightService(repos.Observations, metricsReg),
		RouteSummary: services.NewRouteSummaryService(repos.Observations, cacheSvc),
		Cache:        cacheSvc,
		KeyRing:      keyRing,
		RedisQueue:   redisQueue,
		URLSigner:    urlSigner,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
	}, nil
}
