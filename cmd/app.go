package cmd

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pokemcp/pokemcp/core/config"
	domainCache "github.com/pokemcp/pokemcp/domains/cache"
	domainHealth "github.com/pokemcp/pokemcp/domains/health"
	domainPokemon "github.com/pokemcp/pokemcp/domains/pokemon"
	infraCache "github.com/pokemcp/pokemcp/infrastructure/cache"
	"github.com/pokemcp/pokemcp/infrastructure/pokeapi"
	infraValkey "github.com/pokemcp/pokemcp/infrastructure/valkey"
	"github.com/pokemcp/pokemcp/pkg/cache"
	"github.com/pokemcp/pokemcp/pkg/utils"
	"github.com/pokemcp/pokemcp/usecase"
)

// App wires configuration, infrastructure and usecases together. Each
// command builds one instance and passes it down explicitly; there are no
// package-level singletons to reach for.
type App struct {
	Config    *config.Config
	ServerID  string
	StartedAt time.Time

	valkeyClient *infraValkey.Client
	provider     cache.Provider

	PokemonUsecase domainPokemon.IPokemonUsecase
	CacheUsecase   domainCache.ICacheUsecase
	HealthUsecase  domainHealth.IHealthUsecase
}

// BuildApp assembles the full dependency graph from the loaded config.
// The caller owns the returned App and must Close it on shutdown.
func BuildApp(cfg *config.Config) (*App, error) {
	app := &App{
		Config:    cfg,
		ServerID:  utils.GetPersistentServerID(cfg.App.ServerID, "storages"),
		StartedAt: time.Now(),
	}

	backend := cfg.Cache.Backend
	if cfg.Cache.Enabled {
		var vk *infraValkey.Client
		if cfg.Cache.Backend == "valkey" {
			var err error
			vk, err = infraValkey.NewClient(infraValkey.Config{
				Address:        cfg.Cache.ValkeyAddress,
				Password:       cfg.Cache.ValkeyPassword,
				DB:             cfg.Cache.ValkeyDB,
				KeyPrefix:      cfg.Cache.ValkeyKeyPrefix,
				ConnectTimeout: cfg.Cache.ValkeyConnectTimeout,
			})
			if err != nil {
				return nil, err
			}
			app.valkeyClient = vk
		}

		provider, err := infraCache.NewProvider(cfg.Cache.Backend, vk, cfg.Cache.CleanupInterval)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.provider = provider
		logrus.Infof("[APP] Cache backend %s ready (ttl: %v)", cfg.Cache.Backend, cfg.Cache.TTL)
	} else {
		backend = "disabled"
		logrus.Warn("[APP] Cache disabled, every lookup will hit PokeAPI")
	}

	client := pokeapi.NewClient(pokeapi.Config{
		BaseURL:          cfg.PokeAPI.BaseURL,
		Timeout:          cfg.PokeAPI.Timeout,
		UserAgent:        cfg.PokeAPI.UserAgent,
		MaxResponseBytes: cfg.PokeAPI.MaxResponseBytes,

		BreakerMaxRequests:      cfg.PokeAPI.BreakerMaxRequests,
		BreakerInterval:         cfg.PokeAPI.BreakerInterval,
		BreakerTimeout:          cfg.PokeAPI.BreakerTimeout,
		BreakerMinRequests:      cfg.PokeAPI.BreakerMinRequests,
		BreakerFailureThreshold: cfg.PokeAPI.BreakerFailureThreshold,
	})

	var repo domainPokemon.Repository = pokeapi.NewRepository(client)
	if app.provider != nil {
		repo = pokeapi.NewCachedRepository(repo, app.provider, cfg.Cache.TTL)
	}

	app.PokemonUsecase = usecase.NewPokemonService(repo)
	app.CacheUsecase = usecase.NewCacheService(app.provider, backend)
	app.HealthUsecase = usecase.NewHealthService(cfg.App.Name, cfg.App.Version, app.ServerID, app.StartedAt, app.provider, backend)

	logrus.Infof("[APP] %s %s ready (server id: %s)", cfg.App.Name, cfg.App.Version, app.ServerID)
	return app, nil
}

// Close releases the infrastructure owned by the app.
func (a *App) Close() {
	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			logrus.Errorf("[APP] Error closing cache provider: %v", err)
		}
		a.provider = nil
	}
	if a.valkeyClient != nil {
		a.valkeyClient.Close()
		a.valkeyClient = nil
	}
	logrus.Info("[APP] Application stopped cleanly.")
}
