// README: Wires configuration into services; shared by the API server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"skyfare/internal/config"
	"skyfare/internal/feeds"
	"skyfare/internal/infra"
	"skyfare/internal/maps"
	"skyfare/internal/modules/aircraft"
	"skyfare/internal/modules/demand"
	"skyfare/internal/modules/flight"
	"skyfare/internal/modules/location"
	"skyfare/internal/modules/pricing"
	"skyfare/internal/modules/ticket"
	"skyfare/internal/settings"
)

type App struct {
	Settings settings.Source
	Location *location.Service
	Selector *aircraft.Selector
	Flights  *flight.Service
	Demand   *demand.Service
	Pricing  *pricing.Service
	Tickets  *ticket.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// Build connects the configured backends and assembles every service.
// The caller must Close the returned App.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	if cfg.DB.DSN != "" && (cfg.Store == config.StorePostgres || cfg.Pricing.SettingsSource == config.SettingsDB) {
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		a.db = db
	}
	if cfg.Redis.Addr != "" {
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, err
		}
		a.redis = client
	}

	a.Settings = settingsSource(cfg, a.db)

	if cfg.Maps.APIKey == "" {
		return nil, errors.New("maps.api_key is required to geocode countries")
	}
	geocoder, err := maps.NewGeocodeService(cfg.Maps.APIKey)
	if err != nil {
		return nil, err
	}

	var coords *location.Store
	if a.redis != nil {
		coords = location.NewStore(a.redis)
	}
	a.Location = location.NewService(geocoder, coords)
	a.Selector = aircraft.NewSelector(a.Location)

	var repo flight.Repository = flight.NewMemoryStore()
	var issued ticket.Store = ticket.NewMemoryStore()
	if cfg.Store == config.StorePostgres {
		repo = flight.NewPostgresStore(a.db)
		issued = ticket.NewPostgresStore(a.db)
	}
	a.Flights = flight.NewService(a.Selector, repo, a.Settings, flight.DefaultRegistry())
	a.Tickets = ticket.NewService(issued, a.Flights)

	var holidays demand.HolidayProvider
	if cfg.Feeds.HolidaysAPIKey != "" {
		holidays = feeds.NewHolidayClient(cfg.Feeds.HolidaysURL, cfg.Feeds.HolidaysAPIKey, cfg.Feeds.Timeout)
	} else {
		slog.Warn("feeds.holidays_api_key not set; holiday signal disabled")
	}
	var tourism demand.TourismProvider = feeds.NewTourismClient(cfg.Feeds.TourismURL, geocoder, cfg.Feeds.Timeout)

	if a.redis != nil {
		if holidays != nil {
			holidays = demand.NewCachedFeeds(a.redis, holidays, nil, cfg.Feeds.CacheTTL)
		}
		tourism = demand.NewCachedFeeds(a.redis, nil, tourism, cfg.Feeds.CacheTTL)
	}
	a.Demand = demand.NewService(holidays, tourism)
	a.Pricing = pricing.NewService(a.Settings, a.Demand)

	ok = true
	return a, nil
}

func settingsSource(cfg *config.Config, db *pgxpool.Pool) settings.Source {
	switch cfg.Pricing.SettingsSource {
	case config.SettingsDB:
		return settings.NewStore(db)
	case config.SettingsDefaults:
		return settings.Static(settings.Defaults())
	default:
		return settings.FileSource{Path: cfg.Pricing.SettingsPath}
	}
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Warn("close redis", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}

// Describe is a one-line summary of the wiring, for startup logs.
func (a *App) Describe() string {
	return fmt.Sprintf("postgres=%t redis=%t", a.db != nil, a.redis != nil)
}
