package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"wayfinder/internal/adapters/cover"
	server "wayfinder/internal/adapters/http_server"
	"wayfinder/internal/adapters/nominatim"
	"wayfinder/internal/adapters/observability"
	"wayfinder/internal/adapters/overpass"
	redisad "wayfinder/internal/adapters/redis"
	"wayfinder/internal/app"
	"wayfinder/internal/shared"
	mysqlrepo "wayfinder/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	sessions := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	planner := app.NewPlannerService(
		nominatim.New(cfg.NominatimBase, cfg.GeocodeRPS),
		overpass.New(cfg.OverpassBase),
	)
	trips := app.NewTripService(repo, cover.New(cfg.CoverBase))
	accounts := app.NewAccountService(repo, sessions, cfg.SessionTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Planner:   planner,
		Trips:     trips,
		Accounts:  accounts,
		CookieTTL: cfg.SessionTTL,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
