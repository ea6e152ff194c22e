package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordchain/go-server/internal/catalog"
	"github.com/wordchain/go-server/internal/httpserver"
	"github.com/wordchain/go-server/internal/progress"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := catalog.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load puzzle catalog")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/wordchain.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	srv := httpserver.New(catalog.Current(), progress.NewSQLiteStore(db), db)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("catalogDays", len(catalog.Current().Sets)).Msg("starting wordchain server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
