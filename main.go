package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kongdle/go-server/assets"
	"github.com/kongdle/go-server/internal/catalog"
	"github.com/kongdle/go-server/internal/httpserver"
	"github.com/kongdle/go-server/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	entries, err := loadCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load location catalog")
	}
	cat := catalog.Filter(entries)
	if len(cat) == 0 {
		log.Fatal().Msg("location catalog filtered to zero entries")
	}
	log.Info().Int("entries", len(cat)).Msg("catalog loaded")

	db, err := openDB(getEnv("DB_PATH", "./data/kongdle.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	srv := httpserver.New(httpserver.Config{
		Catalog: cat,
		KV:      store.NewSQLite(db),
		DB:      db,
	})
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting kongdle go-server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadCatalog reads CATALOG_FILE when set, otherwise the embedded data.
func loadCatalog() ([]catalog.Entry, error) {
	if p := os.Getenv("CATALOG_FILE"); p != "" {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, &catalog.LoadError{Source: p, Err: err}
		}
		return catalog.Parse(p, raw)
	}
	return assets.Locations()
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
