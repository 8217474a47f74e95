package container

import (
	"context"

	"github.com/akmmubashir/quran-backend/internal/config"
	infraCache "github.com/akmmubashir/quran-backend/internal/infrastructure/cache"
	"github.com/akmmubashir/quran-backend/internal/infrastructure/database"
	"github.com/akmmubashir/quran-backend/pkg/cache"
	"github.com/akmmubashir/quran-backend/pkg/logger"

	ayahcontent "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent"
	ayahcontentHandler "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent/handler"
	ayahcontentRepo "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent/repository"
	ayahcontentService "github.com/akmmubashir/quran-backend/internal/domains/ayahcontent/service"
	quran "github.com/akmmubashir/quran-backend/internal/domains/quran"
	quranHandler "github.com/akmmubashir/quran-backend/internal/domains/quran/handler"
	quranRepo "github.com/akmmubashir/quran-backend/internal/domains/quran/repository"
	quranService "github.com/akmmubashir/quran-backend/internal/domains/quran/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	AyahContentRepo    ayahcontent.Repository
	CanonicalReader    ayahcontent.CanonicalReader
	QuranRepo          quran.Repository
	AyahContentService ayahcontent.Service
	QuranService       quranService.Service

	AyahContentHandler *ayahcontentHandler.Handler
	QuranHandler       *quranHandler.Handler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.Config = cfg

	db := database.NewPostgresDB(&cfg.Database)
	if err := db.Connect(context.Background()); err != nil {
		return nil, err
	}
	c.DB = db

	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(context.Background()); err != nil {
		// The cache is an optimization; the service runs without it.
		logger.Warn("redis unreachable, continuing without cache", err)
		c.Cache = nil
	}

	c.AyahContentRepo = ayahcontentRepo.NewPostgresRepository(db.Pool)
	c.CanonicalReader = ayahcontentRepo.NewCanonicalReader(db.Pool)
	c.QuranRepo = quranRepo.NewPostgresRepository(db.Pool)

	c.AyahContentService = ayahcontentService.NewAyahContentService(
		c.AyahContentRepo, c.CanonicalReader, c.Cache, cfg.Redis.ResolveTTL,
	)
	c.QuranService = quranService.NewQuranService(c.QuranRepo, c.AyahContentService)

	c.AyahContentHandler = ayahcontentHandler.NewHandler(c.AyahContentService)
	c.QuranHandler = quranHandler.NewHandler(c.QuranService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
		"cache":       c.Cache != nil,
	})
	return c, nil
}

// Cleanup releases infrastructure resources. Safe to call once at shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
}
