package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/gtfs-extract/pkg/api/routes"
	"github.com/travigo/gtfs-extract/pkg/extractor"
)

// NewApp serves extractions of one loaded feed. resultCache may be nil.
func NewApp(feedExtractor *extractor.Extractor, resultCache routes.ResultCache) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	webApp.Get("version", routes.APIVersion)

	routes.FeedRouter(webApp.Group("/feed"), feedExtractor.Feed)
	routes.ExtractRouter(webApp.Group("/extract"), feedExtractor, resultCache)

	return webApp
}

func SetupServer(listen string, feedExtractor *extractor.Extractor, resultCache routes.ResultCache) error {
	return NewApp(feedExtractor, resultCache).Listen(listen)
}
