package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/store"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/gtfs-extract/pkg/extracterrors"
	"github.com/travigo/gtfs-extract/pkg/extractor"
	"github.com/travigo/gtfs-extract/pkg/util"
)

// ResultCache stores serialized documents. It is satisfied by *cache.Cache[string].
type ResultCache interface {
	Get(ctx context.Context, key any) (string, error)
	Set(ctx context.Context, key any, object string, options ...store.Option) error
}

const CacheHeader = "X-Cache"

type extractHandler struct {
	extractor   *extractor.Extractor
	resultCache ResultCache
	now         func() time.Time
}

func ExtractRouter(router fiber.Router, feedExtractor *extractor.Extractor, resultCache ResultCache) {
	handler := &extractHandler{
		extractor:   feedExtractor,
		resultCache: resultCache,
		now:         time.Now,
	}

	router.Get("/", handler.extract)
}

func (h *extractHandler) extract(c *fiber.Ctx) error {
	start := c.Query("start", h.now().Format(util.DayLayout))
	filter := c.Query("filter")

	startDate, endDate, err := util.ParseWindow(start, c.Query("end"), c.Query("length"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	cacheKey := fmt.Sprintf("gtfs-extract/%s/%s/%s/%s", h.extractor.Feed.Source, startDate.Format(util.DayLayout), endDate.Format(util.DayLayout), filter)

	if h.resultCache != nil {
		if cached, err := h.resultCache.Get(c.Context(), cacheKey); err == nil {
			c.Set(CacheHeader, "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(cached)
		}
	}

	feedExtractor := h.extractor
	if filter != "" {
		feedExtractor, err = h.extractor.WithRouteFilter(filter)
		if err != nil {
			return sendError(c, err)
		}
	}

	document, err := feedExtractor.Extract(startDate, endDate)
	if err != nil {
		return sendError(c, err)
	}

	encoded, err := json.Marshal(document)
	if err != nil {
		return sendError(c, err)
	}

	if h.resultCache != nil {
		if err := h.resultCache.Set(c.Context(), cacheKey, string(encoded)); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache extraction")
		}
		c.Set(CacheHeader, "MISS")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(encoded)
}

func sendError(c *fiber.Ctx, err error) error {
	response := fiber.Map{
		"error": err.Error(),
	}

	switch {
	case errors.Is(err, extractor.ErrInvalidWindow), errors.Is(err, extractor.ErrRouteFilter):
		c.SendStatus(fiber.StatusBadRequest)
	case extracterrors.KindOf(err) != "":
		c.SendStatus(fiber.StatusUnprocessableEntity)
		response["kind"] = extracterrors.KindOf(err)
	default:
		c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(response)
}
