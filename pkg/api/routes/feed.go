package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/gtfs-extract/pkg/feed"
)

func FeedRouter(router fiber.Router, gtfsFeed *feed.Feed) {
	router.Get("/", func(c *fiber.Ctx) error {
		groups := []string{"basic"}
		if c.QueryBool("detail") {
			groups = append(groups, "detailed")
		}

		summaryReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: groups,
		}, gtfsFeed.Summary())
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sheriff could not reduce feed summary",
			})
		}

		return c.JSON(summaryReduced)
	})
}
