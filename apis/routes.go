package apis

import (
	"os"
	"path/filepath"

	"invitation_backend/config"
	"invitation_backend/middlewares"
	"invitation_backend/utils"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App) {
	app.Get("/", Index)
	app.Get("/health", Health)

	routes := app.Group(config.Config.ApiPrefix)
	offers := routes.Group("/offers")
	offers.Get("/:name/info", GetOfferInfo)
	offers.Post("/:name/claim", middlewares.ClaimRateLimit, ClaimCode)
	offers.Get("/:name/stats", GetOfferStats)

	registerFrontend(app)
}

// registerFrontend serves the single-page front end when it is deployed
// next to the binary: static assets under /static, and every offer page
// rewritten to the SPA entry document.
func registerFrontend(app *fiber.App) {
	dir := config.Config.FrontendDir
	if dir == "" {
		return
	}

	app.Static("/static", dir)

	index := filepath.Join(dir, "index.html")
	app.Get("/offer/:name", func(c *fiber.Ctx) error {
		if _, err := os.Stat(index); err != nil {
			return utils.NotFound("front end is not deployed")
		}
		return c.SendFile(index)
	})
}
