//	@title			Invitation Code Backend
//	@version		1.0.0
//	@description	single-use invitation code distribution service

//	@host		localhost:8000
//	@BasePath	/api/v1

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"invitation_backend/apis"
	"invitation_backend/config"
	"invitation_backend/middlewares"
	"invitation_backend/models"
	"invitation_backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
)

func main() {
	config.InitConfig()
	utils.InitLogger()
	models.InitDB()
	middlewares.InitClaimLimiter()

	app := fiber.New(fiber.Config{
		AppName:      config.AppName,
		ErrorHandler: utils.MyErrorHandler,
	})
	middlewares.RegisterMiddlewares(app)
	apis.RegisterRoutes(app)

	startTasks()

	go func() {
		err := app.Listen("0.0.0.0:8000")
		if err != nil {
			log.Println(err)
		}
	}()

	interrupt := make(chan os.Signal, 1)

	// wait for CTRL-C interrupt
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-interrupt

	// close app
	err := app.Shutdown()
	if err != nil {
		log.Println(err)
	}

	_ = utils.Logger.Sync()
}

func startTasks() {
	c := cron.New()
	// nightly self-heal of the denormalized offer counters
	_, err := c.AddFunc("0 4 * * *", models.AuditAllOfferCounters)
	if err != nil {
		panic(err)
	}
	go c.Start()
}
