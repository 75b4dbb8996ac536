package server

import (
	"errors"
	"fmt"
	"time"

	"emoshown/config"
	"emoshown/internal/app"
	"emoshown/internal/handlers"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogs "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/helmet/v2"
)

const bodyLimit = 1 * 1024 * 1024

type AppServer struct {
	FiberApp *fiber.App
	log      logger.Logger
}

func New(app *app.App) (*AppServer, error) {
	log := logger.New("server").Function("New")
	log.Info("Initializing server", "environment", app.Config.Environment)

	server := fiber.New(fiberConfig(app.Config, log))

	server.Use(recover.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     app.Config.CorsAllowOrigins,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Trace-ID",
		AllowCredentials: true,
		MaxAge:           300,
		ExposeHeaders:    "X-Trace-ID",
	}))
	server.Use(fiberLogs.New())
	server.Use(compress.New())
	server.Use(helmet.New(securityHeaders()))

	if err := handlers.Router(server, app); err != nil {
		return &AppServer{}, log.Err("failed to initialize handlers", err)
	}

	return &AppServer{
		FiberApp: server,
		log:      log,
	}, nil
}

func fiberConfig(cfg config.Config, log logger.Logger) fiber.Config {
	fiberCfg := fiber.Config{
		ServerHeader:             fmt.Sprintf("EmoShown/%s", cfg.GeneralVersion),
		AppName:                  "emoshown_server",
		BodyLimit:                bodyLimit,
		EnableSplittingOnParsers: true,
		EnableTrustedProxyCheck:  true,
		ReadTimeout:              15 * time.Second,
		// sentiment calls are bounded by SENTIMENT_TIMEOUT_SECONDS
		WriteTimeout:          cfg.SentimentTimeout() + 15*time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          jsonErrorHandler(log),
	}

	if cfg.Environment == "development" {
		log.Info("Enabling development mode")
		fiberCfg.DisableStartupMessage = false
		fiberCfg.EnablePrintRoutes = true
	}

	return fiberCfg
}

// jsonErrorHandler keeps fiber's own errors (404 route, body too large, panics)
// in the same {"error": ...} shape the handlers use.
func jsonErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		} else {
			log.Er("unhandled request error", err, "path", c.Path())
		}

		return c.Status(status).JSON(fiber.Map{
			"error": message,
		})
	}
}

func securityHeaders() helmet.Config {
	return helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		ReferrerPolicy:            "no-referrer",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
		OriginAgentCluster:        "?1",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
		// JSON only
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
	}
}

func (s *AppServer) Listen(port int) error {
	log := s.log.Function("Listen")

	if port == 0 {
		return log.Error("invalid port", "port", port)
	}

	log.Info("Starting server", "port", port)
	return s.FiberApp.Listen(fmt.Sprintf(":%d", port))
}
