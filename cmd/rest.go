package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pokemcp/pokemcp/pkg/utils"
	"github.com/pokemcp/pokemcp/ui/rest"
	"github.com/pokemcp/pokemcp/ui/rest/middleware"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the Pokemon API over http",
	Long:  `Start the REST server exposing Pokemon lookups, comparisons, evolution chains, sprites and cache administration.`,
	Run:   restServer,
}

func init() {
	restCmd.Flags().StringP("port", "p", "", "port for the REST server | example: --port=3000")
	restCmd.Flags().StringP("basic-auth", "b", "", "basic auth for the API (format: user:pass,user2:pass2)")
	_ = viper.BindPFlag("app_port", restCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("app_basic_auth", restCmd.Flags().Lookup("basic-auth"))

	rootCmd.AddCommand(restCmd)
}

func restServer(_ *cobra.Command, _ []string) {
	app, err := loadApp()
	if err != nil {
		logrus.Fatalf("[REST] Failed to initialize: %v", err)
	}
	defer app.Close()

	cfg := app.Config
	if v := viper.GetString("app_port"); v != "" {
		cfg.Rest.Port = v
	}
	if v := viper.GetString("app_basic_auth"); v != "" {
		cfg.Rest.BasicAuth = strings.Split(v, ",")
	}

	fiberConfig := fiber.Config{
		EnableTrustedProxyCheck: true,
		BodyLimit:               cfg.Rest.BodyLimit,
		Network:                 "tcp",
		AppName:                 "MCP Pokemon REST API",
		DisableStartupMessage:   false,
		ServerHeader:            "Hidden",
	}
	if len(cfg.Rest.TrustedProxies) > 0 {
		fiberConfig.TrustedProxies = cfg.Rest.TrustedProxies
		fiberConfig.ProxyHeader = fiber.HeaderXForwardedHost
	}

	srv := fiber.New(fiberConfig)

	srv.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	srv.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Rest.CorsAllowedOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	srv.Use(middleware.Recovery())
	srv.Use(helmet.New())
	srv.Use(limiter.New(limiter.Config{
		Max:        cfg.Rest.RateLimitMax,
		Expiration: cfg.Rest.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))
	if cfg.App.Debug {
		srv.Use(logger.New())
	}

	// Health stays public so probes work without credentials.
	rest.InitRestHealth(srv, app.HealthUsecase)

	apiGroup := srv.Group("/api")

	if len(cfg.Rest.BasicAuth) > 0 {
		account := make(map[string]string)
		for _, credential := range cfg.Rest.BasicAuth {
			parts := strings.Split(credential, ":")
			if len(parts) != 2 {
				logrus.Fatalln("Basic auth is not valid, please use the format <user>:<secret>")
			}
			account[parts[0]] = parts[1]
		}

		apiGroup.Use(basicauth.New(basicauth.Config{
			Users: account,
			Next: func(c *fiber.Ctx) bool {
				// Allow CORS preflight without credentials.
				return c.Method() == fiber.MethodOptions
			},
		}))
	} else {
		logrus.Warn("[REST] APP_BASIC_AUTH not set, serving the API without authentication")
	}

	rest.InitRestPokemon(apiGroup, app.PokemonUsecase)
	rest.InitRestCache(apiGroup, app.CacheUsecase)

	apiGroup.All("/*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(utils.ResponseData{
			Status:  404,
			Code:    "NOT_FOUND",
			Message: "API endpoint not found: " + c.Path(),
		})
	})

	// Graceful shutdown handler
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Reception of termination signal, shutting down gracefully...")
		if err := srv.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
	}()

	if err := srv.Listen(":" + cfg.Rest.Port); err != nil {
		logrus.Fatalln("Failed to start: ", err.Error())
	}
}
