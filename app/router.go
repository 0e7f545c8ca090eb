package app

import (
	"context"
	"fmt"
	"time"

	"bitwise74/expense-api/app/auth"
	"bitwise74/expense-api/app/budget"
	"bitwise74/expense-api/app/category"
	"bitwise74/expense-api/app/expense"
	"bitwise74/expense-api/app/forecast"
	"bitwise74/expense-api/app/ocr"
	"bitwise74/expense-api/app/root"
	"bitwise74/expense-api/aws"
	"bitwise74/expense-api/config"
	"bitwise74/expense-api/db"
	"bitwise74/expense-api/internal"
	"bitwise74/expense-api/internal/ai"
	cat "bitwise74/expense-api/internal/category"
	"bitwise74/expense-api/internal/service"
	"bitwise74/expense-api/internal/store"
	"bitwise74/expense-api/pkg/middleware"
	"bitwise74/expense-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const jsonBodyLimit = 1 << 20

// EngineConfig holds the settings of the HTTP layer itself
type EngineConfig struct {
	CORSOrigins []string
	RateLimit   int
	Turnstile   middleware.TurnstileConfig
}

// NewRouter builds every dependency from the loaded config and returns the
// engine serving them. Background jobs stop when ctx is done.
func NewRouter(ctx context.Context) (*gin.Engine, error) {
	conn, err := db.New(viper.GetString("db.driver"), viper.GetString("db.dsn"), viper.GetBool("db.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	var model ai.Model = ai.Unconfigured{}
	if key := viper.GetString("ai.api_key"); key != "" {
		g, err := ai.NewGemini(ctx, key, viper.GetString("ai.model"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize AI client, %w", err)
		}

		model = g
	}

	d := &internal.Deps{
		DB:         conn,
		Argon:      security.New(),
		Users:      store.NewUserStore(conn),
		Expenses:   store.NewExpenseStore(conn),
		Categories: store.NewCategoryStore(conn, cat.Defaults),
		Scanner:    ai.NewReceiptScanner(model, cat.Receipt),
		Forecaster: ai.NewForecaster(model, viper.GetInt("ai.min_history"), viper.GetInt("ai.max_history")),
		Mailer:     service.LogMailer{},
		Settings: internal.Settings{
			JWTSecret:      viper.GetString("jwt.secret"),
			TokenTTL:       time.Duration(viper.GetInt("jwt.ttl_hours")) * time.Hour,
			ResetTokenTTL:  time.Duration(viper.GetInt("auth.reset_token_ttl_minutes")) * time.Minute,
			FrontendURL:    viper.GetString("host.frontend_url"),
			MaxUploadSize:  config.MaxUploadSize(),
			MaxUploadFiles: viper.GetInt("upload.max_files"),
		},
	}

	if viper.GetBool("mail.enabled") {
		d.Mailer = service.NewSMTPMailer(service.SMTPConfig{
			Host:     viper.GetString("mail.host"),
			Port:     viper.GetInt("mail.port"),
			Sender:   viper.GetString("mail.sender"),
			Password: viper.GetString("mail.password"),
		})
	}

	if viper.GetBool("receipts.archive.enabled") {
		s3, err := aws.NewS3(ctx, aws.S3Config{
			Bucket:          viper.GetString("receipts.archive.bucket"),
			Region:          viper.GetString("receipts.archive.region"),
			AccessKeyID:     viper.GetString("receipts.archive.access_key_id"),
			SecretAccessKey: viper.GetString("receipts.archive.secret_access_key"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		d.Archive = service.NewReceiptArchive(s3)
	}

	// Reset tokens live for minutes, a daily sweep only keeps the table tidy
	go service.TokenCleanup(ctx, time.Hour*24, d.Users)

	return NewEngine(ctx, d, EngineConfig{
		CORSOrigins: viper.GetStringSlice("host.cors_origins"),
		RateLimit:   viper.GetInt("security.rate_limit"),
		Turnstile: middleware.TurnstileConfig{
			Enabled: viper.GetBool("turnstile.enabled"),
			Secret:  viper.GetString("turnstile.secret_token"),
		},
	}), nil
}

// NewEngine wires the middleware and routes around d
func NewEngine(ctx context.Context, d *internal.Deps, cfg EngineConfig) *gin.Engine {
	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("user_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = 8 << 20

	jwt := middleware.NewJWTMiddleware(d.Settings.JWTSecret, d.Users)
	turnstile := middleware.NewTurnstileMiddleware(cfg.Turnstile)
	jsonLimit := middleware.BodySizeLimiter(jsonBodyLimit)
	uploadLimit := middleware.BodySizeLimiter(int64(d.Settings.MaxUploadFiles)*d.Settings.MaxUploadSize + jsonBodyLimit)

	main := router.Group("/api")

	// A zero rate would block every request
	if cfg.RateLimit > 0 {
		rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit,
			Burst:             cfg.RateLimit * 2,
		})
		go rl.Cleanup(ctx)

		main.Use(rl.Middleware())
	}

	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a JWT token
		main.GET("/validate", jwt, root.Validate)
	}

	a := main.Group("/auth", jsonLimit)
	{
		// POST /api/auth/register	-> Registers a new user and returns a token
		a.POST("/register", turnstile, func(c *gin.Context) { auth.Register(c, d) })

		// POST /api/auth/login		-> Logs in a user and returns a token
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// GET /api/auth/me		-> Returns the profile of the logged in user
		a.GET("/me", jwt, func(c *gin.Context) { auth.Me(c, d) })

		// POST /api/auth/forgot-password	-> Emails a password reset link
		a.POST("/forgot-password", turnstile, func(c *gin.Context) { auth.ForgotPassword(c, d) })

		// PUT /api/auth/reset-password/:token	-> Sets a new password using a reset token
		a.PUT("/reset-password/:token", func(c *gin.Context) { auth.ResetPassword(c, d) })
	}

	e := main.Group("/expenses", jwt, jsonLimit)
	{
		// GET /api/expenses		-> Lists expenses, supports filters and paging
		e.GET("", func(c *gin.Context) { expense.List(c, d) })

		// GET /api/expenses/stats	-> Totals per category
		e.GET("/stats", func(c *gin.Context) { expense.Stats(c, d) })

		// GET /api/expenses/trend	-> Daily totals of the trailing window
		e.GET("/trend", func(c *gin.Context) { expense.Trend(c, d) })

		// GET /api/expenses/:id	-> Returns a single expense
		e.GET("/:id", func(c *gin.Context) { expense.Fetch(c, d) })

		// POST /api/expenses		-> Creates an expense
		e.POST("", func(c *gin.Context) { expense.Create(c, d) })

		// PUT /api/expenses/:id	-> Updates an expense
		e.PUT("/:id", func(c *gin.Context) { expense.Update(c, d) })

		// DELETE /api/expenses/:id	-> Deletes an expense
		e.DELETE("/:id", func(c *gin.Context) { expense.Delete(c, d) })
	}

	// GET /api/categories/defaults	-> The categories every user has, same for everyone so it's cached
	main.GET("/categories/defaults", cacheFor(10*60), func(c *gin.Context) { category.Defaults(c, d) })

	cg := main.Group("/categories", jwt, jsonLimit)
	{
		// GET /api/categories		-> Default and custom categories of a user
		cg.GET("", func(c *gin.Context) { category.List(c, d) })

		// POST /api/categories		-> Creates a custom category
		cg.POST("", func(c *gin.Context) { category.Create(c, d) })

		// DELETE /api/categories/:name	-> Deletes a custom category
		cg.DELETE("/:name", func(c *gin.Context) { category.Delete(c, d) })
	}

	b := main.Group("/budget", jwt, jsonLimit)
	{
		// GET /api/budget		-> Returns the budget of a user
		b.GET("", func(c *gin.Context) { budget.Fetch(c, d) })

		// PUT /api/budget		-> Sets the budget of a user
		b.PUT("", func(c *gin.Context) { budget.Update(c, d) })
	}

	// POST /api/ocr/scan		-> Reads up to upload.max_files receipt images
	main.POST("/ocr/scan", jwt, uploadLimit, func(c *gin.Context) { ocr.Scan(c, d) })

	// GET /api/ai/predict		-> Forecasts the next 30 days of spending
	main.GET("/ai/predict", jwt, func(c *gin.Context) { forecast.Predict(c, d) })

	return router
}

var cacheStore = persist.NewMemoryStore(time.Minute)

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(cacheStore, time.Second*time.Duration(sec))
}
