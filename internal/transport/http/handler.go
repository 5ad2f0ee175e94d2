// FILE: internal/transport/http/handler.go
package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"hexref/internal/core"
	"hexref/internal/referee"
)

// MatchSource is the read-only view of a running match
type MatchSource interface {
	Snapshot() referee.Snapshot
	Wait(ctx context.Context, moves int) <-chan struct{}
}

type HTTPHandler struct {
	src MatchSource
	log zerolog.Logger
}

func NewHTTPHandler(src MatchSource, log zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{src: src, log: log}
}

// NewFiberApp builds the spectator API. It never drives the match.
func NewFiberApp(src MatchSource, log zerolog.Logger) *fiber.App {
	h := NewHTTPHandler(src, log)

	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          referee.WaitTimeout + 5*time.Second,
		IdleTimeout:           30 * time.Second,
		DisableStartupMessage: true,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(h.requestLogger)
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	app.Get("/health", h.Health)

	api := app.Group("/api/v1")
	api.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error: "rate limit exceeded",
				Code:  core.ErrInvalidRequest,
			})
		},
	}))

	api.Get("/match", h.GetMatch)
	api.Get("/match/board", h.GetBoard)

	return app
}

func (h *HTTPHandler) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	h.log.Debug().
		Int("status", c.Response().StatusCode()).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Dur("latency", time.Since(start)).
		Msg("http request")
	return err
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrInvalidRequest
		}
	}

	return c.Status(code).JSON(response)
}

// Health check endpoint
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}
