package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"apluscharge_backend/pkg/database"
	"apluscharge_backend/pkg/logger"
)

const (
	maxCollections     = 10
	maxDiagnosticChars = 80
	diagnosticsTimeout = 5 * time.Second
)

// DiagnosticsResponse never carries an error status; failures are rendered
// into the Database field.
type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

type HomeController struct {
	store        database.Store
	dbConfigured bool
	log          *zap.Logger
}

// NewHomeController takes a nil store when the database is not configured or
// could not be opened.
func NewHomeController(store database.Store, dbConfigured bool, log *zap.Logger) *HomeController {
	return &HomeController{store: store, dbConfigured: dbConfigured, log: logger.OrNop(log)}
}

func (h *HomeController) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "A Plus Charge Backend Running",
	})
}

func (h *HomeController) Diagnostics(c *fiber.Ctx) error {
	return c.JSON(h.Diagnose(c.UserContext()))
}

func (h *HomeController) Diagnose(ctx context.Context) (resp DiagnosticsResponse) {
	resp = DiagnosticsResponse{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			h.log.Error("diagnostics panicked", zap.Any("panic", r))
			resp.Database = "❌ Error: " + truncate(fmt.Sprint(r), maxDiagnosticChars)
		}
	}()

	if h.store == nil {
		if h.dbConfigured {
			resp.Database = "⚠️ Available but not initialized"
		}
		return resp
	}

	resp.Database = "✅ Available"
	urlStatus := "❌ Not Set"
	if h.dbConfigured {
		urlStatus = "✅ Set"
	}
	resp.DatabaseURL = &urlStatus

	ctx, cancel := context.WithTimeout(ctx, diagnosticsTimeout)
	defer cancel()

	name, err := h.store.Name(ctx)
	if err != nil || name == "" {
		name = "✅ Connected"
	}
	resp.DatabaseName = &name
	resp.ConnectionStatus = "Connected"

	collections, err := h.store.ListCollections(ctx)
	if err != nil {
		h.log.Warn("could not list collections", zap.Error(err))
		resp.Database = "⚠️ Connected but Error: " + truncate(err.Error(), maxDiagnosticChars)
		return resp
	}

	if len(collections) > maxCollections {
		collections = collections[:maxCollections]
	}
	if collections != nil {
		resp.Collections = collections
	}
	resp.Database = "✅ Connected & Working"
	return resp
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
