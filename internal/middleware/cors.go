package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows every origin with credentials. fiber refuses a literal "*"
// together with credentials, so the request origin is reflected instead.
// Requested headers are echoed back on preflight.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOriginsFunc: func(string) bool { return true },
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodPatch,
			fiber.MethodDelete,
			fiber.MethodHead,
			fiber.MethodOptions,
		}, ","),
		AllowCredentials: true,
	})
}
