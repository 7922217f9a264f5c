package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"task-tracker-api/pkg/utils"
)

// CorsMiddleware allows the configured origins. PATCH is listed for the toggle endpoint.
func CorsMiddleware(allowOrigins []string) fiber.Handler {
	origins := strings.Join(allowOrigins, ",")
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,Accept-Language,Authorization,X-Request-ID",
		ExposeHeaders: "Content-Length,Content-Type,X-Request-ID," + utils.TotalCountHeader,
		// fiber refuses credentials with a wildcard origin
		AllowCredentials: origins != "*",
	})
}
