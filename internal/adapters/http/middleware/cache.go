package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CatalogCache returns cache middleware for catalog reads (1 hour cache)
func CatalogCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Set cache headers only for successful GET requests
		if c.Method() == "GET" && c.Response().StatusCode() == 200 {
			// Cache for 1 hour
			c.Set("Cache-Control", "public, max-age=3600")
		}

		return err
	}
}

// NoCacheHeaders sets no-cache headers
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}

// PrivateCacheHeaders sets private cache headers (for user-specific data)
func PrivateCacheHeaders(maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() == "GET" && c.Response().StatusCode() == 200 {
			seconds := int(maxAge.Seconds())
			c.Set("Cache-Control", "private, max-age="+strconv.Itoa(seconds))
		}

		return err
	}
}
