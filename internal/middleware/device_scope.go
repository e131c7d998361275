package middleware

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
)

const DeviceIDHeader = "X-Device-ID"

var validDeviceID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// DeviceScope puts the caller's device id in the request context. Anonymous
// requests share the cache of their device.
func DeviceScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		deviceID := c.Get(DeviceIDHeader)
		if deviceID == "" {
			return c.Next()
		}
		if !validDeviceID.MatchString(deviceID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "invalid " + DeviceIDHeader + " header",
			})
		}
		c.SetUserContext(domain.WithDeviceID(c.UserContext(), deviceID))
		return c.Next()
	}
}
