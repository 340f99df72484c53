package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/model"
	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/response"
)

// DeviceAuthenticator is the slice of the device service this
// middleware needs.
type DeviceAuthenticator interface {
	Authenticate(ctx context.Context, deviceUUID, secret string) (*model.Device, error)
}

// DeviceAuth authenticates scan terminals by the X-Device-ID and
// X-Device-Secret header pair minted at registration. Terminals are not
// users; they carry no role and reach only the device-facing routes.
func DeviceAuth(devices DeviceAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceUUID := c.GetHeader("X-Device-ID")
		secret := c.GetHeader("X-Device-Secret")
		if deviceUUID == "" || secret == "" {
			response.Unauthorized(c, 10006, "missing device credentials")
			c.Abort()
			return
		}

		device, err := devices.Authenticate(c.Request.Context(), deviceUUID, secret)
		if err != nil {
			response.Unauthorized(c, 10006, "device credentials rejected")
			c.Abort()
			return
		}

		c.Set("device_uuid", device.UUID)

		c.Next()
	}
}
