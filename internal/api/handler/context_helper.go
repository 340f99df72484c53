package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/response"
)

// MustGetUserID extracts user_id injected by the JWT middleware. On a
// missing value it writes a 401 and returns false; callers return
// immediately in that case.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts role from the context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetDeviceUUID extracts device_uuid injected by the device-auth
// middleware.
func MustGetDeviceUUID(c *gin.Context) (string, bool) {
	v, exists := c.Get("device_uuid")
	if !exists {
		response.Unauthorized(c, 10006, "device not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10006, "device not authenticated")
		return "", false
	}
	return s, true
}

// tokenSession pulls the access token's ID and expiry from the context
// for logout. Both values are set by the JWT middleware.
func tokenSession(c *gin.Context) (jti string, expiry time.Time, ok bool) {
	v, exists := c.Get("token_jti")
	if !exists {
		return "", time.Time{}, false
	}
	jti, ok = v.(string)
	if !ok {
		return "", time.Time{}, false
	}
	e, exists := c.Get("token_expiry")
	if !exists {
		return "", time.Time{}, false
	}
	expiry, ok = e.(time.Time)
	return jti, expiry, ok
}
