package domain

import "context"

type contextKey string

const (
	userIDContextKey   contextKey = "user_id"
	deviceIDContextKey contextKey = "device_id"
)

// DefaultDeviceID scopes the cache of requests that carry no device id
const DefaultDeviceID = "default"

// UserContext exposes the authenticated user, if any. No user means the store
// runs in local-only mode.
type UserContext interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// ContextUser reads the user id placed in the context by the auth middleware
type ContextUser struct{}

func (ContextUser) CurrentUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}

// WithUserID attaches an authenticated user id to ctx
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// WithDeviceID attaches the caller's device id to ctx
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDContextKey, deviceID)
}

// DeviceIDFromContext returns the device id, DefaultDeviceID when none was set
func DeviceIDFromContext(ctx context.Context) string {
	if deviceID, ok := ctx.Value(deviceIDContextKey).(string); ok && deviceID != "" {
		return deviceID
	}
	return DefaultDeviceID
}

// CacheNamespace is the cache scope for ctx: the user when authenticated,
// the device otherwise.
func CacheNamespace(ctx context.Context, users UserContext) string {
	if userID, ok := users.CurrentUserID(ctx); ok {
		return "user:" + userID
	}
	return "device:" + DeviceIDFromContext(ctx)
}
