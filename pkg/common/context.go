package common

import "context"

// ContextKey keys request-scoped values so they never collide with other
// packages' string keys
type ContextKey string

const (
	ContextKeyUserID     ContextKey = "user_id"
	ContextKeyUserRoles  ContextKey = "user_roles"
	ContextKeyRequestID  ContextKey = "request_id"
	ContextKeyCollection ContextKey = "collection"
)

// WithUserID attaches the authenticated caller's ID
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// GetUserID returns the authenticated caller's ID, if set
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ContextKeyUserID).(string)
	return userID, ok
}

// WithUserRoles attaches the caller's roles
func WithUserRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, ContextKeyUserRoles, roles)
}

// GetUserRoles returns the caller's roles, if set
func GetUserRoles(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(ContextKeyUserRoles).([]string)
	return roles, ok
}

// HasRole reports whether the caller carries the given role
func HasRole(ctx context.Context, role string) bool {
	roles, ok := GetUserRoles(ctx)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// WithRequestID attaches the request ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// GetRequestID returns the request ID, if set
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(ContextKeyRequestID).(string)
	return requestID, ok
}

// WithCollection attaches the collection an analysis request targets, so
// downstream logging and tracing can name it without replumbing arguments
func WithCollection(ctx context.Context, collection string) context.Context {
	return context.WithValue(ctx, ContextKeyCollection, collection)
}

// GetCollection returns the target collection, if set
func GetCollection(ctx context.Context) (string, bool) {
	collection, ok := ctx.Value(ContextKeyCollection).(string)
	return collection, ok
}
