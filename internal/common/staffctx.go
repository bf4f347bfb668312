package common

import "context"

// StaffContext holds the authenticated staff identity for a request, populated
// by the bearer token middleware from validated session token claims.
type StaffContext struct {
	UserID string
	Email  string
	Role   string
}

type contextKey int

const staffContextKey contextKey = iota

// WithStaffContext stores a StaffContext in the request context.
func WithStaffContext(ctx context.Context, sc *StaffContext) context.Context {
	return context.WithValue(ctx, staffContextKey, sc)
}

// StaffFromContext retrieves the StaffContext from context, or nil if absent.
func StaffFromContext(ctx context.Context) *StaffContext {
	sc, _ := ctx.Value(staffContextKey).(*StaffContext)
	return sc
}
