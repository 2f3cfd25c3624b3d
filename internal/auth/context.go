package auth

import "context"

type contextKey struct{}

// AuthContext carries the authenticated member identity through a request.
type AuthContext struct {
	MemberID string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

// MemberID returns the authenticated member id, or "" if the request is
// unauthenticated.
func MemberID(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.MemberID
}
