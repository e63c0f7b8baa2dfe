package ctxutil

import (
	"context"
	"time"
)

// private key type to avoid collisions
type key int

const keyUserID key = iota

// WithUserID tags the request context with the authenticated caller, so the
// lower layers can log who drove an operation without threading identity
// through every signature.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, keyUserID, userID)
}

func UserID(ctx context.Context) (int64, bool) {
	v := ctx.Value(keyUserID)
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

var DefaultDBTimeout = 5 * time.Second

// WithDBTimeout caps DB calls; when the parent deadline is nearer than the
// default, the remainder wins.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		remain := time.Until(dl)
		if remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
