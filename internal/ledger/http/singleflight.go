package http

import (
	"context"

	"golang.org/x/sync/singleflight"
)

var reportBuildGroup singleflight.Group

// singleflightReport collapses concurrent identical statement builds into
// one repository round-trip.
func singleflightReport(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	resultChan := reportBuildGroup.DoChan(key, func() (any, error) {
		return fn(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		return res.Val, res.Err
	}
}
