package navhandlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vitalvas/navkit/navmux"
)

// dispatch registers handlers for template on a fresh router and
// dispatches target through it.
func dispatch(t *testing.T, template, target string, handlers ...navmux.Handler) (*navmux.Response, error) {
	t.Helper()
	r := navmux.New()
	require.NoError(t, r.Get(template, handlers...))
	return r.Dispatch(context.Background(), target, nil)
}

func terminal(fn func(req *navmux.Request, res *navmux.Response) error) navmux.Handler {
	return navmux.HandlerFunc(func(req *navmux.Request, res *navmux.Response, _ navmux.Next) error {
		return fn(req, res)
	})
}
