package navmux

import (
	"net/url"

	"go.uber.org/atomic"
)

// History is the browser history surface the router drives. The
// navhistory package provides an in-memory implementation and one
// backed by window.history for js/wasm builds.
type History interface {
	// Location returns the current document location.
	Location() *url.URL

	// PushState adds a history entry for u carrying state, without
	// reloading the document.
	PushState(state any, u *url.URL) error

	// Subscribe registers fn to be called with the restored entry's URL
	// and state when the user moves back or forward. Events are delivered
	// one at a time, in the order they happened. The returned function
	// removes the subscription.
	Subscribe(fn func(u *url.URL, state any)) (cancel func())
}

// HistoryState is the state the router attaches to the entries it pushes.
// Counter increases with every push, so consecutive entries differ even
// when they point at the same URL.
type HistoryState struct {
	Counter uint64 `json:"counter"`
}

// historyCounter numbers the entries pushed by every router in the
// process unless a router is given its own counter.
var historyCounter atomic.Uint64
