//go:build js && wasm

package navhistory

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"syscall/js"
)

// Browser is a History backed by window.history and window.location.
type Browser struct {
	window js.Value
}

// NewBrowser returns a History for the current window.
func NewBrowser() *Browser {
	return &Browser{window: js.Global()}
}

// Location parses window.location.href. It returns nil when the
// location cannot be parsed.
func (b *Browser) Location() *url.URL {
	href := b.window.Get("location").Get("href").String()
	u, err := url.Parse(href)
	if err != nil {
		return nil
	}
	return u
}

// PushState calls history.pushState with state converted through JSON.
func (b *Browser) PushState(state any, u *url.URL) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("navhistory: encode state: %w", err)
	}
	obj := b.window.Get("JSON").Call("parse", string(raw))
	b.window.Get("history").Call("pushState", obj, "", u.String())
	return nil
}

type popEvent struct {
	url   *url.URL
	state any
}

// Subscribe listens for popstate events. The location and state are read
// inside the JS callback, when the event fires, and queued. A single
// goroutine drains the queue and calls fn in event order, since blocking
// inside a JS callback would stall the event loop.
func (b *Browser) Subscribe(fn func(u *url.URL, state any)) func() {
	var (
		mu    sync.Mutex
		queue []popEvent
	)
	wake := make(chan struct{}, 1)
	done := make(chan struct{})

	listener := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := popEvent{url: b.Location()}
		if len(args) > 0 {
			ev.state = b.decodeState(args[0].Get("state"))
		}

		mu.Lock()
		queue = append(queue, ev)
		mu.Unlock()

		select {
		case wake <- struct{}{}:
		default:
		}
		return nil
	})
	b.window.Call("addEventListener", "popstate", listener)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-wake:
			}
			for {
				mu.Lock()
				if len(queue) == 0 {
					mu.Unlock()
					break
				}
				ev := queue[0]
				queue[0] = popEvent{}
				queue = queue[1:]
				mu.Unlock()

				fn(ev.url, ev.state)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.window.Call("removeEventListener", "popstate", listener)
			listener.Release()
			close(done)
		})
	}
}

func (b *Browser) decodeState(v js.Value) any {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	raw := b.window.Get("JSON").Call("stringify", v).String()
	var state any
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil
	}
	return state
}
