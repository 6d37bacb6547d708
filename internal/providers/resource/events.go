package resource

import (
	"slices"

	"github.com/GriffinCanCode/AgentOS/assetkit/internal/shared/id"
)

// EventKind identifies a fetcher notification.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventUnloaded
	EventError
	EventNetworkError
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventUnloaded:
		return "unloaded"
	case EventError:
		return "error"
	case EventNetworkError:
		return "networkError"
	default:
		return "unknown"
	}
}

// Event is delivered to every subscriber. Code and Message are only set for
// EventNetworkError and EventError; RequestID is empty for EventUnloaded.
type Event struct {
	Kind      EventKind
	Name      string
	RequestID id.RequestID
	Code      ErrorCode
	Message   string
}

// Handler receives events. Handlers run on the dispatcher and must not block.
type Handler func(Event)

// Subscribe registers h and returns a function removing it.
func (f *Fetcher) Subscribe(h Handler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := f.nextHandler
	f.nextHandler++
	f.handlers[key] = h

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, key)
	}
}

// emit calls every subscriber in subscription order without holding the lock
// so handlers may call back into the fetcher.
func (f *Fetcher) emit(ev Event) {
	f.mu.Lock()
	keys := make([]uint64, 0, len(f.handlers))
	for k := range f.handlers {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	handlers := make([]Handler, 0, len(keys))
	for _, k := range keys {
		handlers = append(handlers, f.handlers[k])
	}
	f.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
