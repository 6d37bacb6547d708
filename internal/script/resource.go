package script

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/assetkit/internal/providers/resource"
	"github.com/dop251/goja"
	"go.uber.org/zap"
)

var eventNames = map[string]resource.EventKind{
	"loaded":       resource.EventLoaded,
	"unloaded":     resource.EventUnloaded,
	"error":        resource.EventError,
	"networkError": resource.EventNetworkError,
}

// bindResource builds the Resource global over the fetcher.
func (r *Runtime) bindResource(vm *goja.Runtime) (*goja.Object, error) {
	obj := vm.NewObject()
	f := r.fetcher

	bindings := map[string]any{
		"load": func(name string) {
			r.load(name)
		},
		"unload": func(name string) bool {
			return f.Unload(name) == nil
		},
		"available":  f.Available,
		"exists":     f.Exists,
		"registered": f.Registered,
		"file":       f.ResourceFile,
		"url":        f.ResourceURL,
		"name":       f.ResourceName,
		"appPath":    f.AppPath,
		"on": func(event string, fn goja.Callable) {
			kind, ok := eventNames[event]
			if !ok {
				panic(vm.NewTypeError(fmt.Sprintf("unknown event %q", event)))
			}
			r.callbacks[kind] = append(r.callbacks[kind], fn)
		},
	}

	for name, fn := range bindings {
		if err := obj.Set(name, fn); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// load starts a fetch and keeps Run alive until it completes.
func (r *Runtime) load(name string) {
	r.pending.Add(1)
	req := r.fetcher.Load(r.ctx, name)

	go func() {
		<-req.Done()
		// Queued behind the event callbacks the completion scheduled
		r.loop.RunOnLoop(func(*goja.Runtime) {
			r.pending.Done()
		})
	}()
}

// deliver is the fetcher subscription. It hops onto the loop so callbacks
// never run concurrently with the script.
func (r *Runtime) deliver(ev resource.Event) {
	r.pending.Add(1)
	r.loop.RunOnLoop(func(vm *goja.Runtime) {
		defer r.pending.Done()

		var args []goja.Value
		if ev.Kind == resource.EventNetworkError {
			args = []goja.Value{vm.ToValue(ev.Code.String()), vm.ToValue(ev.Message)}
		} else {
			args = []goja.Value{vm.ToValue(ev.Name)}
		}

		for _, fn := range r.callbacks[ev.Kind] {
			if _, err := fn(goja.Undefined(), args...); err != nil {
				r.logger.Warn("event callback failed",
					zap.String("event", ev.Kind.String()),
					zap.String("name", ev.Name),
					zap.Error(err))
			}
		}
	})
}
