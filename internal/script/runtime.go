package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/GriffinCanCode/AgentOS/assetkit/internal/logging"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/providers/filesystem"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/providers/resource"
	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/eventloop"
	"github.com/dop251/goja_nodejs/require"
	"go.uber.org/zap"
)

// ErrRunning is returned when Run is called while a script is running.
var ErrRunning = errors.New("script already running")

// Runtime executes scripts against a path store and a resource fetcher.
// Scripts see the globals Env, Resource and console. A Runtime runs one
// script at a time.
type Runtime struct {
	store   *filesystem.Store
	fetcher *resource.Fetcher
	logger  *logging.Logger
	printer *zapPrinter

	loop    *eventloop.EventLoop
	vm      atomic.Pointer[goja.Runtime]
	running atomic.Bool
	pending sync.WaitGroup
	bound   sync.Once
	bindErr error

	// Owned by the loop goroutine
	ctx       context.Context
	callbacks map[resource.EventKind][]goja.Callable
}

// NewRuntime creates a runtime. While a script runs, the fetcher's
// completions and events are routed through the runtime's event loop.
func NewRuntime(store *filesystem.Store, fetcher *resource.Fetcher, logger *logging.Logger) *Runtime {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("script")

	r := &Runtime{
		store:     store,
		fetcher:   fetcher,
		logger:    logger,
		printer:   &zapPrinter{logger: logger},
		ctx:       context.Background(),
		callbacks: make(map[resource.EventKind][]goja.Callable),
	}

	registry := require.NewRegistry()
	registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(r.printer))
	r.loop = eventloop.NewEventLoop(eventloop.WithRegistry(registry))
	return r
}

// dispatch runs fn on the loop goroutine.
func (r *Runtime) dispatch(fn func()) {
	r.loop.RunOnLoop(func(*goja.Runtime) {
		fn()
	})
}

// RunFile reads and runs the script at path.
func (r *Runtime) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return r.Run(ctx, string(src), path)
}

// Run executes src and returns once the script and every load it started
// have completed, or ctx is done.
func (r *Runtime) Run(ctx context.Context, src, name string) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer r.running.Store(false)

	prog, err := goja.Compile(name, src, false)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", name, err)
	}

	r.fetcher.SetDispatcher(r.dispatch)
	unsubscribe := r.fetcher.Subscribe(r.deliver)
	r.loop.Start()
	defer func() {
		r.loop.Stop()
		unsubscribe()
		r.fetcher.SetDispatcher(nil)
	}()

	done := make(chan error, 1)
	r.loop.RunOnLoop(func(vm *goja.Runtime) {
		r.printer.script = name
		vm.ClearInterrupt()
		r.vm.Store(vm)
		r.ctx = ctx
		r.bound.Do(func() { r.bindErr = r.bind(vm) })
		if r.bindErr != nil {
			done <- r.bindErr
			return
		}

		_, err := vm.RunProgram(prog)
		done <- err
	})

	select {
	case err := <-done:
		if err != nil {
			r.logger.Warn("script failed", zap.String("path", name), zap.Error(err))
			return fmt.Errorf("running %s: %w", name, err)
		}
	case <-ctx.Done():
		r.interrupt(ctx.Err())
		return ctx.Err()
	}

	drained := make(chan struct{})
	go func() {
		r.pending.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		r.logger.Debug("script finished", zap.String("path", name))
		return nil
	case <-ctx.Done():
		r.interrupt(ctx.Err())
		return ctx.Err()
	}
}

func (r *Runtime) interrupt(reason error) {
	if vm := r.vm.Load(); vm != nil {
		vm.Interrupt(reason)
	}
}

// bind installs the globals.
func (r *Runtime) bind(vm *goja.Runtime) error {
	env, err := r.bindEnv(vm)
	if err != nil {
		return err
	}
	res, err := r.bindResource(vm)
	if err != nil {
		return err
	}

	if err := vm.Set("Env", env); err != nil {
		return err
	}
	return vm.Set("Resource", res)
}
