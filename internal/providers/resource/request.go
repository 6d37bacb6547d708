package resource

import (
	"context"

	"github.com/GriffinCanCode/AgentOS/assetkit/internal/shared/id"
)

// Result describes a completed load.
type Result struct {
	Name   string
	Path   string // local bundle file, set when persisted
	Bytes  int
	Status int // HTTP status, 0 when no response was received
}

// Request tracks one in-flight Load.
type Request struct {
	ID   id.RequestID
	Name string

	done   chan struct{}
	result Result
	err    error
}

func newRequest(name string) *Request {
	return &Request{
		ID:   id.NewRequestID(),
		Name: name,
		done: make(chan struct{}),
	}
}

// complete must be called exactly once.
func (r *Request) complete(res Result, err error) {
	r.result = res
	r.err = err
	close(r.done)
}

// Done is closed once the load has finished and its event, if any, was delivered.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Result returns the outcome. It must only be called after Done is closed.
func (r *Request) Result() (Result, error) {
	return r.result, r.err
}

// Wait blocks until the load finishes or ctx is done.
func (r *Request) Wait(ctx context.Context) (Result, error) {
	select {
	case <-r.done:
		return r.result, r.err
	case <-ctx.Done():
		return Result{Name: r.Name}, ctx.Err()
	}
}
