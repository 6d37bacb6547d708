package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/GriffinCanCode/AgentOS/assetkit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/logging"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/providers/http/client"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/vfs"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BundleExt is the file extension of fetched bundles, both remote and local.
const BundleExt = ".rcc"

// Config locates the remote bundles and their local copies.
type Config struct {
	BaseURL string
	DataDir string
}

// Fetcher downloads named bundles, stores them under DataDir and mounts
// them in a namespace at "/<name>/".
type Fetcher struct {
	baseURL string
	dataDir string

	ns       *vfs.Namespace
	client   *client.Client
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	dispatch func(func())

	mu          sync.Mutex
	handlers    map[uint64]Handler
	nextHandler uint64
	registered  map[string]struct{}
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client.
func WithClient(c *client.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l.Named("resource")
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

// WithDispatcher sets the function completions run through. Persisting,
// registering, events and request completion all happen inside fn. The
// default runs fn on the fetch goroutine.
func WithDispatcher(dispatch func(fn func())) Option {
	return func(f *Fetcher) {
		f.dispatch = dispatch
	}
}

// SetDispatcher replaces the dispatcher for loads started afterwards. A nil
// dispatch restores the default.
func (f *Fetcher) SetDispatcher(dispatch func(fn func())) {
	if dispatch == nil {
		dispatch = inline
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatch = dispatch
}

func inline(fn func()) { fn() }

func (f *Fetcher) dispatcher() func(func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dispatch
}

// New creates a fetcher and the data directory if it is missing.
func New(cfg Config, ns *vfs.Namespace, opts ...Option) (*Fetcher, error) {
	if ns == nil {
		return nil, errors.New("resource: namespace required")
	}
	if cfg.DataDir == "" {
		return nil, errors.New("resource: data directory required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("resource: base url required")
	}

	f := &Fetcher{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		dataDir:    cfg.DataDir,
		ns:         ns,
		logger:     logging.NewNop(),
		dispatch:   inline,
		handlers:   make(map[uint64]Handler),
		registered: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = client.NewClient(client.Config{})
	}

	_, statErr := os.Stat(f.dataDir)
	if err := os.MkdirAll(f.dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", f.dataDir, err)
	}
	info, err := os.Stat(f.dataDir)
	if err != nil {
		return nil, fmt.Errorf("data directory %s: %w", f.dataDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory %s: not a directory", f.dataDir)
	}
	if errors.Is(statErr, os.ErrNotExist) {
		f.logger.Debug("created data directory", zap.String("path", f.dataDir))
	}
	return f, nil
}

// DataDir returns the directory bundles are stored in.
func (f *Fetcher) DataDir() string {
	return f.dataDir
}

// Load fetches {baseURL}/{name}.rcc in the background.
//
// On 200 the body is stored as {dataDir}/{name}.rcc, mounted at "/{name}/"
// and EventLoaded is emitted. A failed write or mount emits EventError. Any
// other status emits nothing and the request fails with a *StatusError.
// Transport failures emit EventNetworkError and fail with a *NetworkError.
func (f *Fetcher) Load(ctx context.Context, name string) *Request {
	req := newRequest(name)

	if !paths.ValidName(name) {
		f.logger.Warn("refusing to load invalid name", zap.String("name", name))
		f.metrics.RecordFetch(monitoring.OutcomeInvalid, 0, 0)
		req.complete(Result{Name: name}, fmt.Errorf("load %q: %w", name, ErrInvalidName))
		return req
	}

	go f.fetch(ctx, req, f.dispatcher())
	return req
}

func (f *Fetcher) fetch(ctx context.Context, req *Request, dispatch func(func())) {
	timer := monitoring.NewTimer(f.metrics)
	target := f.ResourceURL(req.Name)
	logger := f.logger.With(
		zap.String("request_id", req.ID.String()),
		zap.String("name", req.Name))

	logger.Debug("fetching bundle", zap.String("url", target))

	resp, err := f.get(ctx, target)
	if err != nil {
		code := classify(err)
		logger.Warn("fetch failed", zap.String("code", code.String()), zap.Error(err))
		timer.Stop(monitoring.OutcomeNetwork, 0)

		dispatch(func() {
			f.emit(Event{
				Kind:      EventNetworkError,
				Name:      req.Name,
				RequestID: req.ID,
				Code:      code,
				Message:   err.Error(),
			})
			req.complete(Result{Name: req.Name}, &NetworkError{Name: req.Name, URL: target, Code: code, Err: err})
		})
		return
	}

	status := resp.StatusCode()
	if status != http.StatusOK {
		logger.Info("bundle not served", zap.Int("status", status))
		timer.Stop(monitoring.OutcomeStatus, 0)

		dispatch(func() {
			req.complete(Result{Name: req.Name, Status: status}, &StatusError{Name: req.Name, URL: target, StatusCode: status})
		})
		return
	}

	body := resp.Body()
	dispatch(func() {
		f.install(req, body, status, timer, logger)
	})
}

func (f *Fetcher) get(ctx context.Context, target string) (*resty.Response, error) {
	r, err := f.client.Request(ctx)
	if err != nil {
		return nil, err
	}
	return r.Get(target)
}

// install persists and mounts a fetched bundle.
func (f *Fetcher) install(req *Request, body []byte, status int, timer *monitoring.Timer, logger *logging.Logger) {
	file := f.ResourceFile(req.Name)
	res := Result{Name: req.Name, Status: status}

	if err := f.persist(file, body); err != nil {
		logger.Warn("writing bundle failed", zap.String("path", file), zap.Error(err))
		timer.Stop(monitoring.OutcomePersist, 0)
		f.emit(Event{Kind: EventError, Name: req.Name, RequestID: req.ID, Message: err.Error()})
		req.complete(res, fmt.Errorf("load %s: %w: %w", req.Name, ErrPersist, err))
		return
	}
	res.Path = file
	res.Bytes = len(body)

	if err := f.register(req.Name, file); err != nil {
		logger.Warn("mounting bundle failed", zap.String("path", file), zap.Error(err))
		timer.Stop(monitoring.OutcomeRegister, 0)
		f.emit(Event{Kind: EventError, Name: req.Name, RequestID: req.ID, Message: err.Error()})
		req.complete(res, fmt.Errorf("load %s: %w: %w", req.Name, ErrRegister, err))
		return
	}

	logger.Info("bundle loaded", zap.String("path", file), zap.Int("bytes", len(body)))
	timer.Stop(monitoring.OutcomeLoaded, len(body))
	f.emit(Event{Kind: EventLoaded, Name: req.Name, RequestID: req.ID})
	req.complete(res, nil)
}

// persist writes data next to file and renames it into place so a reader
// never sees a partial bundle.
func (f *Fetcher) persist(file string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(file),
		fmt.Sprintf(".%s.%s.part", filepath.Base(file), uuid.NewString()))

	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := out.Write(data); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, file); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// register mounts file at "/{name}/", replacing an earlier mount of the
// same bundle.
func (f *Fetcher) register(name, file string) error {
	prefix := "/" + name + "/"

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ns.Mounted(prefix) {
		if err := f.ns.Unregister(file, prefix); err != nil {
			return err
		}
		delete(f.registered, name)
	}

	err := f.ns.Register(file, prefix)
	if err == nil {
		f.registered[name] = struct{}{}
	}
	f.metrics.SetBundlesMounted(len(f.registered))
	return err
}

// Unload unmounts a previously fetched bundle. The local file is kept.
//
// When no local file exists for name, ErrNotAvailable is returned and no
// event is emitted. Otherwise EventUnloaded is emitted even if the bundle
// was not mounted, and the unmount error is returned.
func (f *Fetcher) Unload(name string) error {
	if !paths.ValidName(name) {
		return fmt.Errorf("unload %q: %w", name, ErrInvalidName)
	}
	if !f.Available(name) {
		return fmt.Errorf("unload %s: %w", name, ErrNotAvailable)
	}

	file := f.ResourceFile(name)

	f.mu.Lock()
	err := f.ns.Unregister(file, "/"+name+"/")
	delete(f.registered, name)
	mounted := len(f.registered)
	f.mu.Unlock()

	f.metrics.RecordUnload(err)
	f.metrics.SetBundlesMounted(mounted)

	if err != nil {
		f.logger.Warn("unmounting bundle failed", zap.String("name", name), zap.Error(err))
		err = fmt.Errorf("unload %s: %w", name, err)
	} else {
		f.logger.Info("bundle unloaded", zap.String("name", name))
	}

	f.emit(Event{Kind: EventUnloaded, Name: name})
	return err
}

// Available reports whether a local copy of the bundle exists.
func (f *Fetcher) Available(name string) bool {
	if !paths.ValidName(name) {
		return false
	}
	_, err := os.Stat(f.ResourceFile(name))
	return err == nil
}

// Exists reports whether path resolves in the namespace.
func (f *Fetcher) Exists(path string) bool {
	return f.ns.Exists(path)
}

// Registered reports whether this fetcher currently has name mounted.
func (f *Fetcher) Registered(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.registered[name]
	return ok
}

// ResourceFile returns the local path of the bundle called name.
func (f *Fetcher) ResourceFile(name string) string {
	return filepath.Join(f.dataDir, name+BundleExt)
}

// ResourceURL returns the remote location of the bundle called name.
func (f *Fetcher) ResourceURL(name string) string {
	return f.baseURL + "/" + url.PathEscape(name) + BundleExt
}

// ResourceName returns the bundle name in a URL or file path: its last
// element up to the first dot.
func (f *Fetcher) ResourceName(s string) string {
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		s = u.Path
	}

	base := path.Base(filepath.ToSlash(s))
	if base == "." || base == "/" {
		return ""
	}
	name, _, _ := strings.Cut(base, ".")
	return name
}

// AppPath returns the process working directory, or "" if it is unknown.
func (f *Fetcher) AppPath() string {
	wd, err := os.Getwd()
	if err != nil {
		f.logger.Warn("working directory unavailable", zap.Error(err))
		return ""
	}
	return wd
}
