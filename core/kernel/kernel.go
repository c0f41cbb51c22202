package kernel

import (
	"cmp"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/goteo/foundation/core/logger"
)

// RequestListener handles a RequestEvent.
type RequestListener func(*RequestEvent)

// ResponseListener handles a ResponseEvent.
type ResponseListener func(*ResponseEvent)

// Subscriber registers its own listeners on a kernel.
type Subscriber interface {
	Subscribe(k *Kernel)
}

type listener[F any] struct {
	priority int
	fn       F
}

// Kernel dispatches lifecycle events around an http.Handler.
type Kernel struct {
	handler           http.Handler
	logger            *slog.Logger
	requestListeners  []listener[RequestListener]
	responseListeners []listener[ResponseListener]
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithLogger sets the logger used for panics and write failures.
func WithLogger(log *slog.Logger) Option {
	return func(k *Kernel) {
		if log != nil {
			k.logger = log
		}
	}
}

// New creates a kernel routing requests to h.
func New(h http.Handler, opts ...Option) *Kernel {
	if h == nil {
		h = http.NotFoundHandler()
	}
	k := &Kernel{
		handler: h,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// AddRequestListener registers fn; higher priorities run first, ties keep registration order.
func (k *Kernel) AddRequestListener(priority int, fn RequestListener) {
	k.requestListeners = append(k.requestListeners, listener[RequestListener]{priority, fn})
	slices.SortStableFunc(k.requestListeners, byPriority[RequestListener])
}

// AddResponseListener registers fn; higher priorities run first, ties keep registration order.
func (k *Kernel) AddResponseListener(priority int, fn ResponseListener) {
	k.responseListeners = append(k.responseListeners, listener[ResponseListener]{priority, fn})
	slices.SortStableFunc(k.responseListeners, byPriority[ResponseListener])
}

// Register lets each subscriber add its listeners.
func (k *Kernel) Register(subs ...Subscriber) {
	for _, s := range subs {
		s.Subscribe(k)
	}
}

// ServeHTTP handles r as a main request.
func (k *Kernel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := k.Handle(r, MainRequest)
	if err := resp.WriteTo(w); err != nil {
		k.logger.DebugContext(r.Context(), "kernel: write response", logger.Error(err))
	}
}

// SubRequest handles r as an internal request and returns the buffered response.
func (k *Kernel) SubRequest(r *http.Request) *Response {
	return k.Handle(r, SubRequest)
}

// Handle runs the full lifecycle for r and returns the response without sending it.
func (k *Kernel) Handle(r *http.Request, typ RequestType) *Response {
	req := NewRequest(r, typ)
	resp := NewResponse(http.StatusOK, nil)

	ev := &RequestEvent{Request: req, writer: &bufferedWriter{resp: resp}}
	for _, l := range k.requestListeners {
		l.fn(ev)
		if ev.HasResponse() {
			break
		}
	}

	if ev.HasResponse() {
		final := ev.Response()
		if final.header == nil {
			final.header = make(http.Header)
		}
		final.mergeHeaders(resp.header)
		resp = final
	} else {
		k.route(req, resp)
	}

	rev := &ResponseEvent{Request: req, Response: resp}
	for _, l := range k.responseListeners {
		l.fn(rev)
	}
	return rev.Response
}

func (k *Kernel) route(req *Request, resp *Response) {
	w := &bufferedWriter{resp: resp}

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
		k.logger.ErrorContext(req.Context(), "kernel: handler panicked",
			logger.Error(fmt.Errorf("%v", rec)),
			logger.Path(req.Path()),
			logger.Stack(),
		)
		resp.reset(http.StatusInternalServerError)
		resp.header.Set("Content-Type", "text/plain; charset=utf-8")
		resp.body.WriteString(http.StatusText(http.StatusInternalServerError))
	}()

	k.handler.ServeHTTP(w, req.HTTP())

	if resp.header.Get("Content-Type") == "" && resp.body.Len() > 0 {
		resp.header.Set("Content-Type", http.DetectContentType(resp.body.Bytes()))
	}
}

func byPriority[F any](a, b listener[F]) int {
	return cmp.Compare(b.priority, a.priority)
}
