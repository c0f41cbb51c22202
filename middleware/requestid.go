package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/goteo/foundation/core/kernel"
)

// RequestIDPriority runs before the normalizer so its log lines carry the ID.
const RequestIDPriority = 100

type requestIDContextKey struct{}

// RequestIDConfig configures the request ID listener.
type RequestIDConfig struct {
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName is echoed on the response (default: "X-Request-ID")
	HeaderName string
	// UseExisting trusts an inbound request ID header
	UseExisting bool
}

// RequestID assigns every request an identifier, stores it in the request
// context and echoes it in the response headers.
type RequestID struct {
	cfg RequestIDConfig
}

// NewRequestID creates a request ID listener.
func NewRequestID(cfg RequestIDConfig) *RequestID {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}
	return &RequestID{cfg: cfg}
}

// Subscribe registers the listener on k.
func (l *RequestID) Subscribe(k *kernel.Kernel) {
	k.AddRequestListener(RequestIDPriority, l.OnRequest)
}

// OnRequest picks the request ID. Sub-requests inherit the parent's.
func (l *RequestID) OnRequest(ev *kernel.RequestEvent) {
	req := ev.Request
	ctx := req.Context()

	if _, ok := RequestIDFromContext(ctx); ok && !ev.IsMainRequest() {
		return
	}

	var id string
	if l.cfg.UseExisting {
		id = req.Header().Get(l.cfg.HeaderName)
	}
	if id == "" {
		id = l.cfg.Generator()
	}

	req.SetContext(context.WithValue(ctx, requestIDContextKey{}, id))
	ev.Writer().Header().Set(l.cfg.HeaderName, id)
}

// RequestIDFromContext returns the request ID stored by RequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok && id != ""
}
