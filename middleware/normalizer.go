package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goteo/foundation/core/cookie"
	"github.com/goteo/foundation/core/currency"
	"github.com/goteo/foundation/core/flash"
	"github.com/goteo/foundation/core/i18n"
	"github.com/goteo/foundation/core/kernel"
	"github.com/goteo/foundation/core/logger"
	"github.com/goteo/foundation/core/metrics"
	"github.com/goteo/foundation/core/session"
	"github.com/goteo/foundation/core/view"
	"github.com/goteo/foundation/pkg/clientip"
)

// Listener priorities of the normalizer.
const (
	RequestPriority  = 0
	ResponsePriority = -50
)

// NotifyPathPrefix marks payment gateway callbacks, which run without a session.
const NotifyPathPrefix = "/invest/notify/"

// MessagesNamespace holds the user-facing texts pushed by the normalizer.
const MessagesNamespace = "messages"

// Translation keys.
const (
	MsgSessionExpired = "session-expired"
	MsgCookies        = "message-cookies"
)

// SessionStarter starts or resumes the browser session.
type SessionStarter interface {
	Start(w http.ResponseWriter, r *http.Request, name string, ttl time.Duration) (*session.Session, error)
}

// CookieStore reads and writes plain cookies.
type CookieStore interface {
	Exists(r *http.Request, name string) bool
	Set(w http.ResponseWriter, r *http.Request, name, value string, opts ...cookie.Option) error
}

// LanguageResolver picks the request language.
type LanguageResolver interface {
	Resolve(s i18n.Signals) string
	Exists(code string) bool
	DefaultLanguage() string
	Translator(lang, namespace string) *i18n.Translator
}

// CurrencyResolver validates currency codes against the enabled set.
type CurrencyResolver interface {
	Current(stored string) currency.Currency
	Get(code string) currency.Currency
}

// CacheFlusher empties the application caches.
type CacheFlusher interface {
	FlushAll(ctx context.Context) error
}

// ThemeAccessor returns the theme the response is rendered with.
type ThemeAccessor interface {
	ActiveTheme(ctx context.Context) string
}

// Messenger queues user-facing messages in the session.
type Messenger interface {
	Info(ctx context.Context, sess *session.Session, text string) error
}

// RequestNormalizer prepares every main request before routing and
// instruments every HTML response.
//
// Before routing it starts the session, settles currency and language,
// shows the cookie notice once and redirects to the canonical
// scheme://host. After the response is produced it logs a "Request" record
// and, while an administrator is shadowing a user, injects a banner linking
// back to their account.
type RequestNormalizer struct {
	cfg        NormalizerConfig
	trust      clientip.Trust
	sessions   SessionStarter
	cookies    CookieStore
	languages  LanguageResolver
	currencies CurrencyResolver
	cache      CacheFlusher
	themes     ThemeAccessor
	messenger  Messenger
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NormalizerOption configures optional collaborators.
type NormalizerOption func(*RequestNormalizer)

// WithNormalizerLogger sets the logger receiving "Request" records and warnings.
func WithNormalizerLogger(log *slog.Logger) NormalizerOption {
	return func(n *RequestNormalizer) {
		if log != nil {
			n.logger = log
		}
	}
}

// WithCache sets the caches flushed by the "cleancache" query flag.
func WithCache(c CacheFlusher) NormalizerOption {
	return func(n *RequestNormalizer) {
		n.cache = c
	}
}

// WithThemes sets the theme accessor used to locate the banner anchor.
func WithThemes(t ThemeAccessor) NormalizerOption {
	return func(n *RequestNormalizer) {
		if t != nil {
			n.themes = t
		}
	}
}

// WithMessenger replaces the session flash messenger.
func WithMessenger(m Messenger) NormalizerOption {
	return func(n *RequestNormalizer) {
		if m != nil {
			n.messenger = m
		}
	}
}

// WithMetrics records normalizer decisions.
func WithMetrics(m *metrics.Metrics) NormalizerOption {
	return func(n *RequestNormalizer) {
		n.metrics = m
	}
}

// NewRequestNormalizer creates a normalizer. It fails only on malformed
// trusted proxy entries.
func NewRequestNormalizer(
	cfg NormalizerConfig,
	sessions SessionStarter,
	cookies CookieStore,
	languages LanguageResolver,
	currencies CurrencyResolver,
	opts ...NormalizerOption,
) (*RequestNormalizer, error) {
	trust, err := clientip.ParseTrust(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("normalizer: trusted proxies: %w", err)
	}
	if cfg.CookieNoticeName == "" {
		cfg.CookieNoticeName = DefaultConfig().CookieNoticeName
	}

	n := &RequestNormalizer{
		cfg:        cfg,
		trust:      trust,
		sessions:   sessions,
		cookies:    cookies,
		languages:  languages,
		currencies: currencies,
		themes:     view.NewThemes(view.ThemeDefault),
		messenger:  flash.New(),
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Subscribe registers the normalizer on k.
func (n *RequestNormalizer) Subscribe(k *kernel.Kernel) {
	k.AddRequestListener(RequestPriority, n.OnRequest)
	k.AddResponseListener(ResponsePriority, n.OnResponse)
}

// OnRequest runs before routing.
func (n *RequestNormalizer) OnRequest(ev *kernel.RequestEvent) {
	if !ev.IsMainRequest() {
		return
	}
	req := ev.Request
	if !n.trust.Empty() {
		req.SetTrustedProxies(n.trust)
	}
	if strings.HasPrefix(req.Path(), NotifyPathPrefix) {
		return
	}

	ctx := req.Context()
	w := ev.Writer()

	sess, err := n.sessions.Start(w, req.HTTP(), n.cfg.SessionName(), n.cfg.SessionTime)
	if err != nil {
		n.warn(ctx, "start session", err)
		return
	}
	n.metrics.IncSession(sessionOutcome(sess))
	ctx = session.WithSession(ctx, sess)
	req.SetContext(ctx)

	query := req.Query()
	if query.Has("cleancache") && n.cache != nil {
		if err := n.cache.FlushAll(ctx); err != nil {
			n.warn(ctx, "flush caches", err)
		} else {
			n.metrics.IncCacheFlush()
		}
	}

	signals := n.signals(req, sess)
	sess.OnExpire(func() {
		n.notify(ctx, sess, n.languages.Resolve(signals), MsgSessionExpired)
	})
	sess.OnDestroy(func() {})

	cur := n.resolveCurrency(query, sess)
	if err := sess.Store(ctx, session.KeyCurrency, cur.ID); err != nil {
		n.warn(ctx, "store currency", err)
	}
	if err := sess.Renew(ctx); err != nil {
		n.warn(ctx, "renew session", err)
	}

	lang := n.languages.Resolve(signals)
	if lang != signals.Stored {
		if err := sess.Store(ctx, session.KeyLang, lang); err != nil {
			n.warn(ctx, "store language", err)
		}
	}
	ctx = i18n.WithTranslator(ctx, n.languages.Translator(lang, MessagesNamespace))
	req.SetContext(ctx)

	if !n.cookies.Exists(req.HTTP(), n.cfg.CookieNoticeName) {
		if err := n.cookies.Set(w, req.HTTP(), n.cfg.CookieNoticeName, "ok",
			cookie.WithMaxAge(int(n.cfg.CookieNoticeMaxAge.Seconds()))); err != nil {
			n.warn(ctx, "set cookie notice", err)
		}
		n.notify(ctx, sess, lang, MsgCookies)
		n.metrics.IncCookieNotice()
	}

	target, redirect, dropLang := ComputeRedirectTarget(RedirectInput{
		Scheme:   req.Scheme(),
		Host:     req.Host(),
		Secure:   req.IsSecure(),
		LoggedIn: sess.IsLoggedIn(),
		Lang:     lang,
		Policy: LanguagePolicy{
			URLLang:     n.cfg.URLLang,
			SSL:         n.cfg.SSL,
			DefaultLang: n.languages.DefaultLanguage(),
		},
		IsLanguage: n.languages.Exists,
	})
	if dropLang {
		query.Del("lang")
	}
	if !redirect {
		return
	}

	reason := metrics.ReasonLanguage
	if !strings.HasPrefix(target, req.Scheme()+"://") {
		reason = metrics.ReasonHTTPS
	}
	n.metrics.IncRedirect(reason)
	ev.SetResponse(kernel.NewRedirect(redirectURL(target, req.Path(), query.Encode()), http.StatusFound))
}

// OnResponse runs after the response is produced. It never fails the response.
func (n *RequestNormalizer) OnResponse(ev *kernel.ResponseEvent) {
	if !ev.IsMainRequest() || !ev.Response.IsHTML() || ev.Request.IsXMLHttpRequest() {
		return
	}
	req := ev.Request
	ctx := req.Context()

	defer func() {
		if rec := recover(); rec != nil {
			n.logger.WarnContext(ctx, "normalizer: response hook panicked",
				logger.Error(fmt.Errorf("%v", rec)), logger.Path(req.Path()))
		}
	}()

	sess, _ := session.FromContext(ctx)
	n.logger.LogAttrs(ctx, slog.LevelInfo, "Request", requestRecord(req, ev.Response, sess)...)

	if sess == nil {
		return
	}
	by, ok := sess.ShadowedBy()
	if !ok {
		return
	}
	body, injected := InjectShadowBanner(ev.Response.Body(), BannerAnchor(n.themes.ActiveTheme(ctx)), by.Name)
	if !injected {
		return
	}
	ev.Response.SetBody(body)
	n.metrics.IncShadowBanner()
}

// RequestedCurrency returns the currency code asked for by the query before
// validation: the "currency" parameter, else the suffix of "amount".
func RequestedCurrency(query url.Values) string {
	if code := strings.TrimSpace(query.Get("currency")); code != "" {
		return code
	}
	if code, ok := currency.ExtractFromAmount(query.Get("amount")); ok {
		return code
	}
	return ""
}

func (n *RequestNormalizer) resolveCurrency(query url.Values, sess *session.Session) currency.Currency {
	if code := RequestedCurrency(query); code != "" {
		return n.currencies.Get(code)
	}
	var stored string
	sess.Get(session.KeyCurrency, &stored)
	return n.currencies.Current(stored)
}

func (n *RequestNormalizer) signals(req *kernel.Request, sess *session.Session) i18n.Signals {
	s := i18n.Signals{
		Query:          req.Query().Get("lang"),
		AcceptLanguage: req.Header().Get("Accept-Language"),
	}
	if n.cfg.URLLang {
		s.Host = req.Host()
	}
	sess.Get(session.KeyLang, &s.Stored)
	return s
}

func (n *RequestNormalizer) notify(ctx context.Context, sess *session.Session, lang, key string) {
	text := n.languages.Translator(lang, MessagesNamespace).T(key)
	if err := n.messenger.Info(ctx, sess, text); err != nil {
		n.warn(ctx, "push message", err)
	}
}

func (n *RequestNormalizer) warn(ctx context.Context, op string, err error) {
	n.logger.WarnContext(ctx, "normalizer: "+op, logger.Component("normalizer"), logger.Error(err))
}

func sessionOutcome(sess *session.Session) string {
	switch {
	case sess.PreviousExpired():
		return metrics.SessionExpired
	case sess.IsNew():
		return metrics.SessionNew
	default:
		return metrics.SessionResumed
	}
}

// requestRecord builds the attributes of the "Request" log line.
func requestRecord(req *kernel.Request, resp *kernel.Response, sess *session.Session) []slog.Attr {
	var (
		user    string
		elapsed float64
	)
	if sess != nil {
		user = sess.CurrentUserID()
		elapsed = time.Since(sess.StartedAt).Seconds()
	}
	route, _ := req.Attribute(kernel.AttrRoute).(string)

	attrs := []slog.Attr{
		slog.Int("code", resp.StatusCode),
		slog.String("agent", req.Header().Get("User-Agent")),
		logger.Referer(req.Header().Get("Referer")),
		logger.Path(req.Path()),
		logger.Query(req.Query()),
		logger.UserID(user),
		slog.Float64("time", elapsed),
		logger.Route(route),
	}

	switch ctrl := req.Attribute(kernel.AttrController).(type) {
	case nil:
	case string:
		if c, action, ok := strings.Cut(ctrl, "::"); ok {
			attrs = append(attrs, slog.String("controller", c), logger.Action(action))
		} else {
			attrs = append(attrs, slog.String("controller", ctrl))
		}
	default:
		attrs = append(attrs, slog.Any("controller", ctrl))
	}

	if id, ok := RequestIDFromContext(req.Context()); ok {
		attrs = append(attrs, logger.RequestID(id))
	}
	return attrs
}
