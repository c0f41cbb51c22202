package main

import (
	"context"
	"embed"
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/goteo/foundation/core/cache"
	"github.com/goteo/foundation/core/cookie"
	"github.com/goteo/foundation/core/currency"
	"github.com/goteo/foundation/core/flash"
	"github.com/goteo/foundation/core/health"
	"github.com/goteo/foundation/core/i18n"
	"github.com/goteo/foundation/core/kernel"
	"github.com/goteo/foundation/core/logger"
	"github.com/goteo/foundation/core/metrics"
	"github.com/goteo/foundation/core/response"
	"github.com/goteo/foundation/core/session"
	"github.com/goteo/foundation/core/view"
	"github.com/goteo/foundation/integration/database/redis"
	"github.com/goteo/foundation/middleware"
)

//go:embed translations
var translations embed.FS

type app struct {
	log        *slog.Logger
	store      session.Store
	sessions   *session.Manager
	languages  *i18n.I18n
	currencies *currency.Registry
	fragments  *cache.LRUCache[string, string]
	flash      *flash.Messenger
	metrics    *metrics.Metrics
	kernel     *kernel.Kernel
	themes     *view.Themes
	readiness  []func(context.Context) error
}

func newApp(cfg Config, client goredis.UniversalClient, log *slog.Logger) (*app, error) {
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return nil, fmt.Errorf("cookies: %w", err)
	}

	store, err := session.NewStoreFromConfig(cfg.Session, client)
	if err != nil {
		return nil, fmt.Errorf("sessions: %w", err)
	}

	files, err := fs.Sub(translations, "translations")
	if err != nil {
		return nil, err
	}
	languages, err := i18n.NewFromConfig(cfg.I18n,
		i18n.WithTranslationsFS(files),
		i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
			log.Debug("missing translation", slog.String("lang", lang), slog.String("namespace", namespace), slog.String("key", key))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("languages: %w", err)
	}

	currencies, err := currency.NewFromConfig(cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("currencies: %w", err)
	}

	a := &app{
		log:        log,
		store:      store,
		sessions:   session.NewManager(store, cookies, session.WithLogger(log)),
		languages:  languages,
		currencies: currencies,
		fragments:  cache.NewLRUCache[string, string](cfg.Cache.Size),
		flash:      flash.New(),
		metrics:    metrics.New(),
		themes:     &cfg.Theme,
	}

	caches := cache.Group{a.fragments}
	if client != nil {
		caches = append(caches, cache.NewRedisCache(client, cfg.Cache.RedisPrefix))
		a.readiness = append(a.readiness, redis.Healthcheck(client))
	}

	normalizer, err := middleware.NewRequestNormalizer(cfg.Normalizer, a.sessions, cookies, languages, currencies,
		middleware.WithNormalizerLogger(log),
		middleware.WithCache(caches),
		middleware.WithThemes(a.themes),
		middleware.WithMessenger(a.flash),
		middleware.WithMetrics(a.metrics),
	)
	if err != nil {
		return nil, err
	}

	security := middleware.BalancedSecurity
	security.IsDevelopment = cfg.Normalizer.Env == "local" || cfg.Normalizer.Env == "development"

	a.kernel = kernel.New(a.site(), kernel.WithLogger(log))
	a.kernel.Register(
		a.metrics,
		middleware.NewRequestID(middleware.RequestIDConfig{UseExisting: len(cfg.Normalizer.TrustedProxies) > 0}),
		normalizer,
		middleware.NewSecurityHeaders(security),
	)
	return a, nil
}

// site is the router behind the kernel.
func (a *app) site() http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/", kernel.Named("home", "HomeController::indexAction", response.HandlerFunc(a.home)))
	r.Method(http.MethodPost, middleware.NotifyPathPrefix+"{method}",
		kernel.Named("invest-notify", "InvestController::notifyPaymentAction", response.HandlerFunc(a.notify)))
	r.Method(http.MethodGet, "/user/logout", kernel.Named("user-logout", "UserController::logoutAction", response.HandlerFunc(a.logout)))
	r.NotFound(kernel.Named("not-found", "ErrorController::notFoundAction", response.HandlerFunc(a.notFound)).ServeHTTP)
	return r
}

// handler is the process entry point. Probes and metrics bypass the kernel
// so they never start sessions.
func (a *app) handler() http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/health/live", health.Liveness())
	r.Method(http.MethodGet, "/health/ready", health.Readiness(a.log, a.readiness...))
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	r.Handle("/*", a.kernel)

	return otelhttp.NewHandler(r, "http.server",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return !strings.HasPrefix(r.URL.Path, "/health/") && r.URL.Path != "/metrics"
		}),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func (a *app) home(r *http.Request) response.Response {
	ctx := r.Context()
	tr := a.translator(r)

	var (
		messages []flash.Message
		code     string
	)
	if sess, ok := session.FromContext(ctx); ok {
		var err error
		if messages, err = a.flash.Take(ctx, sess); err != nil {
			a.log.WarnContext(ctx, "take flash messages", logger.Error(err))
		}
		sess.Get(session.KeyCurrency, &code)
	}

	title := `<h1>` + html.EscapeString(tr.T("home.title")) + `</h1>`

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="` + tr.Language() + `">`)
	if a.themes.ActiveTheme(ctx) == view.ThemeResponsive {
		b.WriteString(`<body role="document">` + title)
	} else {
		b.WriteString(`<body><div id="header">` + title + `</div>`)
	}
	for _, m := range messages {
		b.WriteString(`<p class="message message-` + string(m.Level) + `">` + html.EscapeString(m.Text) + `</p>`)
	}
	b.WriteString(a.switcher(tr, a.currencies.Current(code)))
	b.WriteString(`</body></html>`)
	return response.HTML(b.String())
}

// switcher renders the language and currency pickers, cached per language
// and selected currency until the next ?cleancache.
func (a *app) switcher(tr *i18n.Translator, selected currency.Currency) string {
	key := tr.Language() + ":" + selected.ID
	if s, ok := a.fragments.Get(key); ok {
		return s
	}

	var b strings.Builder
	b.WriteString(`<nav><span>` + html.EscapeString(tr.T("home.language")) + `</span><ul>`)
	for _, lang := range a.languages.Languages() {
		b.WriteString(`<li><a href="?lang=` + lang + `">` + lang + `</a></li>`)
	}
	b.WriteString(`</ul><span>` + html.EscapeString(tr.T("home.currency")) + `</span><ul>`)
	for _, c := range a.currencies.All() {
		class := ""
		if c.ID == selected.ID {
			class = ` class="selected"`
		}
		b.WriteString(`<li` + class + `><a href="?currency=` + c.ID + `">` + html.EscapeString(c.Symbol) + `</a></li>`)
	}
	b.WriteString(`</ul></nav>`)

	s := b.String()
	a.fragments.Put(key, s)
	return s
}

// notify acknowledges payment gateway callbacks.
func (a *app) notify(r *http.Request) response.Response {
	method := chi.URLParam(r, "method")
	a.log.InfoContext(r.Context(), "payment notification", slog.String("method", method), logger.ClientIP(r.RemoteAddr))
	return response.String("OK")
}

// logout ends shadowing, returning to the administrator, or logs the user out.
func (a *app) logout(r *http.Request) response.Response {
	ctx := r.Context()
	if sess, ok := session.FromContext(ctx); ok {
		if by, shadowing := sess.ShadowedBy(); shadowing {
			if err := sess.Login(ctx, by.ID); err != nil {
				a.log.WarnContext(ctx, "restore shadowing admin", logger.Error(err))
			}
			if err := sess.Delete(ctx, session.KeyShadowedBy); err != nil {
				a.log.WarnContext(ctx, "end shadowing", logger.Error(err))
			}
		} else if err := sess.Logout(ctx); err != nil {
			a.log.WarnContext(ctx, "logout", logger.Error(err))
		}
	}
	return response.Redirect("/")
}

func (a *app) notFound(r *http.Request) response.Response {
	return response.HTMLWithStatus(`<!DOCTYPE html><html><body><div id="header"></div><h1>404</h1></body></html>`, http.StatusNotFound)
}

// translator returns the translator the normalizer resolved, or one for the
// default language on requests it skipped.
func (a *app) translator(r *http.Request) *i18n.Translator {
	if tr, ok := i18n.TranslatorFromContext(r.Context()); ok {
		return tr
	}
	return a.languages.Translator(a.languages.DefaultLanguage(), middleware.MessagesNamespace)
}
