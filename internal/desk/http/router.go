package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/i18n"
	"github.com/aussiebroadwan/agentdesk/internal/desk/metrics"
	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
	"github.com/aussiebroadwan/agentdesk/pkg/httpx"
	"github.com/aussiebroadwan/agentdesk/pkg/jwtx"
	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
	"github.com/aussiebroadwan/agentdesk/pkg/tracex"

	_ "github.com/aussiebroadwan/agentdesk/api/desk" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	tokens       *jwtx.Issuer
	metrics      *metrics.Metrics
	clock        service.Clock
	resp         *responder

	AuthService      *service.AuthService
	AgentService     *service.AgentService
	ClientService    *service.ClientService
	MFAService       *service.MFAService
	BootstrapService *service.BootstrapService
	DashboardService *service.DashboardService
}

func NewRouter(
	st store.Store,
	tokens *jwtx.Issuer,
	tr *i18n.Translator,
	m *metrics.Metrics,
	clock service.Clock,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		tokens:       tokens,
		metrics:      m,
		clock:        clock,
		resp:         &responder{tr: tr},
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// Use appends global middleware. The first middleware added is outermost.
func (r *Router) Use(mws ...httpx.Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

func (r *Router) ApplyRoutes() {
	r.registerBootstrap()
	r.registerAuth()
	r.registerMe()
	r.registerMFA()
	r.registerAgents()
	r.registerClients()
	r.registerDates()
	r.registerDashboard()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			AgentDesk API
//	@version		0.1.0
//	@description	Subscription management for sales agents and their clients.
//	@description
//	@description				Error descriptions are localized from X-Lang or Accept-Language (ar, en).
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/agentdesk
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from /v1/auth/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern with a span and per-route metrics, both
// named by pattern.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	h = r.metrics.Instrument(pattern, httpx.Chain(h, mws...))
	r.Mux.Handle(pattern, tracex.Middleware(pattern)(h))
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.authenticate, r.resp.fail)
}

func (r *Router) adminOnly() httpx.Middleware {
	return httpx.RequireRole(r.resp.fail, string(domain.RoleAdmin))
}

func (r *Router) byIP(cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimitByIP(cfg, httpx.OnLimited(r.resp.fail))
}

func (r *Router) byUser(cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimitByUser(cfg, httpx.OnLimited(r.resp.fail))
}

func (r *Router) registerBootstrap() {
	h := &BootstrapHandler{BootstrapService: r.BootstrapService, resp: r.resp}

	// One-time setup: very strict by IP
	r.handle("POST /v1/bootstrap", h, r.byIP(httpx.StrictLimit))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, AgentService: r.AgentService, resp: r.resp}

	r.handle("POST /v1/auth/register", http.HandlerFunc(h.HandleRegister),
		r.byIP(httpx.StrictLimit),
	)

	// Login attempts are limited per address and per e-mail
	r.handle("POST /v1/auth/login", http.HandlerFunc(h.HandleLogin),
		httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email", httpx.OnLimited(r.resp.fail)),
	)

	r.handle("GET /.well-known/jwks.json", JWKSHandler(r.tokens), r.byIP(httpx.PublicLimit))
}

func (r *Router) registerMe() {
	h := &AuthHandler{AuthService: r.AuthService, AgentService: r.AgentService, resp: r.resp}

	r.handle("GET /v1/me", http.HandlerFunc(h.HandleMe),
		r.authn(),
		r.byUser(httpx.LenientLimit),
	)
	r.handle("PATCH /v1/me", http.HandlerFunc(h.HandleUpdateMe),
		r.authn(),
		r.byUser(httpx.ModerateLimit),
	)
	r.handle("PUT /v1/me/password", http.HandlerFunc(h.HandleChangePassword),
		r.authn(),
		r.byUser(httpx.StrictLimit),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService, resp: r.resp}

	r.handle("POST /v1/mfa/totp/enroll", http.HandlerFunc(h.HandleEnroll),
		r.authn(),
		r.byUser(httpx.ModerateLimit),
	)

	// Code checks are strict to prevent brute force of TOTP codes
	r.handle("POST /v1/mfa/totp/verify", http.HandlerFunc(h.HandleVerify),
		r.authn(),
		r.byUser(httpx.StrictLimit),
	)
	r.handle("DELETE /v1/mfa/totp", http.HandlerFunc(h.HandleDisable),
		r.authn(),
		r.byUser(httpx.StrictLimit),
	)
}

func (r *Router) registerAgents() {
	h := &AgentsHandler{AgentService: r.AgentService, resp: r.resp}

	admin := func(pattern string, fn http.HandlerFunc, cfg httpx.RateLimitConfig) {
		r.handle(pattern, fn, r.authn(), r.adminOnly(), r.byUser(cfg))
	}

	admin("GET /v1/agents", h.HandleList, httpx.LenientLimit)
	admin("POST /v1/agents", h.HandleCreate, httpx.ModerateLimit)
	admin("GET /v1/agents/pending", h.HandlePending, httpx.LenientLimit)
	admin("GET /v1/agents/{id}", h.HandleGet, httpx.LenientLimit)
	admin("PATCH /v1/agents/{id}", h.HandleUpdate, httpx.ModerateLimit)
	admin("DELETE /v1/agents/{id}", h.HandleDelete, httpx.ModerateLimit)
	admin("POST /v1/agents/{id}/approve", h.HandleApprove, httpx.ModerateLimit)
	admin("POST /v1/agents/{id}/reject", h.HandleReject, httpx.ModerateLimit)
	admin("POST /v1/agents/{id}/reopen", h.HandleReopen, httpx.ModerateLimit)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService, resp: r.resp}

	session := func(pattern string, fn http.HandlerFunc, cfg httpx.RateLimitConfig) {
		r.handle(pattern, fn, r.authn(), r.byUser(cfg))
	}

	session("GET /v1/clients", h.HandleList, httpx.LenientLimit)
	session("POST /v1/clients", h.HandleCreate, httpx.ModerateLimit)
	session("GET /v1/clients/{id}", h.HandleGet, httpx.LenientLimit)
	session("PATCH /v1/clients/{id}", h.HandleUpdate, httpx.ModerateLimit)
	session("DELETE /v1/clients/{id}", h.HandleDelete, httpx.ModerateLimit)
	session("POST /v1/clients/{id}/renew", h.HandleRenew, httpx.ModerateLimit)
	session("GET /v1/clients/{id}/status", h.HandleStatus, httpx.LenientLimit)

	// Reassignment between agents is an admin operation
	r.handle("POST /v1/clients/{id}/transfer", http.HandlerFunc(h.HandleTransfer),
		r.authn(),
		r.adminOnly(),
		r.byUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerDates() {
	h := &DatesHandler{ClientService: r.ClientService, resp: r.resp}

	r.handle("POST /v1/dates/validate", http.HandlerFunc(h.HandleValidate),
		r.authn(),
		r.byUser(httpx.LenientLimit),
	)
	r.handle("POST /v1/plans/end-date", http.HandlerFunc(h.HandleEndDate),
		r.authn(),
		r.byUser(httpx.LenientLimit),
	)
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{DashboardService: r.DashboardService, clock: r.clock, resp: r.resp}

	r.handle("GET /v1/dashboard", h, r.authn(), r.byUser(httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints: monitoring systems may poll frequently
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion), r.byIP(httpx.LenientLimit))
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.tokens), r.byIP(httpx.LenientLimit))

	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
