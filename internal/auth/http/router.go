package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hexfray/authd/internal/auth/service"
	"github.com/hexfray/authd/internal/auth/store"
	"github.com/hexfray/authd/pkg/httpx"
	"github.com/hexfray/authd/pkg/jwtx"
	"github.com/hexfray/authd/pkg/slogx"

	_ "github.com/hexfray/authd/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Default middleware chain applied to every route.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title						Authd User Registration & Authentication API
//	@version					0.1.0
//	@description				Minimal registration and authentication service: register with email and password,
//	@description				log in for a bearer token, and access token-guarded profile and write endpoints.
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /auth/register", &RegisterHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /auth/login", &LoginHandler{AuthService: r.AuthService})

	// Protected routes: the authn middleware rejects the request before the
	// handler runs, so the handlers only ever see verified principals.
	r.Mux.Handle("GET /auth/profile",
		httpx.Chain(&ProfileHandler{AuthService: r.AuthService},
			httpx.AuthnMiddleware(r.verifier),
		),
	)
	r.Mux.Handle("POST /auth/write",
		httpx.Chain(&WriteHandler{AuthService: r.AuthService},
			httpx.AuthnMiddleware(r.verifier),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
