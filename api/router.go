package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	appMiddleware "github.com/prasetyowira/qrgen/api/middleware"
	"github.com/prasetyowira/qrgen/constant"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Router represents the application router
type Router struct {
	handler  *Handler
	router   *chi.Mux
	username string
	password string
	log      *appLogger.Logger
}

// NewRouter creates a new router
func NewRouter(handler *Handler, username, password string, log *appLogger.Logger) *Router {
	r := chi.NewRouter()

	// Middleware setup
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appMiddleware.RequestLogger(log))

	return &Router{
		handler:  handler,
		router:   r,
		username: username,
		password: password,
		log:      log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	r.log.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	creds := map[string]string{
		r.username: r.password,
	}

	// History behind Basic Auth
	r.router.With(
		middleware.BasicAuth("qrgen", creds),
	).Get(constant.RouteHistory, r.handler.GetHistory)

	// Public routes
	r.router.Get(constant.RouteGenerateQR, r.handler.GenerateQR)

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, req *http.Request) {
		r.log.CtxDebug(req.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
