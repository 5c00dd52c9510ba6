package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/makazi-lab/makazi/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     UseCase
}

func New(uc UseCase) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(corsMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/", rootHandler())
	r.Get("/health", healthHandler(uc))

	r.Post("/chat", chatHandler(uc))
	r.Post("/property/search", propertySearchHandler(uc))

	r.Get("/market/analysis/{location}", marketAnalysisHandler(uc))
	r.Get("/properties/price-estimate", priceEstimateHandler(uc))

	r.Route("/knowledge", func(r chi.Router) {
		r.Get("/status", knowledgeStatusHandler(uc))
		r.Post("/reload", knowledgeReloadHandler(uc))
	})

	r.Get("/conversation/{conversationID}", conversationHistoryHandler(uc))
	r.Delete("/conversation/{conversationID}", clearConversationHandler(uc))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
