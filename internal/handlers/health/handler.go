package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"inn/infras/otel"
	"inn/infras/postgres"
	"inn/shared/constant"
	"inn/transport/http/response"
)

type Handler struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Handler {
	return Handler{
		db:   db,
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/health", func(r chi.Router) {
		r.Get("/", handler.Health)
		r.Get("/ready", handler.Ready)
	})
}

// Health reports process liveness.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.WithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the database is reachable.
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Ready")
	defer scope.End()

	var one int
	if err := handler.db.Read.GetContext(ctx, &one, "SELECT 1"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("readiness check failed")

		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
