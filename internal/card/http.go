package card

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/haletran/cubewright/internal/platform/request"
	"github.com/haletran/cubewright/internal/platform/respond"
	"github.com/haletran/cubewright/pkg/convert"
	"github.com/haletran/cubewright/pkg/query"
)

type Handler struct {
	repository *Repository
}

func NewHandler(repository *Repository) *Handler {
	return &Handler{repository: repository}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPacks)
	router.Post("/refresh", handler.refresh)
}

// Routes returns a mountable router for the pack endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

// listPacks handles GET /packs. With ?refresh=true the pack listing cache
// is invalidated first so the response reflects the live source.
func (handler *Handler) listPacks(writer http.ResponseWriter, request *http.Request) {
	if convert.ToBool(requestutil.Query(request, "refresh")) {
		if err := handler.repository.Invalidate(request.Context(), ScopePacks); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	packs, err := handler.repository.Packs(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, packs)
}

// refresh handles POST /packs/refresh. The optional ?scopes= parameter
// lists pack codes (or "packs"/"all") to invalidate; it defaults to "all".
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	scopes := query.StringSlice(requestutil.Query(request, "scopes"))
	if len(scopes) == 0 {
		scopes = []string{ScopeAll}
	}

	for _, scope := range scopes {
		if err := handler.repository.Invalidate(request.Context(), scope); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	// Warm the pack listing so the caller learns immediately whether the
	// source is reachable, mirroring a manual cache-refresh action.
	packs, err := handler.repository.Packs(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"refreshed_scopes": scopes,
		"pack_count":       len(packs),
	})
}
