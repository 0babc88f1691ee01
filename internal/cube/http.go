package cube

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/haletran/cubewright/internal/platform/request"
	"github.com/haletran/cubewright/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.assemble)
	router.Post("/export", handler.export)
}

// Routes returns a mountable router for the cube endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

// assembleRequest is the JSON body shared by both cube endpoints.
type assembleRequest struct {
	Selection
	Mode Mode `json:"mode"`
}

// mode returns the requested draft mode, defaulting to automated drafts.
func (r assembleRequest) mode() Mode {
	if r.Mode == "" {
		return ModeAutomated
	}
	return r.Mode
}

// assemble handles POST /cubes: assemble a cube and return it as JSON
// together with its session capacity plan.
func (handler *Handler) assemble(writer http.ResponseWriter, request *http.Request) {
	var body assembleRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Assemble(request.Context(), body.Selection, body.mode())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// export handles POST /cubes/export: assemble a cube and return the
// Draftmancer plain-text document as a download.
func (handler *Handler) export(writer http.ResponseWriter, request *http.Request) {
	var body assembleRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.service.Export(request.Context(), body.Selection, body.mode())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.PlainText(writer, "cube.txt", document)
}
