package list_class_types

import (
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/class-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListClassTypes(r.Context())
	if err != nil {
		h.logger.Error("GET /class-types - Failed to list class types: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /class-types - Retrieved %d class types", len(result.ClassTypes))
	handlers.RespondJSON(w, http.StatusOK, result)
}
