package list_credit_packages

import (
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
)

type Logger interface {
	Info(format string, v ...interface{})
}

// PackageResponse HTTP response model пакета кредитов
type PackageResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Credits int     `json:"credits"`
	Price   float64 `json:"price"`
	Popular bool    `json:"popular"`
}

// PackageListResponse HTTP response model списка пакетов
type PackageListResponse struct {
	Packages []PackageResponse `json:"packages"`
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/credit-packages
// Пакеты статичны, поэтому отдаются без похода в БД
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp := PackageListResponse{
		Packages: make([]PackageResponse, 0, len(domain.CreditPackages)),
	}
	for _, pkg := range domain.CreditPackages {
		resp.Packages = append(resp.Packages, PackageResponse{
			ID:      pkg.ID,
			Name:    pkg.Name,
			Credits: pkg.Credits,
			Price:   pkg.Price,
			Popular: pkg.Popular,
		})
	}

	h.logger.Info("GET /credit-packages - Retrieved %d packages", len(resp.Packages))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
