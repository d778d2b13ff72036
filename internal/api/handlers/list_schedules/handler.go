package list_schedules

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/catalog"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidID     = "некорректный ID в параметрах фильтра"
	msgInvalidPeriod = "конец периода раньше его начала"
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

// Handle GET /api/v1/schedules?from=2026-08-29&to=2026-09-05&classTypeId=1&instructorId=2&available=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("GET /schedules - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.ListSchedules(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /schedules - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /schedules - Failed to list schedules: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedules - Retrieved %d schedules", len(result.Schedules))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseFilter разбирает query-параметры в domain фильтр
// Публичная витрина всегда отдаёт только активные расписания
func parseFilter(r *http.Request) (domain.ScheduleFilter, error) {
	filter := domain.ScheduleFilter{OnlyActive: true}
	q := r.URL.Query()

	if v := q.Get("from"); v != "" {
		from, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return filter, errors.New(msgInvalidDate)
		}
		filter.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return filter, errors.New(msgInvalidDate)
		}
		// Включаем весь день "to": фильтр сравнивает по началу занятия
		to = to.Add(24 * time.Hour)
		filter.To = &to
	}
	if v := q.Get("classTypeId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return filter, errors.New(msgInvalidID)
		}
		filter.ClassTypeID = &id
	}
	if v := q.Get("instructorId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return filter, errors.New(msgInvalidID)
		}
		filter.InstructorID = &id
	}
	if v := q.Get("onlyAvailable"); v == "true" {
		filter.OnlyAvailable = true
	}

	return filter, nil
}
