package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"barber-booking/internal/dto/request"
	"barber-booking/internal/usecase"
	"barber-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetDaySlots handles GET /api/availability?date=YYYY-MM-DD (public)
func (h *AvailabilityHandler) GetDaySlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Query parameter 'date' is required", nil)
		return
	}

	day, err := h.service.GetDaySlots(r.Context(), date)
	if err != nil {
		handleServiceError(w, h.log, err, "get day slots")
		return
	}

	utils.ResponseSuccess(w, "success", day)
}

// ==================== ADMIN: OVERRIDES ====================

// ListOverrides handles GET /api/admin/availability (admin only)
func (h *AvailabilityHandler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.service.ListOverrides(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list overrides")
		return
	}

	utils.ResponseSuccess(w, "success", overrides)
}

// CreateOverride handles POST /api/admin/availability (admin only)
func (h *AvailabilityHandler) CreateOverride(w http.ResponseWriter, r *http.Request) {
	var req request.AvailabilityOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	override, err := h.service.CreateOverride(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create override")
		return
	}

	utils.ResponseCreated(w, "success", override)
}

// UpdateOverride handles PUT /api/admin/availability/{id} (admin only)
func (h *AvailabilityHandler) UpdateOverride(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req request.AvailabilityOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	override, err := h.service.UpdateOverride(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update override")
		return
	}

	utils.ResponseSuccess(w, "success", override)
}

// DeleteOverride handles DELETE /api/admin/availability/{id} (admin only)
func (h *AvailabilityHandler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteOverride(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete override")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ==================== ADMIN: RECURRING RULES ====================

// ListRecurringRules handles GET /api/admin/recurring (admin only)
func (h *AvailabilityHandler) ListRecurringRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.ListRecurringRules(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list recurring rules")
		return
	}

	utils.ResponseSuccess(w, "success", rules)
}

// CreateRecurringRule handles POST /api/admin/recurring (admin only)
func (h *AvailabilityHandler) CreateRecurringRule(w http.ResponseWriter, r *http.Request) {
	var req request.RecurringRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rule, err := h.service.CreateRecurringRule(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create recurring rule")
		return
	}

	utils.ResponseCreated(w, "success", rule)
}

// UpdateRecurringRule handles PUT /api/admin/recurring/{id} (admin only)
func (h *AvailabilityHandler) UpdateRecurringRule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req request.RecurringRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rule, err := h.service.UpdateRecurringRule(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update recurring rule")
		return
	}

	utils.ResponseSuccess(w, "success", rule)
}

// DeleteRecurringRule handles DELETE /api/admin/recurring/{id} (admin only)
func (h *AvailabilityHandler) DeleteRecurringRule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteRecurringRule(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete recurring rule")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		utils.ResponseBadRequest(w, "Invalid ID", nil)
		return 0, false
	}
	return id, true
}
