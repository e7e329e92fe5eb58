package handler

import (
	"net/http"

	"courtly/internal/tenants/service"
	apperrors "courtly/pkg/errors"
	httputil "courtly/pkg/http"
	"courtly/pkg/logger"
	"courtly/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type TenantHandler struct {
	service service.TenantService
	log     *logger.Logger
}

func NewTenantHandler(service service.TenantService, log *logger.Logger) *TenantHandler {
	return &TenantHandler{
		service: service,
		log:     log,
	}
}

func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.TenantCreate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	tenant, err := h.service.Create(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, tenant)
}

func (h *TenantHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, tenant)
}

func (h *TenantHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	active, err := httputil.ParseOptionalBool(r, "active")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.list(w, r, model.TenantFilter{Active: active}, limit, offset)
}

// Search lists tenants by tower and/or unit.
func (h *TenantHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	filter := model.TenantFilter{
		Tower: query.Get("tower"),
		Unit:  query.Get("unit"),
	}
	if filter.Tower == "" && filter.Unit == "" {
		httputil.WriteError(w, apperrors.InvalidInput("at least one of 'tower' or 'unit' query parameters is required"))
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.list(w, r, filter, limit, offset)
}

func (h *TenantHandler) list(w http.ResponseWriter, r *http.Request, filter model.TenantFilter, limit int, offset int64) {
	tenants, total, err := h.service.GetAll(r.Context(), filter, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, tenants, total, limit, offset)
}

func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.TenantUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	tenant, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, tenant)
}

func (h *TenantHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *TenantHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/tenants", h.Create)
	router.GET("/api/v1/tenants", h.GetAll)
	router.GET("/api/v1/tenants/search", h.Search)
	router.GET("/api/v1/tenants/id/:id", h.GetByID)
	router.PATCH("/api/v1/tenants/id/:id", h.Update)
	router.DELETE("/api/v1/tenants/id/:id", h.Delete)
}
