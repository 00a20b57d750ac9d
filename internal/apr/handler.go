package apr

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/dcampelo/permit-management/internal/transport"
	"github.com/dcampelo/permit-management/pkg/logger"
)

type ServiceAPI interface {
	Attach(dto AttachChecklistDTO) (*AprChecklist, error)
	ListByPermit(permitID int64) ([]*AprChecklist, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// AttachChecklist accepts the permit id in the body (POST /apr).
func (h *Handler) AttachChecklist(w http.ResponseWriter, r *http.Request) {
	var dto AttachChecklistDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AttachChecklist: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.attach(w, dto)
}

// AttachChecklistForPermit takes the permit id from the URL
// (POST /permits/{id}/apr); a permit_id in the body is ignored.
func (h *Handler) AttachChecklistForPermit(w http.ResponseWriter, r *http.Request) {
	permitID, ok := h.permitID(w, r)
	if !ok {
		return
	}

	var dto AttachChecklistDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AttachChecklistForPermit: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dto.PermitID = permitID

	h.attach(w, dto)
}

func (h *Handler) attach(w http.ResponseWriter, dto AttachChecklistDTO) {
	a, err := h.Service.Attach(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

// ListForPermit serves GET /permits/{id}/apr.
func (h *Handler) ListForPermit(w http.ResponseWriter, r *http.Request) {
	permitID, ok := h.permitID(w, r)
	if !ok {
		return
	}

	checklists, err := h.Service.ListByPermit(permitID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if checklists == nil {
		checklists = []*AprChecklist{}
	}
	h.WriteJSON(w, http.StatusOK, checklists)
}

func (h *Handler) permitID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid permit ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid permit ID")
		return 0, false
	}
	return id, true
}
