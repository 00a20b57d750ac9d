package permit

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dcampelo/permit-management/internal/transport"
	"github.com/dcampelo/permit-management/pkg/logger"
)

type ServiceAPI interface {
	Issue(dto IssuePermitDTO) (*WorkPermit, error)
	List() ([]*WorkPermit, error)
	ListWithResponsible() ([]*PermitWithResponsible, error)
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

func (h *Handler) IssuePermit(w http.ResponseWriter, r *http.Request) {
	var dto IssuePermitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("IssuePermit: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Issue(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, p)
}

// ListPermits serves the joined listing: permit fields plus the responsible
// user's name.
func (h *Handler) ListPermits(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListWithResponsible()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if rows == nil {
		rows = []*PermitWithResponsible{}
	}
	h.WriteJSON(w, http.StatusOK, rows)
}

// ListPermitsRaw serves the unjoined records.
func (h *Handler) ListPermitsRaw(w http.ResponseWriter, r *http.Request) {
	permits, err := h.Service.List()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if permits == nil {
		permits = []*WorkPermit{}
	}
	h.WriteJSON(w, http.StatusOK, permits)
}
