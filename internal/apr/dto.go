package apr

import (
	"bytes"
	"encoding/json"
	"time"

	errors "github.com/dcampelo/permit-management/internal"
	"github.com/dcampelo/permit-management/internal/core/common/validation"
)

// AttachChecklistDTO is the request payload for attaching a checklist to a
// permit. The date comes over the wire as "2006-01-02".
type AttachChecklistDTO struct {
	PermitID  int64           `json:"permit_id"`
	Checklist json.RawMessage `json:"checklist"`
	Date      string          `json:"date"`
}

func (dto AttachChecklistDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("permit_id", dto.PermitID).Required()
	v.Field("checklist", []byte(dto.Checklist)).Required()
	v.Field("date", dto.Date).Required()
	if err := v.Validate(); err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(dto.Checklist)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || !json.Valid(trimmed) {
		return errors.NewValidationFieldError("checklist", "checklist must be a JSON document", errors.ErrCodeInvalidChecklist)
	}

	if _, err := dto.ParsedDate(); err != nil {
		return errors.NewValidationFieldError("date", "date must be in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
	}
	return nil
}

func (dto AttachChecklistDTO) ParsedDate() (time.Time, error) {
	return time.Parse(time.DateOnly, dto.Date)
}
