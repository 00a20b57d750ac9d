package permit

import (
	"time"

	errors "github.com/dcampelo/permit-management/internal"
	"github.com/dcampelo/permit-management/internal/core/common/validation"
)

// IssuePermitDTO is the request payload for issuing a permit. The date comes
// over the wire as "2006-01-02".
type IssuePermitDTO struct {
	Worker            string `json:"worker"`
	Sector            string `json:"sector"`
	Activity          string `json:"activity"`
	Date              string `json:"date"`
	Status            string `json:"status"`
	Location          string `json:"location"`
	ResponsibleUserID int64  `json:"responsible_user_id"`
}

func (dto IssuePermitDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("worker", dto.Worker).Required().MaxLength(120)
	v.Field("sector", dto.Sector).Required().MaxLength(120)
	v.Field("activity", dto.Activity).Required().MaxLength(255)
	v.Field("location", dto.Location).Required().MaxLength(255)
	v.Field("status", dto.Status).Required().MaxLength(60)
	v.Field("date", dto.Date).Required()
	v.Field("responsible_user_id", dto.ResponsibleUserID).Required()
	if err := v.Validate(); err != nil {
		return err
	}

	if _, err := dto.ParsedDate(); err != nil {
		return errors.NewValidationFieldError("date", "date must be in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
	}
	return nil
}

func (dto IssuePermitDTO) ParsedDate() (time.Time, error) {
	return time.Parse(time.DateOnly, dto.Date)
}
