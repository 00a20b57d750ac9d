package apr

import (
	"encoding/json"
	"time"

	aprDatamodel "github.com/dcampelo/permit-management/internal/core/datamodel/apr"
)

// AprChecklist is a risk-assessment checklist attached to a work permit.
// The checklist body is caller-defined JSON (question -> answer); the
// registry stores it opaquely. A permit may accumulate several checklists.
type AprChecklist struct {
	ID        int64           `json:"id"`
	PermitID  int64           `json:"permit_id"`
	Checklist json.RawMessage `json:"checklist"`
	AprDate   time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

func ToDataModel(a *AprChecklist) *aprDatamodel.AprChecklist {
	return &aprDatamodel.AprChecklist{
		ID:        a.ID,
		PermitID:  a.PermitID,
		Checklist: string(a.Checklist),
		AprDate:   a.AprDate,
		CreatedAt: a.CreatedAt,
	}
}

func FromDataModel(a *aprDatamodel.AprChecklist) *AprChecklist {
	return &AprChecklist{
		ID:        a.ID,
		PermitID:  a.PermitID,
		Checklist: json.RawMessage(a.Checklist),
		AprDate:   a.AprDate,
		CreatedAt: a.CreatedAt,
	}
}

func FromDataModelSlice(checklists []*aprDatamodel.AprChecklist) []*AprChecklist {
	result := make([]*AprChecklist, len(checklists))
	for i, a := range checklists {
		result[i] = FromDataModel(a)
	}
	return result
}
