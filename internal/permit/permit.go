package permit

import (
	"time"

	permitDatamodel "github.com/dcampelo/permit-management/internal/core/datamodel/permit"
)

// WorkPermit authorizes a worker to perform an activity at a sector/location
// on a given date, under the responsibility of a stored user. Status is an
// opaque caller-supplied label; no transition set is enforced.
type WorkPermit struct {
	ID                int64     `json:"id"`
	Worker            string    `json:"worker"`
	Sector            string    `json:"sector"`
	Activity          string    `json:"activity"`
	Location          string    `json:"location"`
	PermitDate        time.Time `json:"date"`
	Status            string    `json:"status"`
	ResponsibleUserID int64     `json:"responsible_user_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// PermitWithResponsible is the read-side join row: permit fields enriched
// with the responsible user's display name. Permits whose responsible user
// has been deleted do not produce a row (inner-join semantics).
type PermitWithResponsible struct {
	ID              int64     `json:"id"`
	Worker          string    `json:"worker"`
	Sector          string    `json:"sector"`
	Activity        string    `json:"activity"`
	Location        string    `json:"location"`
	PermitDate      time.Time `json:"date"`
	Status          string    `json:"status"`
	ResponsibleName string    `json:"responsible_name"`
}

func ToDataModel(p *WorkPermit) *permitDatamodel.WorkPermit {
	return &permitDatamodel.WorkPermit{
		ID:                p.ID,
		Worker:            p.Worker,
		Sector:            p.Sector,
		Activity:          p.Activity,
		Location:          p.Location,
		PermitDate:        p.PermitDate,
		Status:            p.Status,
		ResponsibleUserID: p.ResponsibleUserID,
		CreatedAt:         p.CreatedAt,
	}
}

func FromDataModel(p *permitDatamodel.WorkPermit) *WorkPermit {
	return &WorkPermit{
		ID:                p.ID,
		Worker:            p.Worker,
		Sector:            p.Sector,
		Activity:          p.Activity,
		Location:          p.Location,
		PermitDate:        p.PermitDate,
		Status:            p.Status,
		ResponsibleUserID: p.ResponsibleUserID,
		CreatedAt:         p.CreatedAt,
	}
}

func FromDataModelSlice(permits []*permitDatamodel.WorkPermit) []*WorkPermit {
	result := make([]*WorkPermit, len(permits))
	for i, p := range permits {
		result[i] = FromDataModel(p)
	}
	return result
}
