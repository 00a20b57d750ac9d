package postgres

import (
	"gorm.io/gorm"

	"github.com/dcampelo/permit-management/internal/apr"
	aprDatamodel "github.com/dcampelo/permit-management/internal/core/datamodel/apr"
)

// AprRepository implements apr.RepositoryAPI using GORM.
type AprRepository struct {
	db *gorm.DB
}

func NewAprRepository(db *gorm.DB) apr.RepositoryAPI {
	return &AprRepository{db: db}
}

func (r *AprRepository) Create(a *apr.AprChecklist) error {
	record := apr.ToDataModel(a)
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	a.ID = record.ID
	a.CreatedAt = record.CreatedAt
	return nil
}

func (r *AprRepository) GetByPermitID(permitID int64) ([]*apr.AprChecklist, error) {
	var records []*aprDatamodel.AprChecklist
	if err := r.db.Where("permit_id = ?", permitID).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return apr.FromDataModelSlice(records), nil
}
