package postgres

import (
	"gorm.io/gorm"

	permitDatamodel "github.com/dcampelo/permit-management/internal/core/datamodel/permit"
	"github.com/dcampelo/permit-management/internal/permit"
)

// PermitRepository implements permit.RepositoryAPI using GORM.
type PermitRepository struct {
	db *gorm.DB
}

func NewPermitRepository(db *gorm.DB) *PermitRepository {
	return &PermitRepository{db: db}
}

func (r *PermitRepository) Create(p *permit.WorkPermit) error {
	record := permit.ToDataModel(p)
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	p.ID = record.ID
	p.CreatedAt = record.CreatedAt
	return nil
}

func (r *PermitRepository) GetByID(id int64) (*permit.WorkPermit, error) {
	var record permitDatamodel.WorkPermit
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return permit.FromDataModel(&record), nil
}

func (r *PermitRepository) GetAll() ([]*permit.WorkPermit, error) {
	var records []*permitDatamodel.WorkPermit
	if err := r.db.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return permit.FromDataModelSlice(records), nil
}

// GetAllWithResponsible joins permits with the users table. The inner join
// drops permits whose responsible user no longer exists.
func (r *PermitRepository) GetAllWithResponsible() ([]*permit.PermitWithResponsible, error) {
	query := `
SELECT
  wp.id,
  wp.worker,
  wp.sector,
  wp.activity,
  wp.location,
  wp.permit_date,
  wp.status,
  u.name AS responsible_name
FROM work_permits wp
JOIN users u ON wp.responsible_user_id = u.id
ORDER BY wp.id ASC`

	rows, err := r.db.Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*permit.PermitWithResponsible
	for rows.Next() {
		var row permit.PermitWithResponsible
		if err := rows.Scan(
			&row.ID,
			&row.Worker,
			&row.Sector,
			&row.Activity,
			&row.Location,
			&row.PermitDate,
			&row.Status,
			&row.ResponsibleName,
		); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Exists reports whether the permit id resolves to a stored record. Used by
// the APR registry before attaching a checklist.
func (r *PermitRepository) Exists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&permitDatamodel.WorkPermit{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
