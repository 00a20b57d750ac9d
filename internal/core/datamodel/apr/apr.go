package apr

import "time"

type AprChecklist struct {
	ID        int64     `gorm:"primaryKey"`
	PermitID  int64     `gorm:"column:permit_id;not null"`
	Checklist string    `gorm:"column:checklist;type:jsonb;not null"`
	AprDate   time.Time `gorm:"column:apr_date;type:date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AprChecklist) TableName() string {
	return "apr_checklists"
}
