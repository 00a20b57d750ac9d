package permit

import "time"

type WorkPermit struct {
	ID                int64     `gorm:"primaryKey"`
	Worker            string    `gorm:"column:worker;not null"`
	Sector            string    `gorm:"column:sector;not null"`
	Activity          string    `gorm:"column:activity;not null"`
	Location          string    `gorm:"column:location;not null"`
	PermitDate        time.Time `gorm:"column:permit_date;type:date;not null"`
	Status            string    `gorm:"column:status;not null"`
	ResponsibleUserID int64     `gorm:"column:responsible_user_id;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (WorkPermit) TableName() string {
	return "work_permits"
}
