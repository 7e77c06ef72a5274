package models

const (
	RegimenMaintenance = "maintenance"
	RegimenTapering    = "tapering"
	RegimenTitration   = "titration"
)

// RegimenHistory records one medication-management phase. At most one record
// is active at any time; declaring a new phase deactivates the previous one
// in the same transaction. Records are kept forever for reporting.
type RegimenHistory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	StartDate   string `gorm:"index;not null" json:"startDate"`
	Type        string `gorm:"not null" json:"type"`
	Description string `gorm:"not null" json:"description"`
	IsActive    bool   `gorm:"index;not null" json:"isActive"`
	CreatedAt   int64  `gorm:"autoCreateTime:false" json:"createdAt"`
}

func (RegimenHistory) TableName() string {
	return TableRegimenHistory
}
