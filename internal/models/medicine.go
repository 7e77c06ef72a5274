package models

const (
	MedicineRegular = "regular"
	MedicinePRN     = "prn"
)

// Medicine is a prescribed medicine catalog entry, consumed by report
// aggregation and quick-log label sourcing.
type Medicine struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"index;not null" json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Type      string `gorm:"index;not null" json:"type"`
	DailyDose string `json:"dailyDose,omitempty"`
	UpdatedAt int64  `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (Medicine) TableName() string {
	return TableMedicines
}
