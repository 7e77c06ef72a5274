package models

// Clinic is a directory entry for a care provider.
type Clinic struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Department string `json:"department,omitempty"`
}

func (Clinic) TableName() string {
	return TableClinics
}

// ClinicVisit is a scheduled or completed visit. The clinic reference is by
// value; resolution is an explicit lookup.
type ClinicVisit struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Date        string `gorm:"index;not null" json:"date"`
	ClinicID    uint   `gorm:"index;not null" json:"clinicId"`
	Time        string `json:"time,omitempty"`
	Note        string `json:"note,omitempty"`
	IsCompleted bool   `gorm:"index;not null" json:"isCompleted"`
}

func (ClinicVisit) TableName() string {
	return TableClinicVisits
}
