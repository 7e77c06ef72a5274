package models

// Table names as they exist in the SQLite schema. Live query subscriptions
// and transaction scopes refer to collections by these names.
const (
	TableDayLogs        = "day_logs"
	TableEventLogs      = "event_logs"
	TableRegimenHistory = "regimen_history"
	TableSettings       = "settings"
	TableClinics        = "clinics"
	TableClinicVisits   = "clinic_visits"
	TableMedicines      = "medicines"
)

// AllTables lists every collection, in bulk export order.
func AllTables() []string {
	return []string{
		TableDayLogs,
		TableEventLogs,
		TableRegimenHistory,
		TableSettings,
		TableClinics,
		TableClinicVisits,
		TableMedicines,
	}
}
