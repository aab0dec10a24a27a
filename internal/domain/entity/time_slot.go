package entity

import "time"

// TimeSlot is a configurable delivery window for a tenant.
// Capacity zero means unlimited.
type TimeSlot struct {
	ID        string
	TenantID  string
	Label     string // e.g. "12:00 - 14:00"
	StartTime string // "HH:MM", local to the tenant
	EndTime   string // "HH:MM"
	Capacity  int    // max orders per day in this slot; 0 = unlimited
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
