package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// DateFormat is the wire format for all calendar dates. Dates are stored as
// DATE columns and carry no time or timezone component.
const DateFormat = "2006-01-02"
