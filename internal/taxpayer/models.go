package taxpayer

import "time"

// Taxpayer statuses as stored in the taxpayers table.
const (
	StatusActive    = "Active"
	StatusDormant   = "Dormant"
	StatusSuspended = "Suspended"
)

// Taxpayer types.
const (
	TypeIndividual = "Individual"
	TypeBusiness   = "Business"
)

// Individual is a registered individual taxpayer. TPINHash is the bcrypt hash
// of the TPIN credential and is never serialized.
type Individual struct {
	ID        int64
	TPIN      string
	FirstName string
	LastName  string
	Email     string
	TPINHash  string `json:"-"`
}

// FullName renders the display name used in the portal header.
func (i Individual) FullName() string {
	return i.FirstName + " " + i.LastName
}

// Business is a registered business taxpayer.
type Business struct {
	ID       int64
	TPIN     string
	Name     string
	Email    string
	TPINHash string `json:"-"`
}

// StatusCounts summarizes the taxpayer register for the admin pages.
type StatusCounts struct {
	Total     int
	Active    int
	Dormant   int
	Suspended int
}

// ComplianceRate is the active share of the register, in percent, rounded to
// one decimal. Zero taxpayers yields 0, never a division error.
func (c StatusCounts) ComplianceRate() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(int(float64(c.Active)/float64(c.Total)*1000+0.5)) / 10
}

// DirectoryEntry is one row of the admin taxpayer directory.
type DirectoryEntry struct {
	TPIN         string
	Name         string
	Email        string
	TaxpayerType string
	Registered   time.Time
	Status       string
}
