// Package revenue holds the taxpayer revenue records: returns, payments,
// assessments and notices. Records are append-only; there is no update or
// delete path.
package revenue

import "time"

// Tax return statuses.
const (
	ReturnPending = "Pending"
	ReturnFiled   = "Filed"
)

// Payment statuses.
const (
	PaymentCompleted = "Completed"
	PaymentPending   = "Pending"
	PaymentOverdue   = "Overdue"
)

// Assessment statuses.
const (
	AssessmentUnpaid = "Unpaid"
	AssessmentPaid   = "Paid"
)

// TaxReturn is one filing obligation for a tax year and type.
type TaxReturn struct {
	ID         int64
	TPIN       string
	TaxYear    int
	TaxType    string
	Status     string
	FilingDate *time.Time
	DueDate    time.Time
}

// Payment is one received payment.
type Payment struct {
	ID     int64
	TPIN   string
	Amount float64
	PaidAt time.Time
	Method string
	Status string
}

// Assessment is an amount the authority has assessed against a taxpayer.
type Assessment struct {
	ID     int64
	TPIN   string
	Amount float64
	Status string
}

// Notice is a message issued to a taxpayer.
type Notice struct {
	ID        int64
	TPIN      string
	Type      string
	Message   string
	CreatedAt time.Time
}

// MonthlyRevenue is one month of collected payments for the analytics page.
type MonthlyRevenue struct {
	Month time.Time
	Total float64
}
