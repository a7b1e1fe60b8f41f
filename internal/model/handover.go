package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handover states. The state machine is pending → completed (supervisor
// accepts) or pending → cancelled; both targets are terminal.
const (
	HandoverPending   = "pending"
	HandoverCompleted = "completed"
	HandoverCancelled = "cancelled"
)

// Handover is a two-party transfer of funds from an employee to a
// supervisor. Accepting it withdraws the amount from the cashbox and stamps
// the resulting expense transaction's ID.
type Handover struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"employeeId"`
	SupervisorID  uuid.UUID       `gorm:"type:uuid;index;not null" json:"supervisorId"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	Description   string          `json:"description"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	// TransactionID is set only on completion.
	TransactionID *uuid.UUID `gorm:"type:uuid" json:"transactionId,omitempty"`
	Date          time.Time  `gorm:"not null" json:"date"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}
