package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cost is one recorded shop expense. Creating it withdraws from the cashbox;
// updating or deleting it reconciles the balance and the ledger entry it
// produced (linked via Transaction.ReferenceID).
type Cost struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	SellerName    string          `gorm:"column:sellername;index" json:"sellername"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"type:varchar(10);not null;default:'cash'" json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"-"`
}
