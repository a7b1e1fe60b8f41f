package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted everywhere a method is required.
const (
	MethodCash = "cash"
	MethodCard = "card"
	MethodBank = "bank"
)

// ValidMethod reports whether m is one of cash/card/bank.
func ValidMethod(m string) bool {
	return m == MethodCash || m == MethodCard || m == MethodBank
}

// Transaction types.
const (
	TxIncome  = "income"
	TxExpense = "expense"
)

// Cashbox is the single balance store for the shop: one row per deployment,
// created lazily on first use and never deleted. Balances mutate only via
// atomic SQL increments so concurrent writers serialize per column.
type Cashbox struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CashBalance decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"cashBalance"`
	CardBalance decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"cardBalance"`
	BankBalance decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"bankBalance"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`

	Transactions []Transaction `gorm:"foreignKey:CashboxID" json:"transactions"`
}

// BalanceColumn returns the cashbox column name for a payment method.
// Callers must validate the method first.
func BalanceColumn(method string) string {
	switch method {
	case MethodCard:
		return "card_balance"
	case MethodBank:
		return "bank_balance"
	default:
		return "cash_balance"
	}
}

// Transaction is one signed, categorized entry in the cashbox ledger.
// Invariant: after any successful operation, each balance equals the signed
// sum (income +, expense -) of surviving transactions of that method.
// Entries are immutable; the only removal path is the explicit reversal,
// which also applies the inverse balance delta.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	CashboxID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	Type          string          `gorm:"type:varchar(10);not null" json:"type"` // income | expense
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	Description   string          `json:"description"`
	// RelatedClientID points at the client a sale/debt entry belongs to.
	RelatedClientID *uuid.UUID `gorm:"type:uuid" json:"relatedClientId,omitempty"`
	// ReferenceID links the entry to the Payment, Cost or Handover that
	// produced it, so compound updates can replace exactly their own entries.
	ReferenceID *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Date        time.Time  `gorm:"not null;index" json:"date"`
}

// SignedAmount is the entry's effect on its balance: income +, expense -.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TxExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
