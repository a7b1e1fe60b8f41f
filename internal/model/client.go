package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is a shop customer with a bonus counter and an outstanding-debt list.
// The sum of Debts[].Amount is the client's outstanding debt; debt payments
// reduce it strictly oldest-first.
type Client struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	Firstname string     `gorm:"not null;index" json:"firstname"`
	Phone     string     `gorm:"uniqueIndex;not null" json:"phone"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	Address   *string    `json:"address,omitempty"`
	// ReferralCode is generated at registration (8 chars, unique).
	ReferralCode string `gorm:"uniqueIndex" json:"referralCode"`
	// Bonus may go negative when a cashback spend exceeds the balance;
	// no floor is enforced.
	Bonus     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"bonus"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"-"`

	Debts []Debt `gorm:"foreignKey:ClientID" json:"debts"`
}

// TotalDebt sums the outstanding debt entries.
func (c *Client) TotalDebt() decimal.Decimal {
	total := decimal.Zero
	for _, d := range c.Debts {
		total = total.Add(d.Amount)
	}
	return total
}

// Debt is one outstanding amount owed by a client. A partially paid debt
// keeps its original ID with a reduced amount for traceability.
type Debt struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	ClientID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	Description string          `gorm:"not null" json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	CreatedAt   time.Time       `json:"-"`
}
