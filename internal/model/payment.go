package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses.
const (
	PaymentSuccess = "success"
	PaymentWaiting = "waiting"
)

// Payment is the immutable record of one sale. Creating it is a compound
// reconciliation operation: stock decrements, optional debt, bonus accrual,
// cashbox deposits and cashback spend all commit in one transaction.
type Payment struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	SellerID *uuid.UUID `gorm:"type:uuid;index" json:"sellerId,omitempty"`
	ClientID *uuid.UUID `gorm:"type:uuid;index" json:"clientId,omitempty"`
	// TotalPrice is the full sale value; DiscountPrice is the discounted
	// basis used for bonus accrual.
	TotalPrice    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"totalPrice"`
	DiscountPrice decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"discountPrice"`
	Cash          decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"cash"`
	Terminal      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"terminal"`
	Cashback      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"cashback"`
	Indebtedness  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"indebtedness"`
	Profit        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"profit"`
	Status        string          `gorm:"type:varchar(20);not null" json:"status"` // success | waiting
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"-"`

	Items []PaymentItem `gorm:"foreignKey:PaymentID" json:"products"`
}

// PaymentItem is one sold line: product, quantity and per-line discount.
type PaymentItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	PaymentID uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"productId"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Discount  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"discount"`
	Profit    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"profit"`
	Category  string          `json:"category"`
}
