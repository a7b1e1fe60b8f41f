package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a stocked item. Available is signed: negative values represent
// oversold stock and are legitimate (the sale still goes through, admins get
// notified). The column and JSON field keep the legacy "avialable" spelling
// for wire compatibility with the existing frontend.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	Name         string          `gorm:"index;not null" json:"name"`
	SellerName   string          `gorm:"column:sellername" json:"sellername"`
	ArrivalPrice decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"arrivalprice"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"sellingprice"`
	Available    int             `gorm:"column:avialable;not null;default:0" json:"avialable"`
	Category     string          `json:"category"`
	Barcode      string          `gorm:"uniqueIndex" json:"barcode"`
	Type         string          `json:"type"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
