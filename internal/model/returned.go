package model

import (
	"time"

	"github.com/google/uuid"
)

// Returned item conditions.
const (
	ReturnReusable  = "reusable"
	ReturnDefective = "defective"
)

// Returned records a product return. Reusable returns restock the product
// (creating it when unknown); defective returns are recorded only.
type Returned struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	Name       string    `gorm:"not null" json:"name"`
	ClientName string    `gorm:"column:clientname" json:"clientname"`
	SellerName string    `gorm:"column:sellername" json:"sellername"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Condition  string    `gorm:"type:varchar(20);not null;default:'reusable'" json:"condition"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}
