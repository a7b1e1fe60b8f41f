package dto

import (
	"github.com/shopspring/decimal"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

type SaleItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Discount  decimal.Decimal `json:"discount"`
	Profit    decimal.Decimal `json:"profit"`
	Category  string          `json:"category"`
}

type CreateSaleRequest struct {
	Products      []SaleItemRequest `json:"products" validate:"required,min=1,dive"`
	ClientID      string            `json:"clientId"`
	TotalPrice    decimal.Decimal   `json:"totalPrice"`
	DiscountPrice decimal.Decimal   `json:"discountPrice"`
	Cash          decimal.Decimal   `json:"cash"`
	Terminal      decimal.Decimal   `json:"terminal"`
	Cashback      decimal.Decimal   `json:"cashback"`
	Indebtedness  decimal.Decimal   `json:"indebtedness"`
	Profit        decimal.Decimal   `json:"profit"`
	// Type "pos" marks a point-of-sale payment (status success);
	// anything else is recorded as waiting.
	Type string `json:"type"`
}

// UpdateSaleRequest changes the money fields of an existing sale only;
// sold items and inventory are not touched by updates.
type UpdateSaleRequest struct {
	Cash          decimal.Decimal `json:"cash"`
	Terminal      decimal.Decimal `json:"terminal"`
	Cashback      decimal.Decimal `json:"cashback"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Status        string          `json:"status"`
}

type PaymentFilter struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Date      string `form:"date"`      // YYYY-MM-DD, exact day
	StartDate string `form:"startDate"` // YYYY-MM-DD, inclusive
	EndDate   string `form:"endDate"`   // YYYY-MM-DD, inclusive
}

type PaymentListResponse struct {
	Data       []model.Payment    `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

type PaginationResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}
