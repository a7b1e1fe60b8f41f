package dto

import (
	"github.com/shopspring/decimal"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

type CreateCostRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
	Description   string          `json:"description" validate:"required"`
	SellerName    string          `json:"sellername"`
}

type UpdateCostRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
	Description   string          `json:"description"`
	SellerName    string          `json:"sellername"`
}

type CostListResponse struct {
	Data       []model.Cost    `json:"data"`
	TodayCosts decimal.Decimal `json:"todayCosts"`
	TotalPages int             `json:"totalPages"`
	Page       int             `json:"currentPage"`
}
