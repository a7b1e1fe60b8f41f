package dto

import (
	"github.com/shopspring/decimal"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required"`
	SellerName   string          `json:"sellername"`
	ArrivalPrice decimal.Decimal `json:"arrivalprice"`
	SellingPrice decimal.Decimal `json:"sellingprice"`
	Available    int             `json:"avialable"`
	Category     string          `json:"category"`
	Barcode      string          `json:"barcode"`
	Type         string          `json:"type"`
}

type UpdateProductRequest struct {
	Name         string           `json:"name"`
	SellerName   string           `json:"sellername"`
	ArrivalPrice *decimal.Decimal `json:"arrivalprice"`
	SellingPrice *decimal.Decimal `json:"sellingprice"`
	Available    *int             `json:"avialable"`
	Category     string           `json:"category"`
	Barcode      string           `json:"barcode"`
	Type         string           `json:"type"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type ProductFilter struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Name     string `form:"name"`
	Category string `form:"category"`
	Barcode  string `form:"barcode"`
}

type ProductListResponse struct {
	Data       []model.Product `json:"data"`
	TotalPages int             `json:"totalPages"`
	Page       int             `json:"currentPage"`
}

type CreateReturnRequest struct {
	Name       string `json:"name" validate:"required"`
	ClientName string `json:"clientname"`
	SellerName string `json:"sellername"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	Condition  string `json:"condition"`
}
