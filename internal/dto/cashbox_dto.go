package dto

import (
	"github.com/shopspring/decimal"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

type DepositRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
	Description   string          `json:"description"`
}

type ExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
	Description   string          `json:"description"`
}

type ReverseTransactionRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
}

// CashboxResponse mirrors the legacy GET /cashbox payload.
type CashboxResponse struct {
	CashBalance  decimal.Decimal     `json:"cashBalance"`
	CardBalance  decimal.Decimal     `json:"cardBalance"`
	BankBalance  decimal.Decimal     `json:"bankBalance"`
	Transactions []model.Transaction `json:"transactions"`
}

type TransactionListResponse struct {
	Data       []model.Transaction `json:"data"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"totalPages"`
}

type CreateHandoverRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"paymentMethod" validate:"required"`
	SupervisorID  string          `json:"supervisorId" validate:"required"`
	Description   string          `json:"description"`
}

type AcceptHandoverRequest struct {
	HandoverID string `json:"handoverId" validate:"required"`
}

type CancelHandoverRequest struct {
	HandoverID string `json:"handoverId" validate:"required"`
}

type SupervisorResponse struct {
	ID        string `json:"_id"`
	Firstname string `json:"firstname"`
	Phone     string `json:"phone"`
}
