package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

type CreateClientRequest struct {
	Firstname string     `json:"firstname" validate:"required"`
	Phone     string     `json:"phone" validate:"required"`
	Birthday  *time.Time `json:"birthday"`
	Address   *string    `json:"address"`
	// GetReferal carries the referral code of an existing client, if any.
	GetReferal string `json:"getReferal"`
}

type UpdateClientRequest struct {
	Firstname string     `json:"firstname"`
	Phone     string     `json:"phone"`
	Birthday  *time.Time `json:"birthday"`
	Address   *string    `json:"address"`
}

type AddDebtRequest struct {
	Description string          `json:"description" validate:"required"`
	Date        time.Time       `json:"date" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}

type PayDebtRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type ClientListResponse struct {
	Data       []model.Client `json:"data"`
	TotalPages int            `json:"totalPages"`
	Page       int            `json:"currentPage"`
}

// DebtorSummary is one row of the debtors report, heaviest debtor first.
type DebtorSummary struct {
	ID           string          `json:"_id"`
	Firstname    string          `json:"firstname"`
	TotalDebt    decimal.Decimal `json:"totalDebt"`
	LastDebtDate *time.Time      `json:"lastDebtDate"`
	Debts        []model.Debt    `json:"debts"`
}

// ClientDetailResponse bundles a client with their sales history.
type ClientDetailResponse struct {
	Client model.Client    `json:"client"`
	Sales  []model.Payment `json:"sales"`
}
