package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

// ErrInsufficientBalance is returned by WithdrawTx when the guarded decrement
// matches no row, i.e. the balance is below the requested amount.
var ErrInsufficientBalance = errors.New("insufficient balance")

// CashboxRepository is the data access contract for the singleton balance
// store and its transaction ledger. Services depend on this interface so unit
// tests can swap an in-memory implementation.
//
// Methods suffixed Tx run inside a caller-owned transaction; balance mutations
// are atomic SQL increments so concurrent writers serialize per column.
type CashboxRepository interface {
	// GetOrCreate returns the single cashbox row, creating it on first use.
	GetOrCreate(ctx context.Context) (*model.Cashbox, error)
	GetOrCreateTx(tx *gorm.DB) (*model.Cashbox, error)

	// AddBalanceTx applies a signed delta to the balance of the given method.
	AddBalanceTx(tx *gorm.DB, cashboxID uuid.UUID, method string, delta decimal.Decimal) error
	// WithdrawTx decrements only when the balance covers the amount,
	// returning ErrInsufficientBalance otherwise.
	WithdrawTx(tx *gorm.DB, cashboxID uuid.UUID, method string, amount decimal.Decimal) error

	CreateTransactionTx(tx *gorm.DB, t *model.Transaction) error
	FindTransaction(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	// DeleteTransactionTx removes one ledger entry and reports how many rows
	// matched, so callers can detect that another reversal got there first.
	DeleteTransactionTx(tx *gorm.DB, id uuid.UUID) (int64, error)
	// FindTransactionsByReferenceTx returns the ledger entries produced by one
	// compound operation (sale, cost, handover).
	FindTransactionsByReferenceTx(tx *gorm.DB, referenceID uuid.UUID) ([]model.Transaction, error)
	DeleteTransactionsByReferenceTx(tx *gorm.DB, referenceID uuid.UUID) error
	ListTransactions(ctx context.Context, page, limit int) ([]model.Transaction, int64, error)
	// ListAllTransactions returns the whole ledger, most recent first
	// (legacy GET /cashbox embeds it in full).
	ListAllTransactions(ctx context.Context) ([]model.Transaction, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type cashboxRepo struct{ db *gorm.DB }

func NewCashboxRepository(db *gorm.DB) CashboxRepository { return &cashboxRepo{db: db} }

func (r *cashboxRepo) GetOrCreate(ctx context.Context) (*model.Cashbox, error) {
	return getOrCreateCashbox(r.db.WithContext(ctx))
}

func (r *cashboxRepo) GetOrCreateTx(tx *gorm.DB) (*model.Cashbox, error) {
	return getOrCreateCashbox(tx)
}

func getOrCreateCashbox(db *gorm.DB) (*model.Cashbox, error) {
	var box model.Cashbox
	err := db.First(&box).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		box = model.Cashbox{
			CashBalance: decimal.Zero,
			CardBalance: decimal.Zero,
			BankBalance: decimal.Zero,
		}
		if err := db.Create(&box).Error; err != nil {
			return nil, err
		}
		return &box, nil
	}
	if err != nil {
		return nil, err
	}
	return &box, nil
}

func (r *cashboxRepo) AddBalanceTx(tx *gorm.DB, cashboxID uuid.UUID, method string, delta decimal.Decimal) error {
	col := model.BalanceColumn(method)
	return tx.Model(&model.Cashbox{}).Where("id = ?", cashboxID).
		Update(col, gorm.Expr(col+" + ?", delta)).Error
}

func (r *cashboxRepo) WithdrawTx(tx *gorm.DB, cashboxID uuid.UUID, method string, amount decimal.Decimal) error {
	col := model.BalanceColumn(method)
	res := tx.Model(&model.Cashbox{}).
		Where("id = ? AND "+col+" >= ?", cashboxID, amount).
		Update(col, gorm.Expr(col+" - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

func (r *cashboxRepo) CreateTransactionTx(tx *gorm.DB, t *model.Transaction) error {
	return tx.Create(t).Error
}

func (r *cashboxRepo) FindTransaction(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *cashboxRepo) DeleteTransactionTx(tx *gorm.DB, id uuid.UUID) (int64, error) {
	res := tx.Delete(&model.Transaction{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *cashboxRepo) FindTransactionsByReferenceTx(tx *gorm.DB, referenceID uuid.UUID) ([]model.Transaction, error) {
	var ts []model.Transaction
	err := tx.Where("reference_id = ?", referenceID).Find(&ts).Error
	return ts, err
}

func (r *cashboxRepo) DeleteTransactionsByReferenceTx(tx *gorm.DB, referenceID uuid.UUID) error {
	return tx.Delete(&model.Transaction{}, "reference_id = ?", referenceID).Error
}

func (r *cashboxRepo) ListTransactions(ctx context.Context, page, limit int) ([]model.Transaction, int64, error) {
	var ts []model.Transaction
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Transaction{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := q.Order("date DESC").Limit(limit).Offset(offset).Find(&ts).Error
	return ts, total, err
}

func (r *cashboxRepo) ListAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	var ts []model.Transaction
	err := r.db.WithContext(ctx).Order("date DESC").Find(&ts).Error
	return ts, err
}

func (r *cashboxRepo) DB() *gorm.DB { return r.db }
