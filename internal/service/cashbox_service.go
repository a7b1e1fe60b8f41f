package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/apierror"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/dto"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/repository"
)

type CashboxService interface {
	Get(ctx context.Context) (*dto.CashboxResponse, error)
	Deposit(ctx context.Context, req dto.DepositRequest) (*dto.CashboxResponse, error)
	Expense(ctx context.Context, req dto.ExpenseRequest) (*dto.CashboxResponse, error)
	// ReverseTransaction removes a ledger entry and applies the inverse
	// balance delta. It is the only mutation that rewrites history instead
	// of appending a compensating entry.
	ReverseTransaction(ctx context.Context, transactionID uuid.UUID) (*dto.CashboxResponse, error)
	ListTransactions(ctx context.Context, page, limit int) (*dto.TransactionListResponse, error)
}

type cashboxService struct {
	repo repository.CashboxRepository
}

func NewCashboxService(repo repository.CashboxRepository) CashboxService {
	return &cashboxService{repo: repo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func validateMove(amount decimal.Decimal, method string) error {
	if !amount.IsPositive() {
		return apierror.Validation("amount must be greater than zero")
	}
	if !model.ValidMethod(method) {
		return apierror.Validation("paymentMethod must be one of cash, card, bank")
	}
	return nil
}

func (s *cashboxService) Get(ctx context.Context) (*dto.CashboxResponse, error) {
	box, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.repo.ListAllTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CashboxResponse{
		CashBalance:  box.CashBalance,
		CardBalance:  box.CardBalance,
		BankBalance:  box.BankBalance,
		Transactions: txs,
	}, nil
}

func (s *cashboxService) Deposit(ctx context.Context, req dto.DepositRequest) (*dto.CashboxResponse, error) {
	if err := validateMove(req.Amount, req.PaymentMethod); err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		box, err := s.repo.GetOrCreateTx(tx)
		if err != nil {
			return err
		}
		if err := s.repo.AddBalanceTx(tx, box.ID, req.PaymentMethod, req.Amount); err != nil {
			return err
		}
		return s.repo.CreateTransactionTx(tx, &model.Transaction{
			CashboxID:     box.ID,
			Type:          model.TxIncome,
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMethod,
			Description:   req.Description,
			Date:          time.Now(),
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx)
}

func (s *cashboxService) Expense(ctx context.Context, req dto.ExpenseRequest) (*dto.CashboxResponse, error) {
	if err := validateMove(req.Amount, req.PaymentMethod); err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		box, err := s.repo.GetOrCreateTx(tx)
		if err != nil {
			return err
		}
		if err := s.repo.WithdrawTx(tx, box.ID, req.PaymentMethod, req.Amount); err != nil {
			return err
		}
		return s.repo.CreateTransactionTx(tx, &model.Transaction{
			CashboxID:     box.ID,
			Type:          model.TxExpense,
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMethod,
			Description:   req.Description,
			Date:          time.Now(),
		})
	})
	if errors.Is(txErr, repository.ErrInsufficientBalance) {
		return nil, apierror.InsufficientFunds("insufficient " + req.PaymentMethod + " balance")
	}
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx)
}

func (s *cashboxService) ReverseTransaction(ctx context.Context, transactionID uuid.UUID) (*dto.CashboxResponse, error) {
	t, err := s.repo.FindTransaction(ctx, transactionID)
	if err != nil {
		return nil, apierror.NotFound("transaction not found")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Delete first: zero rows means another reversal already claimed the
		// entry, and applying the delta anyway would move the balance twice.
		n, err := s.repo.DeleteTransactionTx(tx, t.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierror.NotFound("transaction not found")
		}
		box, err := s.repo.GetOrCreateTx(tx)
		if err != nil {
			return err
		}
		// Negate the original effect: income subtracts, expense adds back.
		return s.repo.AddBalanceTx(tx, box.ID, t.PaymentMethod, t.SignedAmount().Neg())
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(ctx)
}

func (s *cashboxService) ListTransactions(ctx context.Context, page, limit int) (*dto.TransactionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	txs, total, err := s.repo.ListTransactions(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &dto.TransactionListResponse{
		Data:       txs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
