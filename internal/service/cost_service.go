package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/apierror"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/dto"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/repository"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/worker"
)

// CostService records shop expenses. Each cost owns exactly one expense
// entry in the ledger (linked via ReferenceID), which update and delete
// reconcile together with the balance.
type CostService interface {
	Create(ctx context.Context, req dto.CreateCostRequest) (*model.Cost, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCostRequest) (*model.Cost, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page, limit int, search string) (*dto.CostListResponse, error)
	ListAll(ctx context.Context) ([]model.Cost, error)
}

type costService struct {
	repo       repository.CostRepository
	cashbox    repository.CashboxRepository
	dispatcher *worker.Dispatcher
}

func NewCostService(
	repo repository.CostRepository,
	cashbox repository.CashboxRepository,
	dispatcher *worker.Dispatcher,
) CostService {
	return &costService{repo: repo, cashbox: cashbox, dispatcher: dispatcher}
}

func (s *costService) Create(ctx context.Context, req dto.CreateCostRequest) (*model.Cost, error) {
	if err := validateMove(req.Amount, req.PaymentMethod); err != nil {
		return nil, err
	}

	cost := &model.Cost{
		SellerName:    req.SellerName,
		Description:   req.Description,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		box, err := s.cashbox.GetOrCreateTx(tx)
		if err != nil {
			return err
		}
		if err := s.cashbox.WithdrawTx(tx, box.ID, req.PaymentMethod, req.Amount); err != nil {
			return err
		}
		if err := s.repo.CreateTx(tx, cost); err != nil {
			return err
		}
		refID := cost.ID
		return s.cashbox.CreateTransactionTx(tx, &model.Transaction{
			CashboxID:     box.ID,
			Type:          model.TxExpense,
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMethod,
			Description:   req.Description,
			ReferenceID:   &refID,
			Date:          time.Now(),
		})
	})
	if errors.Is(txErr, repository.ErrInsufficientBalance) {
		return nil, apierror.InsufficientFunds("insufficient " + req.PaymentMethod + " balance")
	}
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueNotification(ctx, worker.Notification{
			Event:       worker.EventNewExpense,
			Amount:      cost.Amount.String(),
			Method:      cost.PaymentMethod,
			Description: cost.Description,
			SellerName:  cost.SellerName,
		})
	}
	return cost, nil
}

func (s *costService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCostRequest) (*model.Cost, error) {
	if err := validateMove(req.Amount, req.PaymentMethod); err != nil {
		return nil, err
	}
	cost, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("cost not found")
	}

	oldAmount := cost.Amount
	oldMethod := cost.PaymentMethod

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		box, err := s.cashbox.GetOrCreateTx(tx)
		if err != nil {
			return err
		}
		// Undo the old withdrawal, then apply the new one guarded.
		if err := s.cashbox.AddBalanceTx(tx, box.ID, oldMethod, oldAmount); err != nil {
			return err
		}
		if err := s.cashbox.WithdrawTx(tx, box.ID, req.PaymentMethod, req.Amount); err != nil {
			return err
		}
		if err := s.cashbox.DeleteTransactionsByReferenceTx(tx, cost.ID); err != nil {
			return err
		}

		cost.Amount = req.Amount
		cost.PaymentMethod = req.PaymentMethod
		if req.Description != "" {
			cost.Description = req.Description
		}
		if req.SellerName != "" {
			cost.SellerName = req.SellerName
		}
		if err := s.repo.SaveTx(tx, cost); err != nil {
			return err
		}

		refID := cost.ID
		return s.cashbox.CreateTransactionTx(tx, &model.Transaction{
			CashboxID:     box.ID,
			Type:          model.TxExpense,
			Amount:        cost.Amount,
			PaymentMethod: cost.PaymentMethod,
			Description:   cost.Description,
			ReferenceID:   &refID,
			Date:          time.Now(),
		})
	})
	if errors.Is(txErr, repository.ErrInsufficientBalance) {
		return nil, apierror.InsufficientFunds("insufficient " + req.PaymentMethod + " balance")
	}
	if txErr != nil {
		return nil, txErr
	}
	return cost, nil
}

func (s *costService) Delete(ctx context.Context, id uuid.UUID) error {
	cost, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("cost not found")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		box, err := s.cashbox.GetOrCreateTx(tx)
		if err != nil {
			return err
		}
		// Compensating income: the original expense entry stays in the
		// ledger and the refund is appended, keeping the balance equal to
		// the signed sum of surviving entries.
		if err := s.cashbox.AddBalanceTx(tx, box.ID, cost.PaymentMethod, cost.Amount); err != nil {
			return err
		}
		if err := s.cashbox.CreateTransactionTx(tx, &model.Transaction{
			CashboxID:     box.ID,
			Type:          model.TxIncome,
			Amount:        cost.Amount,
			PaymentMethod: cost.PaymentMethod,
			Description:   "Cancelled expense: " + cost.Description,
			Date:          time.Now(),
		}); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, cost.ID)
	})
}

func (s *costService) List(ctx context.Context, page, limit int, search string) (*dto.CostListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	costs, total, err := s.repo.List(ctx, page, limit, search)
	if err != nil {
		return nil, err
	}
	today, err := s.repo.SumToday(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CostListResponse{
		Data:       costs,
		TodayCosts: today,
		TotalPages: totalPages(total, limit),
		Page:       page,
	}, nil
}

func (s *costService) ListAll(ctx context.Context) ([]model.Cost, error) {
	return s.repo.ListAll(ctx)
}
