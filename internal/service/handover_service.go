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

// HandoverService runs the employee-to-supervisor money transfer workflow.
// State machine: pending → completed (the named supervisor accepts, funds
// leave the cashbox) or pending → cancelled; both targets are terminal.
type HandoverService interface {
	Create(ctx context.Context, employeeID uuid.UUID, req dto.CreateHandoverRequest) (*model.Handover, error)
	Accept(ctx context.Context, actingSupervisorID, handoverID uuid.UUID) (*model.Handover, error)
	Cancel(ctx context.Context, actorID, handoverID uuid.UUID) (*model.Handover, error)
	History(ctx context.Context, sellerID uuid.UUID) ([]model.Handover, error)
	Supervisors(ctx context.Context) ([]dto.SupervisorResponse, error)
}

type handoverService struct {
	repo    repository.HandoverRepository
	sellers repository.SellerRepository
	cashbox repository.CashboxRepository
}

func NewHandoverService(
	repo repository.HandoverRepository,
	sellers repository.SellerRepository,
	cashbox repository.CashboxRepository,
) HandoverService {
	return &handoverService{repo: repo, sellers: sellers, cashbox: cashbox}
}

func (s *handoverService) Create(ctx context.Context, employeeID uuid.UUID, req dto.CreateHandoverRequest) (*model.Handover, error) {
	if err := validateMove(req.Amount, req.PaymentMethod); err != nil {
		return nil, err
	}
	supervisorID, err := uuid.Parse(req.SupervisorID)
	if err != nil {
		return nil, apierror.Validation("invalid supervisorId")
	}
	supervisor, err := s.sellers.FindByID(ctx, supervisorID)
	if err != nil {
		return nil, apierror.NotFound("supervisor not found")
	}
	if !supervisor.IsSupervisor() {
		return nil, apierror.Forbidden("named seller cannot accept handovers")
	}

	// The employee's float is drawn from the shared pool, so reject a
	// handover the cashbox cannot cover right now. The guarded withdraw at
	// acceptance remains the authoritative check.
	box, err := s.cashbox.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	if balanceFor(box, req.PaymentMethod).LessThan(req.Amount) {
		return nil, apierror.InsufficientFunds("insufficient " + req.PaymentMethod + " balance")
	}

	h := &model.Handover{
		EmployeeID:    employeeID,
		SupervisorID:  supervisorID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
		Status:        model.HandoverPending,
		Date:          time.Now(),
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func balanceFor(box *model.Cashbox, method string) decimal.Decimal {
	switch method {
	case model.MethodCard:
		return box.CardBalance
	case model.MethodBank:
		return box.BankBalance
	default:
		return box.CashBalance
	}
}

func (s *handoverService) Accept(ctx context.Context, actingSupervisorID, handoverID uuid.UUID) (*model.Handover, error) {
	h, err := s.repo.FindByID(ctx, handoverID)
	if err != nil {
		return nil, apierror.NotFound("handover not found")
	}
	if h.SupervisorID != actingSupervisorID {
		return nil, apierror.Forbidden("only the named supervisor may accept this handover")
	}
	if h.Status != model.HandoverPending {
		return nil, apierror.Conflict("handover already " + h.Status)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		box, err := s.cashbox.GetOrCreateTx(tx)
		if err != nil {
			return err
		}
		if balanceFor(box, h.PaymentMethod).LessThan(h.Amount) {
			return repository.ErrInsufficientBalance
		}
		// Claim the handover before moving money: the loser of two
		// concurrent accepts fails here instead of withdrawing twice.
		n, err := s.repo.TransitionStatusTx(tx, h.ID, model.HandoverPending, model.HandoverCompleted)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierror.Conflict("handover already processed")
		}
		if err := s.cashbox.WithdrawTx(tx, box.ID, h.PaymentMethod, h.Amount); err != nil {
			return err
		}
		refID := h.ID
		t := &model.Transaction{
			CashboxID:     box.ID,
			Type:          model.TxExpense,
			Amount:        h.Amount,
			PaymentMethod: h.PaymentMethod,
			Description:   "Received from employee",
			ReferenceID:   &refID,
			Date:          time.Now(),
		}
		if err := s.cashbox.CreateTransactionTx(tx, t); err != nil {
			return err
		}
		h.Status = model.HandoverCompleted
		h.TransactionID = &t.ID
		return s.repo.SaveTx(tx, h)
	})
	if errors.Is(txErr, repository.ErrInsufficientBalance) {
		return nil, apierror.InsufficientFunds("insufficient " + h.PaymentMethod + " balance")
	}
	if txErr != nil {
		return nil, txErr
	}
	return h, nil
}

func (s *handoverService) Cancel(ctx context.Context, actorID, handoverID uuid.UUID) (*model.Handover, error) {
	h, err := s.repo.FindByID(ctx, handoverID)
	if err != nil {
		return nil, apierror.NotFound("handover not found")
	}
	if actorID != h.EmployeeID && actorID != h.SupervisorID {
		return nil, apierror.Forbidden("only a participant may cancel this handover")
	}
	if h.Status != model.HandoverPending {
		return nil, apierror.Conflict("handover already " + h.Status)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		n, err := s.repo.TransitionStatusTx(tx, h.ID, model.HandoverPending, model.HandoverCancelled)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierror.Conflict("handover already processed")
		}
		h.Status = model.HandoverCancelled
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return h, nil
}

func (s *handoverService) History(ctx context.Context, sellerID uuid.UUID) ([]model.Handover, error) {
	return s.repo.ListByParticipant(ctx, sellerID)
}

func (s *handoverService) Supervisors(ctx context.Context) ([]dto.SupervisorResponse, error) {
	sellers, err := s.sellers.ListSupervisors(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupervisorResponse, 0, len(sellers))
	for _, sup := range sellers {
		out = append(out, dto.SupervisorResponse{
			ID:        sup.ID.String(),
			Firstname: sup.Firstname,
			Phone:     sup.Phone,
		})
	}
	return out, nil
}
