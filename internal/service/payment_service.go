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
	"github.com/muhammadcoderr/smartdokonv3-server/internal/worker"
)

// PaymentService implements the sale reconciliation operations. Creating a
// sale touches inventory, client debt, bonus, the balance store and the
// ledger as one atomic unit; update and delete reverse exactly the effects
// the sale produced (ledger entries located via ReferenceID).
type PaymentService interface {
	CreateSale(ctx context.Context, sellerID *uuid.UUID, req dto.CreateSaleRequest) (*model.Payment, error)
	UpdateSale(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*model.Payment, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	List(ctx context.Context, filter dto.PaymentFilter) (*dto.PaymentListResponse, error)
}

type paymentService struct {
	repo       repository.PaymentRepository
	products   repository.ProductRepository
	clients    repository.ClientRepository
	cashbox    repository.CashboxRepository
	inventory  InventoryService
	dispatcher *worker.Dispatcher
	policy     BonusPolicy
}

func NewPaymentService(
	repo repository.PaymentRepository,
	products repository.ProductRepository,
	clients repository.ClientRepository,
	cashbox repository.CashboxRepository,
	inventory InventoryService,
	dispatcher *worker.Dispatcher,
	policy BonusPolicy,
) PaymentService {
	return &paymentService{
		repo:       repo,
		products:   products,
		clients:    clients,
		cashbox:    cashbox,
		inventory:  inventory,
		dispatcher: dispatcher,
		policy:     policy,
	}
}

// accrual is the bonus earned on a sale: AccrualPercent % of discountPrice.
func (s *paymentService) accrual(discountPrice decimal.Decimal) decimal.Decimal {
	return discountPrice.Mul(s.policy.AccrualPercent).Div(decimal.NewFromInt(100)).Round(2)
}

func (s *paymentService) CreateSale(ctx context.Context, sellerID *uuid.UUID, req dto.CreateSaleRequest) (*model.Payment, error) {
	var clientID *uuid.UUID
	if req.ClientID != "" {
		id, err := uuid.Parse(req.ClientID)
		if err != nil {
			return nil, apierror.Validation("invalid clientId")
		}
		if _, err := s.clients.FindByID(ctx, id); err != nil {
			return nil, apierror.NotFound("client not found")
		}
		clientID = &id
	}
	if clientID == nil && (req.Indebtedness.IsPositive() || req.Cashback.IsPositive()) {
		return nil, apierror.Validation("debt and cashback require a client")
	}
	if req.Cash.IsNegative() || req.Terminal.IsNegative() || req.Cashback.IsNegative() || req.Indebtedness.IsNegative() {
		return nil, apierror.Validation("money fields must not be negative")
	}

	// Resolve products up front so alerts can carry names.
	type resolvedItem struct {
		id       uuid.UUID
		name     string
		quantity int
	}
	var resolved []resolvedItem
	for _, item := range req.Products {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.Validation("invalid productId")
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.NotFound("product not found")
		}
		resolved = append(resolved, resolvedItem{id: pid, name: p.Name, quantity: item.Quantity})
	}

	status := model.PaymentWaiting
	if req.Type == "pos" {
		status = model.PaymentSuccess
	}

	payment := &model.Payment{
		SellerID:      sellerID,
		ClientID:      clientID,
		TotalPrice:    req.TotalPrice,
		DiscountPrice: req.DiscountPrice,
		Cash:          req.Cash,
		Terminal:      req.Terminal,
		Cashback:      req.Cashback,
		Indebtedness:  req.Indebtedness,
		Profit:        req.Profit,
		Status:        status,
	}
	for _, item := range req.Products {
		pid, _ := uuid.Parse(item.ProductID)
		payment.Items = append(payment.Items, model.PaymentItem{
			ProductID: pid,
			Quantity:  item.Quantity,
			Discount:  item.Discount,
			Profit:    item.Profit,
			Category:  item.Category,
		})
	}

	var alerts []worker.Notification
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, payment); err != nil {
			return err
		}

		for _, r := range resolved {
			_, a, err := s.inventory.AdjustStockTx(tx, r.id, r.name, -r.quantity)
			if err != nil {
				return err
			}
			alerts = append(alerts, a...)
		}

		if req.Indebtedness.IsPositive() {
			debt := &model.Debt{
				ClientID:    *clientID,
				Description: "Sale on credit",
				Date:        time.Now(),
				Amount:      req.Indebtedness,
			}
			if err := s.clients.CreateDebtTx(tx, debt); err != nil {
				return err
			}
		}

		if clientID != nil && req.DiscountPrice.IsPositive() {
			if err := s.clients.AddBonusTx(tx, *clientID, s.accrual(req.DiscountPrice)); err != nil {
				return err
			}
		}
		if clientID != nil && req.Cashback.IsPositive() {
			if err := s.clients.AddBonusTx(tx, *clientID, req.Cashback.Neg()); err != nil {
				return err
			}
		}

		return s.depositSaleTx(tx, payment, clientID, req.Cash, req.Terminal)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		for _, a := range alerts {
			_ = s.dispatcher.EnqueueNotification(ctx, a)
		}
	}
	return s.repo.FindByID(ctx, payment.ID)
}

// depositSaleTx credits the cash and card portions of a sale and appends the
// matching income entries (one per method used), each referencing the sale
// and the client.
func (s *paymentService) depositSaleTx(tx *gorm.DB, payment *model.Payment, clientID *uuid.UUID, cash, terminal decimal.Decimal) error {
	box, err := s.cashbox.GetOrCreateTx(tx)
	if err != nil {
		return err
	}
	refID := payment.ID
	parts := []struct {
		method string
		amount decimal.Decimal
	}{
		{model.MethodCash, cash},
		{model.MethodCard, terminal},
	}
	for _, p := range parts {
		if !p.amount.IsPositive() {
			continue
		}
		if err := s.cashbox.AddBalanceTx(tx, box.ID, p.method, p.amount); err != nil {
			return err
		}
		if err := s.cashbox.CreateTransactionTx(tx, &model.Transaction{
			CashboxID:       box.ID,
			Type:            model.TxIncome,
			Amount:          p.amount,
			PaymentMethod:   p.method,
			Description:     "Sale",
			RelatedClientID: clientID,
			ReferenceID:     &refID,
			Date:            time.Now(),
		}); err != nil {
			return err
		}
	}
	return nil
}

// reverseLedgerTx negates and removes the ledger entries a sale produced.
// Reversing from the stored entries rather than the payment's money fields
// keeps the balances honest even if the two ever disagree.
func (s *paymentService) reverseLedgerTx(tx *gorm.DB, boxID, referenceID uuid.UUID) error {
	entries, err := s.cashbox.FindTransactionsByReferenceTx(tx, referenceID)
	if err != nil {
		return err
	}
	for _, t := range entries {
		if err := s.cashbox.AddBalanceTx(tx, boxID, t.PaymentMethod, t.SignedAmount().Neg()); err != nil {
			return err
		}
	}
	return s.cashbox.DeleteTransactionsByReferenceTx(tx, referenceID)
}

func (s *paymentService) UpdateSale(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*model.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("payment not found")
	}
	if req.Cash.IsNegative() || req.Terminal.IsNegative() || req.Cashback.IsNegative() {
		return nil, apierror.Validation("money fields must not be negative")
	}
	if req.Status != "" && req.Status != model.PaymentSuccess && req.Status != model.PaymentWaiting {
		return nil, apierror.Validation("status must be success or waiting")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		box, err := s.cashbox.GetOrCreateTx(tx)
		if err != nil {
			return err
		}

		// Reverse the old money effects. Inventory from the original sale
		// is deliberately untouched: updates change money fields only.
		if err := s.reverseLedgerTx(tx, box.ID, payment.ID); err != nil {
			return err
		}
		if payment.ClientID != nil {
			if payment.DiscountPrice.IsPositive() {
				if err := s.clients.AddBonusTx(tx, *payment.ClientID, s.accrual(payment.DiscountPrice).Neg()); err != nil {
					return err
				}
			}
			if payment.Cashback.IsPositive() {
				if err := s.clients.AddBonusTx(tx, *payment.ClientID, payment.Cashback); err != nil {
					return err
				}
			}
		}

		// Apply the new values.
		payment.Cash = req.Cash
		payment.Terminal = req.Terminal
		payment.Cashback = req.Cashback
		payment.TotalPrice = req.TotalPrice
		payment.DiscountPrice = req.DiscountPrice
		if req.Status != "" {
			payment.Status = req.Status
		}

		if payment.ClientID != nil {
			if payment.DiscountPrice.IsPositive() {
				if err := s.clients.AddBonusTx(tx, *payment.ClientID, s.accrual(payment.DiscountPrice)); err != nil {
					return err
				}
			}
			if payment.Cashback.IsPositive() {
				if err := s.clients.AddBonusTx(tx, *payment.ClientID, payment.Cashback.Neg()); err != nil {
					return err
				}
			}
		}
		if err := s.depositSaleTx(tx, payment, payment.ClientID, payment.Cash, payment.Terminal); err != nil {
			return err
		}
		return s.repo.SaveTx(tx, payment)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.repo.FindByID(ctx, id)
}

func (s *paymentService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("payment not found")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		box, err := s.cashbox.GetOrCreateTx(tx)
		if err != nil {
			return err
		}
		if err := s.reverseLedgerTx(tx, box.ID, payment.ID); err != nil {
			return err
		}
		if payment.ClientID != nil && payment.Cashback.IsPositive() {
			if err := s.clients.AddBonusTx(tx, *payment.ClientID, payment.Cashback); err != nil {
				return err
			}
		}
		// Restore the sold quantities so inventory stays symmetric with the
		// reversed money effects.
		for _, item := range payment.Items {
			if _, err := s.products.AdjustStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return s.repo.DeleteTx(tx, payment.ID)
	})
}

func (s *paymentService) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("payment not found")
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) List(ctx context.Context, filter dto.PaymentFilter) (*dto.PaymentListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	payments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	pages := totalPages(total, filter.Limit)
	return &dto.PaymentListResponse{
		Data: payments,
		Pagination: dto.PaginationResponse{
			CurrentPage: filter.Page,
			TotalPages:  pages,
			TotalCount:  total,
			HasNextPage: filter.Page < pages,
			HasPrevPage: filter.Page > 1,
			Limit:       filter.Limit,
		},
	}, nil
}
