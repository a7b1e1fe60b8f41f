package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/apierror"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/dto"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/repository"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/worker"
)

// BonusPolicy holds the business-rule amounts for the bonus counter.
type BonusPolicy struct {
	ReferralBonus  decimal.Decimal // credited to the referrer
	RefereeBonus   decimal.Decimal // credited to the new client
	AccrualPercent decimal.Decimal // % of discountPrice accrued per sale
}

func NewBonusPolicy(referral, referee, percent float64) BonusPolicy {
	return BonusPolicy{
		ReferralBonus:  decimal.NewFromFloat(referral),
		RefereeBonus:   decimal.NewFromFloat(referee),
		AccrualPercent: decimal.NewFromFloat(percent),
	}
}

type ClientService interface {
	Create(ctx context.Context, req dto.CreateClientRequest) (*model.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ClientDetailResponse, error)
	GetByPhone(ctx context.Context, phone string) (*model.Client, error)
	List(ctx context.Context, page, limit int, name string) (*dto.ClientListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateClientRequest) (*model.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddDebt(ctx context.Context, clientID uuid.UUID, req dto.AddDebtRequest) (*model.Client, error)
	// PayDebt applies a FIFO reduction over the client's debts, oldest date
	// first. A partially paid debt keeps its original ID.
	PayDebt(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal) (*model.Client, error)
	// Debtors reports clients with outstanding debt, heaviest first.
	Debtors(ctx context.Context) ([]dto.DebtorSummary, error)
}

type clientService struct {
	repo       repository.ClientRepository
	payments   repository.PaymentRepository
	dispatcher *worker.Dispatcher
	policy     BonusPolicy
}

func NewClientService(
	repo repository.ClientRepository,
	payments repository.PaymentRepository,
	dispatcher *worker.Dispatcher,
	policy BonusPolicy,
) ClientService {
	return &clientService{repo: repo, payments: payments, dispatcher: dispatcher, policy: policy}
}

func newReferralCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

func (s *clientService) Create(ctx context.Context, req dto.CreateClientRequest) (*model.Client, error) {
	if existing, err := s.repo.FindByPhone(ctx, req.Phone); err == nil && existing != nil {
		return nil, apierror.Conflict("phone already registered")
	}

	client := &model.Client{
		Firstname:    req.Firstname,
		Phone:        req.Phone,
		Birthday:     req.Birthday,
		Address:      req.Address,
		ReferralCode: newReferralCode(),
		Bonus:        decimal.Zero,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	if req.GetReferal != "" {
		if err := s.grantReferral(ctx, client, req.GetReferal); err != nil {
			// Invalid code does not undo the registration.
			return nil, err
		}
	}
	return s.repo.FindByID(ctx, client.ID)
}

// grantReferral credits both parties of a valid referral and notifies admins.
func (s *clientService) grantReferral(ctx context.Context, client *model.Client, code string) error {
	referrer, err := s.repo.FindByReferralCode(ctx, code)
	if err != nil {
		return apierror.NotFound("referral code not found")
	}
	if referrer.ID == client.ID {
		return apierror.Validation("client cannot refer themselves")
	}
	if err := s.repo.AddBonus(ctx, referrer.ID, s.policy.ReferralBonus); err != nil {
		return err
	}
	if err := s.repo.AddBonus(ctx, client.ID, s.policy.RefereeBonus); err != nil {
		return err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueNotification(ctx, worker.Notification{
			Event:      worker.EventReferralBonus,
			Amount:     s.policy.ReferralBonus.String(),
			ClientName: referrer.Firstname,
		})
	}
	return nil
}

func (s *clientService) Get(ctx context.Context, id uuid.UUID) (*dto.ClientDetailResponse, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("client not found")
	}
	sales, err := s.payments.ListByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ClientDetailResponse{Client: *client, Sales: sales}, nil
}

func (s *clientService) GetByPhone(ctx context.Context, phone string) (*model.Client, error) {
	client, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, apierror.NotFound("client not found")
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, page, limit int, name string) (*dto.ClientListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	clients, total, err := s.repo.List(ctx, page, limit, name)
	if err != nil {
		return nil, err
	}
	return &dto.ClientListResponse{
		Data:       clients,
		TotalPages: totalPages(total, limit),
		Page:       page,
	}, nil
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateClientRequest) (*model.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("client not found")
	}
	if req.Firstname != "" {
		client.Firstname = req.Firstname
	}
	if req.Phone != "" {
		client.Phone = req.Phone
	}
	if req.Birthday != nil {
		client.Birthday = req.Birthday
	}
	if req.Address != nil {
		client.Address = req.Address
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("client not found")
	}
	return s.repo.Delete(ctx, id)
}

func (s *clientService) AddDebt(ctx context.Context, clientID uuid.UUID, req dto.AddDebtRequest) (*model.Client, error) {
	if !req.Amount.IsPositive() {
		return nil, apierror.Validation("amount must be greater than zero")
	}
	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, apierror.NotFound("client not found")
	}

	debt := &model.Debt{
		ClientID:    client.ID,
		Description: req.Description,
		Date:        req.Date,
		Amount:      req.Amount,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateDebtTx(tx, debt)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.repo.FindByID(ctx, clientID)
}

func (s *clientService) PayDebt(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal) (*model.Client, error) {
	if !amount.IsPositive() {
		return nil, apierror.Validation("amount must be greater than zero")
	}
	if _, err := s.repo.FindByID(ctx, clientID); err != nil {
		return nil, apierror.NotFound("client not found")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		debts, err := s.repo.ListDebtsTx(tx, clientID)
		if err != nil {
			return err
		}
		if len(debts) == 0 {
			return apierror.Conflict("client has no outstanding debt")
		}
		outstanding := decimal.Zero
		for _, d := range debts {
			outstanding = outstanding.Add(d.Amount)
		}
		if amount.GreaterThan(outstanding) {
			return apierror.Conflict("payment exceeds outstanding debt")
		}

		remaining := amount
		for _, d := range debts {
			if remaining.IsZero() {
				break
			}
			if remaining.GreaterThanOrEqual(d.Amount) {
				remaining = remaining.Sub(d.Amount)
				if err := s.repo.DeleteDebtTx(tx, d.ID); err != nil {
					return err
				}
				continue
			}
			if err := s.repo.UpdateDebtAmountTx(tx, d.ID, d.Amount.Sub(remaining)); err != nil {
				return err
			}
			remaining = decimal.Zero
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.repo.FindByID(ctx, clientID)
}

func (s *clientService) Debtors(ctx context.Context) ([]dto.DebtorSummary, error) {
	clients, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.DebtorSummary, 0)
	for _, c := range clients {
		total := c.TotalDebt()
		if !total.IsPositive() {
			continue
		}
		summary := dto.DebtorSummary{
			ID:        c.ID.String(),
			Firstname: c.Firstname,
			TotalDebt: total,
			Debts:     c.Debts,
		}
		for _, d := range c.Debts {
			if summary.LastDebtDate == nil || d.Date.After(*summary.LastDebtDate) {
				date := d.Date
				summary.LastDebtDate = &date
			}
		}
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].TotalDebt.GreaterThan(summaries[j].TotalDebt)
	})
	return summaries, nil
}
