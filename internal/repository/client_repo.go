package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	FindByPhone(ctx context.Context, phone string) (*model.Client, error)
	FindByReferralCode(ctx context.Context, code string) (*model.Client, error)
	List(ctx context.Context, page, limit int, name string) ([]model.Client, int64, error)
	ListAll(ctx context.Context) ([]model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddBonusTx applies a signed delta to the bonus counter atomically.
	AddBonusTx(tx *gorm.DB, clientID uuid.UUID, delta decimal.Decimal) error
	AddBonus(ctx context.Context, clientID uuid.UUID, delta decimal.Decimal) error

	CreateDebtTx(tx *gorm.DB, d *model.Debt) error
	// ListDebtsTx returns the client's debts oldest date first (FIFO order).
	ListDebtsTx(tx *gorm.DB, clientID uuid.UUID) ([]model.Debt, error)
	UpdateDebtAmountTx(tx *gorm.DB, debtID uuid.UUID, amount decimal.Decimal) error
	DeleteDebtTx(tx *gorm.DB, debtID uuid.UUID) error

	DB() *gorm.DB
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Preload("Debts").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) FindByPhone(ctx context.Context, phone string) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Preload("Debts").First(&c, "phone = ?", phone).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) FindByReferralCode(ctx context.Context, code string) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).First(&c, "referral_code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) List(ctx context.Context, page, limit int, name string) ([]model.Client, int64, error) {
	var clients []model.Client
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Client{})
	if name != "" {
		q = q.Where("firstname ILIKE ?", "%"+name+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := q.Preload("Debts").Order("firstname ASC").Limit(limit).Offset(offset).Find(&clients).Error
	return clients, total, err
}

func (r *clientRepo) ListAll(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).Preload("Debts").Find(&clients).Error
	return clients, err
}

func (r *clientRepo) Update(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Debt{}, "client_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Client{}, "id = ?", id).Error
	})
}

func (r *clientRepo) AddBonusTx(tx *gorm.DB, clientID uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Client{}).Where("id = ?", clientID).
		Update("bonus", gorm.Expr("bonus + ?", delta)).Error
}

func (r *clientRepo) AddBonus(ctx context.Context, clientID uuid.UUID, delta decimal.Decimal) error {
	return r.AddBonusTx(r.db.WithContext(ctx), clientID, delta)
}

func (r *clientRepo) CreateDebtTx(tx *gorm.DB, d *model.Debt) error {
	return tx.Create(d).Error
}

func (r *clientRepo) ListDebtsTx(tx *gorm.DB, clientID uuid.UUID) ([]model.Debt, error) {
	var debts []model.Debt
	err := tx.Where("client_id = ?", clientID).Order("date ASC").Find(&debts).Error
	return debts, err
}

func (r *clientRepo) UpdateDebtAmountTx(tx *gorm.DB, debtID uuid.UUID, amount decimal.Decimal) error {
	return tx.Model(&model.Debt{}).Where("id = ?", debtID).Update("amount", amount).Error
}

func (r *clientRepo) DeleteDebtTx(tx *gorm.DB, debtID uuid.UUID) error {
	return tx.Delete(&model.Debt{}, "id = ?", debtID).Error
}

func (r *clientRepo) DB() *gorm.DB { return r.db }
