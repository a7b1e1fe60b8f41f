package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/dto"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

type PaymentRepository interface {
	CreateTx(tx *gorm.DB, p *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	SaveTx(tx *gorm.DB, p *model.Payment) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, filter dto.PaymentFilter) ([]model.Payment, int64, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Payment, error)
	DB() *gorm.DB
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) CreateTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Create(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Preload("Items").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) SaveTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Save(p).Error
}

func (r *paymentRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Delete(&model.PaymentItem{}, "payment_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Payment{}, "id = ?", id).Error
}

func (r *paymentRepo) List(ctx context.Context, filter dto.PaymentFilter) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Payment{})

	const day = "2006-01-02"
	if filter.Date != "" {
		if d, err := time.Parse(day, filter.Date); err == nil {
			q = q.Where("created_at >= ? AND created_at < ?", d, d.AddDate(0, 0, 1))
		}
	} else {
		if filter.StartDate != "" {
			if d, err := time.Parse(day, filter.StartDate); err == nil {
				q = q.Where("created_at >= ?", d)
			}
		}
		if filter.EndDate != "" {
			if d, err := time.Parse(day, filter.EndDate); err == nil {
				q = q.Where("created_at < ?", d.AddDate(0, 0, 1))
			}
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).Preload("Items").
		Where("client_id = ?", clientID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) DB() *gorm.DB { return r.db }
