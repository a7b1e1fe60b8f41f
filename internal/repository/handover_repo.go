package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

type HandoverRepository interface {
	Create(ctx context.Context, h *model.Handover) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Handover, error)
	SaveTx(tx *gorm.DB, h *model.Handover) error
	// TransitionStatusTx flips the status only while it still equals from,
	// reporting whether the compare-and-set won. Concurrent accepts and
	// cancels of the same handover serialize on this update.
	TransitionStatusTx(tx *gorm.DB, id uuid.UUID, from, to string) (int64, error)
	// ListByEmployee returns handovers where the seller is the employee.
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.Handover, error)
	// ListByParticipant returns handovers where the seller is either party.
	ListByParticipant(ctx context.Context, sellerID uuid.UUID) ([]model.Handover, error)
	DB() *gorm.DB
}

type handoverRepo struct{ db *gorm.DB }

func NewHandoverRepository(db *gorm.DB) HandoverRepository { return &handoverRepo{db: db} }

func (r *handoverRepo) Create(ctx context.Context, h *model.Handover) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *handoverRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Handover, error) {
	var h model.Handover
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *handoverRepo) SaveTx(tx *gorm.DB, h *model.Handover) error {
	return tx.Save(h).Error
}

func (r *handoverRepo) TransitionStatusTx(tx *gorm.DB, id uuid.UUID, from, to string) (int64, error) {
	res := tx.Model(&model.Handover{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *handoverRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.Handover, error) {
	var hs []model.Handover
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).
		Order("date DESC").Find(&hs).Error
	return hs, err
}

func (r *handoverRepo) ListByParticipant(ctx context.Context, sellerID uuid.UUID) ([]model.Handover, error) {
	var hs []model.Handover
	err := r.db.WithContext(ctx).
		Where("employee_id = ? OR supervisor_id = ?", sellerID, sellerID).
		Order("date DESC").Find(&hs).Error
	return hs, err
}

func (r *handoverRepo) DB() *gorm.DB { return r.db }
