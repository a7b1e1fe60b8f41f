package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/repository"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/worker"
)

// Stock alert thresholds. An alert fires only when an adjustment crosses
// the threshold downward, not on every value at or below it.
const (
	lowStockThreshold      = 1
	negativeStockThreshold = -1
)

// InventoryService serializes stock changes per product and reports which
// admin alerts the change triggered. Alerts are returned, not sent: callers
// enqueue them only after their surrounding transaction commits.
type InventoryService interface {
	AdjustStockTx(tx *gorm.DB, productID uuid.UUID, name string, delta int) (int, []worker.Notification, error)
}

type inventoryService struct {
	products repository.ProductRepository
}

func NewInventoryService(products repository.ProductRepository) InventoryService {
	return &inventoryService{products: products}
}

func (s *inventoryService) AdjustStockTx(tx *gorm.DB, productID uuid.UUID, name string, delta int) (int, []worker.Notification, error) {
	newQty, err := s.products.AdjustStockTx(tx, productID, delta)
	if err != nil {
		return 0, nil, err
	}
	return newQty, StockAlerts(name, newQty-delta, newQty), nil
}

// StockAlerts computes the admin alerts a quantity change triggers.
// Each alert fires exactly once, on the downward crossing of its threshold:
// 2→1 fires low stock, 1→0 does not fire it again; 0→-1 fires oversold.
func StockAlerts(name string, oldQty, newQty int) []worker.Notification {
	var alerts []worker.Notification
	if oldQty > lowStockThreshold && newQty <= lowStockThreshold {
		alerts = append(alerts, worker.Notification{
			Event:       worker.EventLowStock,
			ProductName: name,
			Quantity:    newQty,
		})
	}
	if oldQty > negativeStockThreshold && newQty <= negativeStockThreshold {
		alerts = append(alerts, worker.Notification{
			Event:       worker.EventNegativeStock,
			ProductName: name,
			Quantity:    newQty,
		})
	}
	return alerts
}
