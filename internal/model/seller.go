package model

import (
	"time"

	"github.com/google/uuid"
)

// Seller roles. Admins double as handover supervisors.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// Seller is a system user (employee). Role is an explicit discriminator —
// capability checks compare against the Role constants, never the entity kind.
type Seller struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	Firstname    string    `gorm:"uniqueIndex;not null" json:"firstname"`
	Phone        string    `json:"phone"`
	Login        string    `gorm:"uniqueIndex;not null" json:"login"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Status       string    `json:"status"`
	Role         string    `gorm:"type:varchar(20);not null;default:'seller'" json:"type"`
	LastSeen     time.Time `json:"lastseen"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// IsSupervisor reports whether the seller can accept handovers.
func (s *Seller) IsSupervisor() bool { return s.Role == RoleAdmin }
