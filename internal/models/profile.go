package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProfileType string

const (
	ProfileTypeClient     ProfileType = "client"
	ProfileTypeContractor ProfileType = "contractor"
)

var (
	ErrNegativeBalance    = errors.New("profile balance cannot be negative")
	ErrInvalidProfileType = errors.New("invalid profile type")
)

// Profile is a marketplace participant. Balance is only ever moved by the
// payment service.
type Profile struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	FirstName  string          `gorm:"not null" json:"firstName"`
	LastName   string          `gorm:"not null" json:"lastName"`
	Profession string          `gorm:"not null;default:''" json:"profession"`
	Balance    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance"`
	Type       ProfileType     `gorm:"type:varchar(16);not null;index" json:"type"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.Type != ProfileTypeClient && p.Type != ProfileTypeContractor {
		return ErrInvalidProfileType
	}
	if p.Balance.IsNegative() {
		return ErrNegativeBalance
	}
	p.Balance = p.Balance.Round(2)
	return nil
}

func (p *Profile) IsClient() bool {
	return p.Type == ProfileTypeClient
}
