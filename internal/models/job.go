package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidJobPrice = errors.New("job price must be positive")

// Job is a priced unit of work. Paid flips false -> true once, together with
// PaymentDate, and never back.
type Job struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Description string          `gorm:"not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Paid        bool            `gorm:"not null;default:false;index" json:"paid"`
	PaymentDate *time.Time      `json:"paymentDate"`
	ContractID  uint            `gorm:"not null;index" json:"contractId"`
	Contract    *Contract       `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if !j.Price.IsPositive() {
		return ErrInvalidJobPrice
	}
	j.Price = j.Price.Round(2)
	return nil
}
