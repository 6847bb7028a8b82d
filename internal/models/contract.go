package models

import "time"

type ContractStatus string

// Terminated contracts never count towards outstanding or payable jobs.
const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

type Contract struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Terms        string         `gorm:"not null" json:"terms"`
	Status       ContractStatus `gorm:"type:varchar(16);not null;default:'new';index" json:"status"`
	ClientID     uint           `gorm:"not null;index" json:"clientId"`
	Client       *Profile       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ContractorID uint           `gorm:"not null;index" json:"contractorId"`
	Contractor   *Profile       `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	Jobs         []Job          `gorm:"foreignKey:ContractID" json:"jobs,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (c *Contract) IsTerminated() bool {
	return c.Status == ContractStatusTerminated
}
