package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnquiryStatus represents the review state of a contact enquiry
type EnquiryStatus string

const (
	EnquiryStatusNew     EnquiryStatus = "new"
	EnquiryStatusRead    EnquiryStatus = "read"
	EnquiryStatusReplied EnquiryStatus = "replied"
)

// EnquiryStatuses lists every status in workflow order
var EnquiryStatuses = []EnquiryStatus{EnquiryStatusNew, EnquiryStatusRead, EnquiryStatusReplied}

// Valid reports whether s is one of the enumerated statuses
func (s EnquiryStatus) Valid() bool {
	switch s {
	case EnquiryStatusNew, EnquiryStatusRead, EnquiryStatusReplied:
		return true
	}
	return false
}

// Enquiry represents a contact form submission
type Enquiry struct {
	ID        string        `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string        `json:"name" gorm:"not null"`
	Email     string        `json:"email" gorm:"not null"`
	Phone     string        `json:"phone,omitempty"`
	Subject   string        `json:"subject,omitempty"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	Status    EnquiryStatus `json:"status" gorm:"type:varchar(10);not null;default:'new';index"`
	CreatedAt time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// TableName sets the table name for Enquiry model
func (Enquiry) TableName() string {
	return "enquiries"
}

// BeforeCreate assigns an ID and the initial status
func (e *Enquiry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = EnquiryStatusNew
	}
	return nil
}
