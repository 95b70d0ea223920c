package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ValidationErrorType = "validation"
	DuplicateErrorType  = "duplicate"
)

// BulkUserUploadError records a row that failed during a bulk user import so
// the actor can review and fix it later.
type BulkUserUploadError struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"` // The email that caused the error
	RowNumber    int       `json:"row_number"`
	ErrorMessage string    `json:"error_message"`
	ErrorType    string    `json:"error_type"`
	Resolved     bool      `json:"resolved"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy    string    `gorm:"not null" json:"created_by"` // Staff member performing the upload
}
