package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/wedsync/backend/internal/models"
)

// isNotFound reports whether err means "no such record". The database
// layer rewrites gorm.ErrRecordNotFound into models.ErrResourceNotFound,
// both are checked so the services do not depend on callback ordering.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrResourceNotFound)
}
