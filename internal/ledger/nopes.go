package ledger

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CuriouslyCory/snippit.fyi/internal/apperrors"
	"github.com/CuriouslyCory/snippit.fyi/internal/models"
)

// NopeRegistry owns the permanent per-user exclusion list. The only write
// path is Add, called from Skip; the feed consumes NotNoped to filter
// candidates.
type NopeRegistry struct {
	db *gorm.DB
}

// NewNopeRegistry creates a registry over db, which may be a transaction.
func NewNopeRegistry(db *gorm.DB) *NopeRegistry {
	return &NopeRegistry{db: db}
}

// Has reports whether the user has noped the snipit.
func (r *NopeRegistry) Has(userID uuid.UUID, snipitID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Nope{}).
		Where("user_id = ? AND snipit_id = ?", userID, snipitID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Storage("failed to look up nope record", err)
	}
	return count > 0, nil
}

// Add records a permanent exclusion. A duplicate insert surfaces as
// Conflict; callers decide whether that is benign.
func (r *NopeRegistry) Add(userID uuid.UUID, snipitID uint) error {
	nope := models.Nope{UserID: userID, SnipitID: snipitID}
	if err := r.db.Create(&nope).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("snipit already noped")
		}
		return apperrors.Storage("failed to create nope record", err)
	}
	return nil
}

// NotNoped is the candidate-filter predicate excluding everything the user
// has noped.
func NotNoped(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"NOT EXISTS (SELECT 1 FROM nopes WHERE nopes.snipit_id = snipits.id AND nopes.user_id = ?)",
			userID,
		)
	}
}
