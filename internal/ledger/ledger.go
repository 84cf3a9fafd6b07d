// Package ledger owns the per-user interaction records and the snipit
// popularity counter. Check and Skip are the only write paths, and each runs
// as a single transaction so the record and the counter can never drift
// apart.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CuriouslyCory/snippit.fyi/internal/apperrors"
	"github.com/CuriouslyCory/snippit.fyi/internal/models"
)

// Ledger applies acknowledge/dismiss actions against the store.
type Ledger struct {
	db *gorm.DB
}

// New creates a Ledger over db.
func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Check acknowledges a snipit for the user. The first check creates the
// interaction record and bumps the snipit's num_follows; later checks only
// increment the record's num_checked. If two first checks race, the loser
// hits the (user_id, snipit_id) unique constraint and the whole transaction
// is retried once, which lands in the update branch.
func (l *Ledger) Check(ctx context.Context, userID uuid.UUID, snipitID uint) error {
	if userID == uuid.Nil {
		return apperrors.Unauthorized("you must be logged in to perform this action")
	}
	err := l.check(ctx, userID, snipitID)
	if errors.Is(err, apperrors.ErrConflict) {
		err = l.check(ctx, userID, snipitID)
	}
	return err
}

func (l *Ledger) check(ctx context.Context, userID uuid.UUID, snipitID uint) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var snipit models.Snipit
		if err := tx.First(&snipit, snipitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("snipit does not exist")
			}
			return apperrors.Storage("failed to load snipit", err)
		}

		var interaction models.SnipitInteraction
		err := tx.Where("user_id = ? AND snipit_id = ?", userID, snipitID).
			First(&interaction).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			interaction = models.SnipitInteraction{
				UserID:      userID,
				SnipitID:    snipitID,
				NumChecked:  1,
				LastChecked: time.Now(),
			}
			if err := tx.Create(&interaction).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperrors.Conflict("interaction already exists")
				}
				return apperrors.Storage("failed to create interaction", err)
			}
			if err := tx.Model(&snipit).
				UpdateColumn("num_follows", gorm.Expr("num_follows + ?", 1)).Error; err != nil {
				return apperrors.Storage("failed to increment num_follows", err)
			}
		case err != nil:
			return apperrors.Storage("failed to load interaction", err)
		default:
			if err := tx.Model(&interaction).Updates(map[string]interface{}{
				"num_checked":  gorm.Expr("num_checked + ?", 1),
				"last_checked": time.Now(),
			}).Error; err != nil {
				return apperrors.Storage("failed to update interaction", err)
			}
		}
		return nil
	})
}

// Skip dismisses a snipit for the user: any interaction record is removed
// (decrementing num_follows, floored at zero) and a nope record is written
// so the snipit never comes back. Skipping an already-noped snipit is a
// no-op success.
func (l *Ledger) Skip(ctx context.Context, userID uuid.UUID, snipitID uint) error {
	if userID == uuid.Nil {
		return apperrors.Unauthorized("you must be logged in to perform this action")
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var snipit models.Snipit
		if err := tx.First(&snipit, snipitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("snipit does not exist")
			}
			return apperrors.Storage("failed to load snipit", err)
		}

		var interaction models.SnipitInteraction
		err := tx.Where("user_id = ? AND snipit_id = ?", userID, snipitID).
			First(&interaction).Error
		switch {
		case err == nil:
			if err := tx.Delete(&interaction).Error; err != nil {
				return apperrors.Storage("failed to delete interaction", err)
			}
			next := snipit.NumFollows - 1
			if next < 0 {
				next = 0
			}
			if err := tx.Model(&snipit).UpdateColumn("num_follows", next).Error; err != nil {
				return apperrors.Storage("failed to decrement num_follows", err)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return apperrors.Storage("failed to load interaction", err)
		}

		nopes := NewNopeRegistry(tx)
		// Checking first keeps a repeated skip from aborting the
		// transaction after the interaction delete has applied.
		noped, err := nopes.Has(userID, snipitID)
		if err != nil {
			return err
		}
		if noped {
			return nil
		}
		return nopes.Add(userID, snipitID)
	})
}
