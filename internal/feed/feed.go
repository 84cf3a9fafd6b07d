// Package feed implements next-card selection: an exclusion-aware candidate
// predicate plus weighted sampling that surfaces less-engaged snipits more
// often than heavily-checked ones.
package feed

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CuriouslyCory/snippit.fyi/internal/apperrors"
	"github.com/CuriouslyCory/snippit.fyi/internal/ledger"
	"github.com/CuriouslyCory/snippit.fyi/internal/models"
	"github.com/CuriouslyCory/snippit.fyi/internal/random"
)

// Candidates builds the eligibility predicate for one feed request. Focus
// mode draws from the public pool; followed mode from snipits the requester
// already has an interaction record for. Snipits the requester has noped are
// always excluded, as is excludeID (the card just shown). Each exclusion is
// a separate ANDed negation.
func Candidates(userID *uuid.UUID, mode models.FeedMode, excludeID *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch mode {
		case models.FeedModeFollowed:
			if userID == nil {
				// A followed feed is per-user; without one nothing matches.
				return db.Where("1 = 0")
			}
			db = db.Where(
				"EXISTS (SELECT 1 FROM snipit_interactions WHERE snipit_interactions.snipit_id = snipits.id AND snipit_interactions.user_id = ?)",
				*userID,
			)
		default:
			db = db.Where("snipits.is_public = ?", true)
		}
		if userID != nil {
			db = db.Scopes(ledger.NotNoped(*userID))
		}
		if excludeID != nil {
			db = db.Where("snipits.id <> ?", *excludeID)
		}
		return db
	}
}

// Selector picks the next snipit to show.
type Selector struct {
	db *gorm.DB
}

// NewSelector creates a Selector over db.
func NewSelector(db *gorm.DB) *Selector {
	return &Selector{db: db}
}

// GetNext returns the next snipit for the requester, or (nil, nil) when no
// candidate is available. A nil userID is an anonymous request, allowed for
// the focus feed only and sampled uniformly. Authenticated requests sample
// log-skewed over the candidates ordered from least- to most-checked by the
// requester (num_checked asc, then last_checked asc with never-checked
// first), so rarely-seen snipits surface more often without starving the
// rest. The returned snipit carries its tags, its creator, and the
// requester's own interaction record when one exists.
func (s *Selector) GetNext(ctx context.Context, userID *uuid.UUID, mode models.FeedMode, excludeID *uint) (*models.Snipit, error) {
	if !mode.Valid() {
		return nil, apperrors.Validation("unknown feed mode")
	}
	if mode == models.FeedModeFollowed && userID == nil {
		return nil, apperrors.Unauthorized("the followed feed requires a signed-in user")
	}

	scope := Candidates(userID, mode, excludeID)

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Snipit{}).Scopes(scope).
		Count(&count).Error; err != nil {
		return nil, apperrors.Storage("failed to count candidates", err)
	}
	if count == 0 {
		return nil, nil
	}

	offset, err := sampleOffset(userID != nil, int(count))
	if err != nil {
		return nil, apperrors.InvalidRange("failed to compute feed offset", err)
	}

	q := s.db.WithContext(ctx).Model(&models.Snipit{}).Scopes(scope).
		Preload("Tags").
		Preload("Creator")
	if userID != nil {
		q = q.Select("snipits.*").
			Joins("LEFT JOIN snipit_interactions ON snipit_interactions.snipit_id = snipits.id AND snipit_interactions.user_id = ?", *userID).
			Order("COALESCE(snipit_interactions.num_checked, 0) ASC").
			Order("snipit_interactions.last_checked ASC NULLS FIRST").
			Preload("Interactions", "user_id = ?", *userID)
	}
	q = q.Order("snipits.id ASC")

	var snipits []*models.Snipit
	if err := q.Offset(offset).Limit(1).Find(&snipits).Error; err != nil {
		return nil, apperrors.Storage("failed to fetch candidate", err)
	}
	if len(snipits) == 0 {
		// A candidate vanished between count and fetch; the next request
		// re-samples.
		return nil, nil
	}
	return snipits[0], nil
}

// sampleOffset maps count candidates to a zero-based offset. Anonymous
// requests draw uniformly; signed-in requests draw log-skewed toward the
// front of the engagement ordering.
func sampleOffset(authenticated bool, count int) (int, error) {
	if !authenticated {
		return random.Int(0, count-1)
	}
	n, err := random.Logarithmic(1, count)
	if err != nil {
		return 0, err
	}
	offset := n - 1
	if offset < 0 {
		offset = 0
	}
	if offset > count-1 {
		offset = count - 1
	}
	return offset, nil
}
