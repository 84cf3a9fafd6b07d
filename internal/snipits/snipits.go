// Package snipits is the authoring service: create, fetch, and delete.
package snipits

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CuriouslyCory/snippit.fyi/internal/apperrors"
	"github.com/CuriouslyCory/snippit.fyi/internal/models"
)

// Service provides snipit authoring operations.
type Service struct {
	db *gorm.DB
}

// NewService creates a Service over db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create stores a new snipit for userID. Tag names are trimmed, lowercased,
// and upserted; the creator starts with num_follows = 1 and an initial
// interaction record, all in one transaction.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, prompt string, isPublic bool, tagNames []string) (*models.Snipit, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Unauthorized("you must be logged in to perform this action")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, apperrors.Validation("prompt must not be empty")
	}

	var created *models.Snipit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := upsertTags(tx, tagNames)
		if err != nil {
			return err
		}

		snipit := &models.Snipit{
			Prompt:     prompt,
			IsPublic:   isPublic,
			NumFollows: 1,
			CreatedBy:  userID,
			Tags:       tags,
			Interactions: []*models.SnipitInteraction{{
				UserID:      userID,
				NumChecked:  1,
				LastChecked: time.Now(),
			}},
		}
		if err := tx.Create(snipit).Error; err != nil {
			return apperrors.Storage("failed to create snipit", err)
		}
		created = snipit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get fetches a snipit by id with its tags and creator.
func (s *Service) Get(ctx context.Context, id uint) (*models.Snipit, error) {
	var snipit models.Snipit
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Creator").
		First(&snipit, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("snipit does not exist")
		}
		return nil, apperrors.Storage("failed to load snipit", err)
	}
	return &snipit, nil
}

// Delete removes a snipit. Only the creator may delete it.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, id uint) error {
	if userID == uuid.Nil {
		return apperrors.Unauthorized("you must be logged in to perform this action")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var snipit models.Snipit
		if err := tx.First(&snipit, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("snipit does not exist")
			}
			return apperrors.Storage("failed to load snipit", err)
		}
		if snipit.CreatedBy != userID {
			return apperrors.Forbidden("you can only delete snipits you created")
		}
		if err := tx.Select("Interactions", "Nopes", "Tags").Delete(&snipit).Error; err != nil {
			return apperrors.Storage("failed to delete snipit", err)
		}
		return nil
	})
}

func upsertTags(tx *gorm.DB, names []string) ([]*models.Tag, error) {
	tags := make([]*models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag models.Tag
		if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, apperrors.Storage("failed to upsert tag", err)
		}
		tags = append(tags, &tag)
	}
	return tags, nil
}
