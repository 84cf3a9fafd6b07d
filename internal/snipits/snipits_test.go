package snipits

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CuriouslyCory/snippit.fyi/internal/apperrors"
	"github.com/CuriouslyCory/snippit.fyi/internal/models"
	"github.com/CuriouslyCory/snippit.fyi/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		APIKey:       name + "-key",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreate(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "author")

	snipit, err := NewService(db).Create(context.Background(), user.ID, "  Drink water  ", true, []string{" Health ", "habits", "HEALTH"})
	require.NoError(t, err)

	assert.Equal(t, "Drink water", snipit.Prompt)
	assert.True(t, snipit.IsPublic)
	assert.Equal(t, 1, snipit.NumFollows)
	assert.Equal(t, user.ID, snipit.CreatedBy)

	// Tags are trimmed, lowercased, and deduplicated.
	var stored models.Snipit
	require.NoError(t, db.Preload("Tags").Preload("Interactions").First(&stored, snipit.ID).Error)
	require.Len(t, stored.Tags, 2)
	names := []string{stored.Tags[0].Name, stored.Tags[1].Name}
	assert.ElementsMatch(t, []string{"health", "habits"}, names)

	// The creator starts with an interaction record.
	require.Len(t, stored.Interactions, 1)
	assert.Equal(t, user.ID, stored.Interactions[0].UserID)
	assert.Equal(t, 1, stored.Interactions[0].NumChecked)
}

func TestCreateReusesExistingTags(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "author")
	svc := NewService(db)

	_, err := svc.Create(context.Background(), user.ID, "one", true, []string{"go"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), user.ID, "two", true, []string{"go", "tips"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateValidation(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "author")
	svc := NewService(db)

	_, err := svc.Create(context.Background(), user.ID, "   ", true, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Create(context.Background(), uuid.Nil, "prompt", true, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGet(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "author")
	svc := NewService(db)

	created, err := svc.Create(context.Background(), user.ID, "hello", false, []string{"misc"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Prompt)
	require.NotNil(t, got.Creator)
	assert.Equal(t, user.ID, got.Creator.ID)
	require.Len(t, got.Tags, 1)

	_, err = svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "author")
	stranger := createUser(t, db, "stranger")
	svc := NewService(db)

	created, err := svc.Create(context.Background(), author.ID, "mine", true, nil)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), stranger.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), author.ID, created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The creator's interaction record goes with it.
	var interactions int64
	require.NoError(t, db.Model(&models.SnipitInteraction{}).Count(&interactions).Error)
	assert.Zero(t, interactions)
}

func TestDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "author")

	err := NewService(db).Delete(context.Background(), user.ID, 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
