package ledger

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

func createSnipit(t *testing.T, db *gorm.DB, owner *models.User, prompt string) *models.Snipit {
	t.Helper()
	snipit := &models.Snipit{
		Prompt:    prompt,
		IsPublic:  true,
		CreatedBy: owner.ID,
	}
	require.NoError(t, db.Create(snipit).Error)
	return snipit
}

func loadSnipit(t *testing.T, db *gorm.DB, id uint) *models.Snipit {
	t.Helper()
	var snipit models.Snipit
	require.NoError(t, db.First(&snipit, id).Error)
	return &snipit
}

func TestCheckFirstTime(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	user := createUser(t, db, "reader")
	snipit := createSnipit(t, db, owner, "drink water")

	require.NoError(t, New(db).Check(context.Background(), user.ID, snipit.ID))

	var interaction models.SnipitInteraction
	require.NoError(t, db.Where("user_id = ? AND snipit_id = ?", user.ID, snipit.ID).First(&interaction).Error)
	assert.Equal(t, 1, interaction.NumChecked)
	assert.False(t, interaction.LastChecked.IsZero())

	assert.Equal(t, 1, loadSnipit(t, db, snipit.ID).NumFollows)
}

func TestCheckSecondTime(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	user := createUser(t, db, "reader")
	snipit := createSnipit(t, db, owner, "stretch")
	l := New(db)

	require.NoError(t, l.Check(context.Background(), user.ID, snipit.ID))
	require.NoError(t, l.Check(context.Background(), user.ID, snipit.ID))

	var interaction models.SnipitInteraction
	require.NoError(t, db.Where("user_id = ? AND snipit_id = ?", user.ID, snipit.ID).First(&interaction).Error)
	assert.Equal(t, 2, interaction.NumChecked)

	// The aggregate only counts distinct users, not repeat checks.
	assert.Equal(t, 1, loadSnipit(t, db, snipit.ID).NumFollows)
}

func TestCheckCountsDistinctUsers(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	snipit := createSnipit(t, db, owner, "breathe")
	l := New(db)

	for _, name := range []string{"a", "b", "c"} {
		user := createUser(t, db, name)
		require.NoError(t, l.Check(context.Background(), user.ID, snipit.ID))
	}

	assert.Equal(t, 3, loadSnipit(t, db, snipit.ID).NumFollows)
}

func TestCheckSnipitNotFound(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "reader")

	err := New(db).Check(context.Background(), user.ID, 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.SnipitInteraction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckRequiresIdentity(t *testing.T) {
	db := newTestDB(t)

	err := New(db).Check(context.Background(), uuid.Nil, 1)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSkipAfterCheck(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	user := createUser(t, db, "reader")
	snipit := createSnipit(t, db, owner, "floss")
	l := New(db)

	require.NoError(t, l.Check(context.Background(), user.ID, snipit.ID))
	require.NoError(t, l.Skip(context.Background(), user.ID, snipit.ID))

	var interactions int64
	require.NoError(t, db.Model(&models.SnipitInteraction{}).
		Where("user_id = ? AND snipit_id = ?", user.ID, snipit.ID).
		Count(&interactions).Error)
	assert.Zero(t, interactions)

	assert.Equal(t, 0, loadSnipit(t, db, snipit.ID).NumFollows)

	var nopes int64
	require.NoError(t, db.Model(&models.Nope{}).
		Where("user_id = ? AND snipit_id = ?", user.ID, snipit.ID).
		Count(&nopes).Error)
	assert.EqualValues(t, 1, nopes)
}

func TestSkipWithoutPriorCheck(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	user := createUser(t, db, "reader")
	snipit := createSnipit(t, db, owner, "call mom")

	require.NoError(t, New(db).Skip(context.Background(), user.ID, snipit.ID))

	// Counter untouched and never negative.
	assert.Equal(t, 0, loadSnipit(t, db, snipit.ID).NumFollows)

	var nopes int64
	require.NoError(t, db.Model(&models.Nope{}).
		Where("user_id = ? AND snipit_id = ?", user.ID, snipit.ID).
		Count(&nopes).Error)
	assert.EqualValues(t, 1, nopes)
}

func TestSkipTwiceIsNoOp(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	user := createUser(t, db, "reader")
	snipit := createSnipit(t, db, owner, "water plants")
	l := New(db)

	require.NoError(t, l.Skip(context.Background(), user.ID, snipit.ID))
	require.NoError(t, l.Skip(context.Background(), user.ID, snipit.ID))

	var nopes int64
	require.NoError(t, db.Model(&models.Nope{}).
		Where("user_id = ? AND snipit_id = ?", user.ID, snipit.ID).
		Count(&nopes).Error)
	assert.EqualValues(t, 1, nopes)
	assert.Equal(t, 0, loadSnipit(t, db, snipit.ID).NumFollows)
}

func TestSkipSnipitNotFound(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "reader")

	err := New(db).Skip(context.Background(), user.ID, 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSkipRequiresIdentity(t *testing.T) {
	db := newTestDB(t)

	err := New(db).Skip(context.Background(), uuid.Nil, 1)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestNopeRegistryHasAndAdd(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	user := createUser(t, db, "reader")
	snipit := createSnipit(t, db, owner, "journal")
	registry := NewNopeRegistry(db)

	has, err := registry.Has(user.ID, snipit.ID)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, registry.Add(user.ID, snipit.ID))

	has, err = registry.Has(user.ID, snipit.ID)
	require.NoError(t, err)
	assert.True(t, has)

	// The unique constraint turns a duplicate insert into a conflict.
	err = registry.Add(user.ID, snipit.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
