package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedMode selects which pool of snipits a feed request draws from.
type FeedMode string

const (
	// FeedModeFocus serves the public pool.
	FeedModeFocus FeedMode = "focus"
	// FeedModeFollowed serves only snipits the requester has an active
	// interaction record for.
	FeedModeFollowed FeedMode = "followed"
)

// Valid reports whether m is a known feed mode.
func (m FeedMode) Valid() bool {
	return m == FeedModeFocus || m == FeedModeFollowed
}

// User represents an account that can create and interact with snipits.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name         string    `json:"name"`
	Email        string    `json:"-" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	APIKey       string    `json:"-" gorm:"uniqueIndex;not null"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Snipits []*Snipit `json:"snipits,omitempty" gorm:"foreignKey:CreatedBy"`
}

// BeforeCreate assigns the primary key so the model works on stores without
// a uuid-generating default.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Snipit is a single card in the feed. NumFollows is the aggregate
// popularity counter: the number of distinct users with an active
// interaction record. It is maintained exclusively by the ledger and the
// authoring service and never goes negative.
type Snipit struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Prompt     string    `json:"prompt" gorm:"not null"`
	IsPublic   bool      `json:"is_public" gorm:"not null;default:false;index"`
	NumFollows int       `json:"num_follows" gorm:"not null;default:0;check:num_follows >= 0"`
	CreatedBy  uuid.UUID `json:"created_by" gorm:"not null;type:uuid;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Foreign Key Relations
	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`

	// One-to-Many Relations
	Interactions []*SnipitInteraction `json:"interactions,omitempty" gorm:"foreignKey:SnipitID;constraint:OnDelete:CASCADE"`
	Nopes        []*Nope              `json:"-" gorm:"foreignKey:SnipitID;constraint:OnDelete:CASCADE"`

	// Many-to-Many Relations
	Tags []*Tag `json:"tags,omitempty" gorm:"many2many:snipit_tags"`
}

// SnipitInteraction tracks one user's engagement with one snipit. NumChecked
// only ever grows; the row is deleted outright when the user skips the
// snipit after having checked it.
type SnipitInteraction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"not null;type:uuid;uniqueIndex:idx_interactions_user_snipit"`
	SnipitID    uint      `json:"snipit_id" gorm:"not null;uniqueIndex:idx_interactions_user_snipit"`
	NumChecked  int       `json:"num_checked" gorm:"not null;default:0"`
	LastChecked time.Time `json:"last_checked" gorm:"not null;default:CURRENT_TIMESTAMP"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Foreign Key Relations
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Snipit *Snipit `json:"snipit,omitempty" gorm:"foreignKey:SnipitID;constraint:OnDelete:CASCADE"`
}

// Nope permanently excludes a snipit from one user's feed. Append-only.
type Nope struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"not null;type:uuid;uniqueIndex:idx_nopes_user_snipit"`
	SnipitID  uint      `json:"snipit_id" gorm:"not null;uniqueIndex:idx_nopes_user_snipit"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Foreign Key Relations
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Snipit *Snipit `json:"snipit,omitempty" gorm:"foreignKey:SnipitID;constraint:OnDelete:CASCADE"`
}

// Tag is a normalized lowercase label shared across snipits.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;unique;index:idx_tags_name"`

	// Many-to-Many Relations
	Snipits []*Snipit `json:"snipits,omitempty" gorm:"many2many:snipit_tags"`
}
