// Package handlers contains the gin HTTP handlers for the snippit API.
package handlers

import (
	"gorm.io/gorm"

	"github.com/CuriouslyCory/snippit.fyi/internal/feed"
	"github.com/CuriouslyCory/snippit.fyi/internal/ledger"
	"github.com/CuriouslyCory/snippit.fyi/internal/snipits"
)

// Handler bundles the services behind the HTTP API.
type Handler struct {
	db       *gorm.DB
	selector *feed.Selector
	ledger   *ledger.Ledger
	snipits  *snipits.Service
}

// NewHandler creates a Handler over db.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		db:       db,
		selector: feed.NewSelector(db),
		ledger:   ledger.New(db),
		snipits:  snipits.NewService(db),
	}
}
