package state

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bazaarnow/marketplace/internal/logging"
	"github.com/bazaarnow/marketplace/internal/models"
	"github.com/bazaarnow/marketplace/internal/session"
)

// stateKey matches the original browser storage key.
const stateKey = "bazaarnow_state"

// Blob is the one JSON document the app round-trips on every mutation:
// the four session slots, the cart entries and the order history.
// There is no schema versioning.
type Blob struct {
	Sessions session.Snapshot   `json:"sessions"`
	Cart     []models.CartEntry `json:"cart"`
	Orders   []models.Order     `json:"orders"`
}

// Store persists the blob into a single-row key/value table.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Load reads the persisted blob. A missing row or an unreadable blob
// means start from empty defaults; neither is an error.
func (s *Store) Load(ctx context.Context) Blob {
	var row models.StateBlob
	err := s.DB.WithContext(ctx).Where("key = ?", stateKey).First(&row).Error
	if err != nil {
		return Blob{}
	}

	var blob Blob
	if err := json.Unmarshal(row.Value, &blob); err != nil {
		logging.FromContext(ctx).Warn("state_blob_unreadable", "error", err)
		return Blob{}
	}
	return blob
}

// Save writes the blob back verbatim, replacing the previous row.
func (s *Store) Save(ctx context.Context, blob Blob) error {
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("state: marshal: %w", err)
	}

	row := models.StateBlob{Key: stateKey, Value: data}
	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error; err != nil {
		return fmt.Errorf("state: save: %w", err)
	}
	return nil
}
