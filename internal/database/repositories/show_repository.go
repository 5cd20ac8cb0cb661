package repositories

import (
	"context"

	"github.com/lucsky/cuid"
	"gorm.io/gorm"

	"github.com/rgbstage/rgbstage-go/internal/database/models"
)

// ShowRepository handles stored show definitions.
type ShowRepository struct {
	db *gorm.DB
}

// NewShowRepository creates a new ShowRepository.
func NewShowRepository(db *gorm.DB) *ShowRepository {
	return &ShowRepository{db: db}
}

// FindAll returns all stored shows ordered by name.
func (r *ShowRepository) FindAll(ctx context.Context) ([]models.ShowRecord, error) {
	var shows []models.ShowRecord
	result := r.db.WithContext(ctx).Order("name ASC").Find(&shows)
	return shows, result.Error
}

// FindByName returns a stored show by name, or nil if it does not exist.
func (r *ShowRepository) FindByName(ctx context.Context, name string) (*models.ShowRecord, error) {
	var show models.ShowRecord
	result := r.db.WithContext(ctx).First(&show, "name = ?", name)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &show, nil
}

// Upsert creates or updates a stored show definition by name.
// The definition is the raw YAML document.
func (r *ShowRepository) Upsert(ctx context.Context, name, definition string) (*models.ShowRecord, error) {
	existing, err := r.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Definition = definition
		if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	show := models.ShowRecord{
		ID:         cuid.New(),
		Name:       name,
		Definition: definition,
	}
	if err := r.db.WithContext(ctx).Create(&show).Error; err != nil {
		return nil, err
	}
	return &show, nil
}

// Delete removes a stored show by name.
func (r *ShowRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Delete(&models.ShowRecord{}, "name = ?", name).Error
}
