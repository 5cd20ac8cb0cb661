package repositories

import (
	"context"

	"github.com/lucsky/cuid"
	"gorm.io/gorm"

	"github.com/rgbstage/rgbstage-go/internal/database/models"
	"github.com/rgbstage/rgbstage-go/internal/ledcolor"
)

// PresetRepository handles gradient preset data access.
type PresetRepository struct {
	db *gorm.DB
}

// NewPresetRepository creates a new PresetRepository.
func NewPresetRepository(db *gorm.DB) *PresetRepository {
	return &PresetRepository{db: db}
}

// FindAll returns all presets with their stops.
func (r *PresetRepository) FindAll(ctx context.Context) ([]models.GradientPreset, error) {
	var presets []models.GradientPreset
	result := r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("name ASC").
		Find(&presets)
	return presets, result.Error
}

// FindByName returns a preset by name, or nil if it does not exist.
func (r *PresetRepository) FindByName(ctx context.Context, name string) (*models.GradientPreset, error) {
	var preset models.GradientPreset
	result := r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&preset, "name = ?", name)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &preset, nil
}

// Upsert creates or replaces a preset and its stops by name.
func (r *PresetRepository) Upsert(ctx context.Context, name string, builtIn bool, stops []ledcolor.Stop) (*models.GradientPreset, error) {
	existing, err := r.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	preset := models.GradientPreset{
		Name:    name,
		BuiltIn: builtIn,
	}
	if existing != nil {
		preset.ID = existing.ID
		if err := r.db.WithContext(ctx).
			Delete(&models.GradientStop{}, "preset_id = ?", existing.ID).Error; err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Save(&preset).Error; err != nil {
			return nil, err
		}
	} else {
		preset.ID = cuid.New()
		if err := r.db.WithContext(ctx).Create(&preset).Error; err != nil {
			return nil, err
		}
	}

	for i, stop := range stops {
		row := models.GradientStop{
			ID:        cuid.New(),
			PresetID:  preset.ID,
			SortOrder: i,
			Position:  stop.Position,
			Hue:       stop.Color.H,
			Sat:       stop.Color.S,
			Val:       stop.Color.V,
		}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return nil, err
		}
		preset.Stops = append(preset.Stops, row)
	}

	return &preset, nil
}

// Delete deletes a preset and its stops by name.
func (r *PresetRepository) Delete(ctx context.Context, name string) error {
	preset, err := r.FindByName(ctx, name)
	if err != nil || preset == nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Delete(&models.GradientStop{}, "preset_id = ?", preset.ID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.GradientPreset{}, "id = ?", preset.ID).Error
}

// SeedBuiltins inserts the built-in presets that are not present yet.
// Existing rows, including user-edited copies, are left untouched.
func (r *PresetRepository) SeedBuiltins(ctx context.Context) error {
	for _, name := range ledcolor.PresetNames() {
		existing, err := r.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := r.Upsert(ctx, name, true, ledcolor.PresetStops(name)); err != nil {
			return err
		}
	}
	return nil
}

// Stops converts a preset's stop rows into color stops.
func Stops(preset *models.GradientPreset) []ledcolor.Stop {
	if preset == nil {
		return nil
	}
	stops := make([]ledcolor.Stop, len(preset.Stops))
	for i, row := range preset.Stops {
		stops[i] = ledcolor.Stop{
			Position: row.Position,
			Color:    ledcolor.HSV{H: row.Hue, S: row.Sat, V: row.Val},
		}
	}
	return stops
}
