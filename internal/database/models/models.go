// Package models contains the database model definitions for the preset
// and show library. These tables hold declarative definitions only; no
// runtime animation state is ever persisted.
package models

import (
	"time"
)

// GradientPreset is a named, ordered list of color stops.
// Table: gradient_presets
type GradientPreset struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	BuiltIn   bool      `gorm:"column:built_in;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relations (loaded separately)
	Stops []GradientStop `gorm:"foreignKey:PresetID"`
}

func (GradientPreset) TableName() string { return "gradient_presets" }

// GradientStop is one anchor color of a preset, HSV components in [0,1].
// Table: gradient_stops
type GradientStop struct {
	ID        string  `gorm:"column:id;primaryKey"`
	PresetID  string  `gorm:"column:preset_id;index"`
	SortOrder int     `gorm:"column:sort_order"`
	Position  float64 `gorm:"column:position"`
	Hue       float64 `gorm:"column:hue"`
	Sat       float64 `gorm:"column:sat"`
	Val       float64 `gorm:"column:val"`
}

func (GradientStop) TableName() string { return "gradient_stops" }

// ShowRecord is a saved show definition, stored as its YAML source.
// Table: shows
type ShowRecord struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name;uniqueIndex"`
	Definition string    `gorm:"column:definition"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ShowRecord) TableName() string { return "shows" }
