package models

import "time"

const (
	ScaleNumber     = "number"
	ScalePercentage = "percentage"
)

const (
	NumberScaleMax      = 10.0
	PercentageScaleMax  = 100.0
	DefaultMetricWeight = 1.0
)

type Metric struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	Name        string    `gorm:"not null"`
	ScaleType   string    `gorm:"not null;default:number"`
	Value       float64   `gorm:"not null;default:0"`
	Weight      float64   `gorm:"not null;default:1"`
	Icon        string    `gorm:"not null;default:''"`
	IsProtected bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type MetricIcon struct {
	Key   string
	Emoji string
}

// MetricIconCatalog is the closed set of icon keys a metric may store.
// Rendering assets are looked up from this table, never by reflection
// over an icon library.
func MetricIconCatalog() []MetricIcon {
	return []MetricIcon{
		{Key: "heart", Emoji: "❤️"},
		{Key: "chat", Emoji: "💬"},
		{Key: "gift", Emoji: "🎁"},
		{Key: "clock", Emoji: "⏰"},
		{Key: "hands", Emoji: "🤝"},
		{Key: "spark", Emoji: "✨"},
		{Key: "sun", Emoji: "☀️"},
		{Key: "moon", Emoji: "🌙"},
		{Key: "fire", Emoji: "🔥"},
		{Key: "leaf", Emoji: "🌿"},
	}
}

const DefaultMetricIcon = "spark"

func IsValidMetricIcon(key string) bool {
	for _, icon := range MetricIconCatalog() {
		if icon.Key == key {
			return true
		}
	}
	return false
}

func MetricIconEmoji(key string) string {
	for _, icon := range MetricIconCatalog() {
		if icon.Key == key {
			return icon.Emoji
		}
	}
	return MetricIconEmoji(DefaultMetricIcon)
}
