package models

import "time"

// PartnerCode is the live pairing code for one account. At most one row per
// user; issuing a new code replaces the old one.
type PartnerCode struct {
	ID       uint      `gorm:"primaryKey"`
	UserID   uint      `gorm:"not null;uniqueIndex"`
	Code     string    `gorm:"not null;uniqueIndex"`
	IssuedAt time.Time `gorm:"not null"`
}

// Relationship is the persisted fact that two accounts are linked. The pair
// is unordered; each side is a RelationshipMember row.
type Relationship struct {
	ID            uint      `gorm:"primaryKey"`
	EstablishedAt time.Time `gorm:"not null"`
}

// RelationshipMember keys on user_id, so the schema itself guarantees a user
// belongs to at most one relationship.
type RelationshipMember struct {
	UserID         uint `gorm:"primaryKey;autoIncrement:false"`
	RelationshipID uint `gorm:"not null;index"`
}
