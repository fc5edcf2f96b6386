package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Couple represents a couple planning their wedding.
//
// A couple is the tenant of WedSync: all other resources reference it
// directly or transitively, and no query ever crosses couples.
type Couple struct {
	DefaultModel
	Name        string
	Note        string
	Currency    string
	WeddingDate *time.Time
}

func (c *Couple) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)
	c.Currency = strings.TrimSpace(c.Currency)

	return nil
}
