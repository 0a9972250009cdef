// Package history persists disruption reports to a local database so an
// operator can review what hit the schedule after the fact, including
// across tower sessions.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/konczyk/irrops/internal/schedule"
)

const queryTimeout = 5 * time.Second

// Entry is one recorded disruption. The summary columns answer the common
// "what happened" queries; Raw keeps the full report for anything else.
type Entry struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Kind        string    `gorm:"size:16;not null;index" json:"kind"`
	Target      string    `gorm:"size:64;not null" json:"target"`
	Delayed     int       `gorm:"not null" json:"delayed"`
	Unscheduled int       `gorm:"not null" json:"unscheduled"`
	FirstBreak  string    `gorm:"size:80" json:"first_break,omitempty"`
	Raw         string    `gorm:"type:text;not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

type Store struct {
	db *gorm.DB
}

// Open opens or creates the history database at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Migrator().AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Record stores one disruption report.
func (s *Store) Record(r *schedule.DisruptionReport) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	e := &Entry{
		Kind:        string(r.Kind),
		Target:      target(r),
		Delayed:     len(r.Affected),
		Unscheduled: len(r.Unscheduled),
		Raw:         string(raw),
	}
	if r.FirstBreak != nil {
		e.FirstBreak = fmt.Sprintf("%s (%s)", r.FirstBreak.FlightID, r.FirstBreak.Reason)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	return s.db.WithContext(ctx).Save(e).Error
}

func target(r *schedule.DisruptionReport) string {
	if r.Kind == schedule.DisruptionCurfew {
		return r.AirportID
	}
	return r.FlightID
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var out []Entry
	if err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return out, nil
}

func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
