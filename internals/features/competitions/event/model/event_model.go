// file: internals/features/competitions/event/model/event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventUnitEnum string

const (
	EventUnitIndividual EventUnitEnum = "individual"
	EventUnitTeam       EventUnitEnum = "team"
)

// EventModel merepresentasikan tabel competition_events.
// Nama event unik per kompetisi (sudah dalam bentuk trimmed).
type EventModel struct {
	EventID uuid.UUID `json:"event_id" gorm:"type:uuid;primaryKey;column:event_id"`

	EventCompetitionID uuid.UUID `json:"event_competition_id" gorm:"type:uuid;not null;column:event_competition_id;uniqueIndex:uq_competition_events_name;index"`

	EventName     string        `json:"event_name" gorm:"type:text;not null;column:event_name;uniqueIndex:uq_competition_events_name"`
	EventCategory *string       `json:"event_category,omitempty" gorm:"type:text;column:event_category"`
	EventUnit     EventUnitEnum `json:"event_unit" gorm:"type:text;not null;default:'individual';column:event_unit"`

	EventCreatedAt time.Time      `json:"event_created_at" gorm:"column:event_created_at;autoCreateTime"`
	EventUpdatedAt time.Time      `json:"event_updated_at" gorm:"column:event_updated_at;autoUpdateTime"`
	EventDeletedAt gorm.DeletedAt `json:"event_deleted_at,omitempty" gorm:"column:event_deleted_at;index"`
}

func (EventModel) TableName() string { return "competition_events" }

func (m *EventModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventID == uuid.Nil {
		m.EventID = uuid.New()
	}
	return nil
}
