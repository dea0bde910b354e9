// file: internals/features/competitions/competition/model/competition_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompetitionModel merepresentasikan tabel competitions.
// Signup window dua-duanya opsional: nil berarti tidak dibatasi.
type CompetitionModel struct {
	CompetitionID uuid.UUID `json:"competition_id" gorm:"type:uuid;primaryKey;column:competition_id"`

	CompetitionName        string  `json:"competition_name" gorm:"type:text;not null;column:competition_name"`
	CompetitionDescription *string `json:"competition_description,omitempty" gorm:"type:text;column:competition_description"`

	CompetitionSignupStartAt *time.Time `json:"competition_signup_start_at,omitempty" gorm:"column:competition_signup_start_at"`
	CompetitionSignupEndAt   *time.Time `json:"competition_signup_end_at,omitempty" gorm:"column:competition_signup_end_at"`
	CompetitionEventStartAt  *time.Time `json:"competition_event_start_at,omitempty" gorm:"column:competition_event_start_at"`
	CompetitionEventEndAt    *time.Time `json:"competition_event_end_at,omitempty" gorm:"column:competition_event_end_at"`

	CompetitionCreatedByUserID uuid.UUID `json:"competition_created_by_user_id" gorm:"type:uuid;not null;column:competition_created_by_user_id"`

	CompetitionCreatedAt time.Time      `json:"competition_created_at" gorm:"column:competition_created_at;autoCreateTime"`
	CompetitionUpdatedAt time.Time      `json:"competition_updated_at" gorm:"column:competition_updated_at;autoUpdateTime"`
	CompetitionDeletedAt gorm.DeletedAt `json:"competition_deleted_at,omitempty" gorm:"column:competition_deleted_at;index"`
}

func (CompetitionModel) TableName() string { return "competitions" }

func (m *CompetitionModel) BeforeCreate(tx *gorm.DB) error {
	if m.CompetitionID == uuid.Nil {
		m.CompetitionID = uuid.New()
	}
	return nil
}
