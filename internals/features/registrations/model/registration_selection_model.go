// file: internals/features/registrations/model/registration_selection_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistrationSelectionModel merepresentasikan tabel registration_event_selections:
// event (dan opsional grup) yang diikuti satu registrasi. Unik per
// (registration_id, event_id); selalu diganti utuh saat update, tidak di-patch.
type RegistrationSelectionModel struct {
	RegistrationSelectionID uuid.UUID `json:"registration_selection_id" gorm:"type:uuid;primaryKey;column:registration_selection_id"`

	RegistrationSelectionRegistrationID uuid.UUID  `json:"registration_selection_registration_id" gorm:"type:uuid;not null;column:registration_selection_registration_id;uniqueIndex:uq_registration_selections_event;index"`
	RegistrationSelectionEventID        uuid.UUID  `json:"registration_selection_event_id" gorm:"type:uuid;not null;column:registration_selection_event_id;uniqueIndex:uq_registration_selections_event"`
	RegistrationSelectionGroupID        *uuid.UUID `json:"registration_selection_group_id,omitempty" gorm:"type:uuid;column:registration_selection_group_id"`

	RegistrationSelectionCreatedAt time.Time `json:"registration_selection_created_at" gorm:"column:registration_selection_created_at;autoCreateTime"`
}

func (RegistrationSelectionModel) TableName() string { return "registration_event_selections" }

func (m *RegistrationSelectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.RegistrationSelectionID == uuid.Nil {
		m.RegistrationSelectionID = uuid.New()
	}
	return nil
}
