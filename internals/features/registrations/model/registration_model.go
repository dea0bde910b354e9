// file: internals/features/registrations/model/registration_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RegistrationStatusEnum string

const (
	RegistrationStatusPending   RegistrationStatusEnum = "pending"
	RegistrationStatusApproved  RegistrationStatusEnum = "approved"
	RegistrationStatusRejected  RegistrationStatusEnum = "rejected"
	RegistrationStatusCancelled RegistrationStatusEnum = "cancelled"
)

// RegistrationAttachment adalah satu lampiran registrasi (disimpan JSONB).
type RegistrationAttachment struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	Size     *int64 `json:"size,omitempty"`
}

// RegistrationExtra adalah blob `extra` registrasi: key yang dikenal
// (organization, remark) plus passthrough untuk key lain agar tetap
// kompatibel dengan payload lama.
type RegistrationExtra struct {
	Organization *string
	Remark       *string
	Passthrough  map[string]any
}

func (e RegistrationExtra) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Passthrough)+2)
	for k, v := range e.Passthrough {
		m[k] = v
	}
	if e.Organization != nil {
		m["organization"] = *e.Organization
	}
	if e.Remark != nil {
		m["remark"] = *e.Remark
	}
	return json.Marshal(m)
}

func (e *RegistrationExtra) UnmarshalJSON(data []byte) error {
	m := map[string]any{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if v, ok := m["organization"].(string); ok {
		e.Organization = &v
	}
	delete(m, "organization")
	if v, ok := m["remark"].(string); ok {
		e.Remark = &v
	}
	delete(m, "remark")
	if len(m) > 0 {
		e.Passthrough = m
	} else {
		e.Passthrough = nil
	}
	return nil
}

// RegistrationModel merepresentasikan tabel registrations.
// Satu baris = satu peserta masuk satu kompetisi. Tidak pernah di-hard-delete:
// pensiun dimodelkan sebagai status cancelled.
type RegistrationModel struct {
	RegistrationID uuid.UUID `json:"registration_id" gorm:"type:uuid;primaryKey;column:registration_id"`

	RegistrationCompetitionID     uuid.UUID  `json:"registration_competition_id" gorm:"type:uuid;not null;column:registration_competition_id;index"`
	RegistrationParticipantUserID uuid.UUID  `json:"registration_participant_user_id" gorm:"type:uuid;not null;column:registration_participant_user_id;index"`
	RegistrationTeamID            *uuid.UUID `json:"registration_team_id,omitempty" gorm:"type:uuid;column:registration_team_id;index"`

	RegistrationParticipantName string  `json:"registration_participant_name" gorm:"type:text;not null;column:registration_participant_name"`
	RegistrationGender          *string `json:"registration_gender,omitempty" gorm:"type:text;column:registration_gender"`
	RegistrationIdentityType    *string `json:"registration_identity_type,omitempty" gorm:"type:text;column:registration_identity_type"`
	RegistrationContact         *string `json:"registration_contact,omitempty" gorm:"type:text;column:registration_contact"`

	RegistrationStatus RegistrationStatusEnum `json:"registration_status" gorm:"type:text;not null;default:'pending';column:registration_status;index"`

	RegistrationExtra       datatypes.JSONType[RegistrationExtra]        `json:"registration_extra" gorm:"type:jsonb;column:registration_extra"`
	RegistrationAttachments datatypes.JSONSlice[RegistrationAttachment] `json:"registration_attachments" gorm:"type:jsonb;column:registration_attachments"`

	RegistrationCreatedAt time.Time `json:"registration_created_at" gorm:"column:registration_created_at;autoCreateTime"`
	RegistrationUpdatedAt time.Time `json:"registration_updated_at" gorm:"column:registration_updated_at;autoUpdateTime"`
}

func (RegistrationModel) TableName() string { return "registrations" }

func (m *RegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if m.RegistrationID == uuid.Nil {
		m.RegistrationID = uuid.New()
	}
	return nil
}
