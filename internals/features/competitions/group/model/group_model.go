// file: internals/features/competitions/group/model/group_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GroupGenderEnum string

const (
	GroupGenderMale   GroupGenderEnum = "male"
	GroupGenderFemale GroupGenderEnum = "female"
	GroupGenderMixed  GroupGenderEnum = "mixed"
)

// GroupModel merepresentasikan tabel competition_groups.
type GroupModel struct {
	GroupID uuid.UUID `json:"group_id" gorm:"type:uuid;primaryKey;column:group_id"`

	GroupCompetitionID uuid.UUID `json:"group_competition_id" gorm:"type:uuid;not null;column:group_competition_id;index"`

	GroupName   string          `json:"group_name" gorm:"type:text;not null;column:group_name"`
	GroupGender GroupGenderEnum `json:"group_gender" gorm:"type:text;not null;default:'mixed';column:group_gender"`

	// Identity types yang boleh masuk grup ini (kosong = semua boleh)
	GroupAllowedIdentities pq.StringArray `json:"group_allowed_identities,omitempty" gorm:"type:text[];column:group_allowed_identities"`

	GroupMaxParticipants *int `json:"group_max_participants,omitempty" gorm:"column:group_max_participants"`
	GroupTeamSize        *int `json:"group_team_size,omitempty" gorm:"column:group_team_size"`

	GroupCreatedAt time.Time      `json:"group_created_at" gorm:"column:group_created_at;autoCreateTime"`
	GroupUpdatedAt time.Time      `json:"group_updated_at" gorm:"column:group_updated_at;autoUpdateTime"`
	GroupDeletedAt gorm.DeletedAt `json:"group_deleted_at,omitempty" gorm:"column:group_deleted_at;index"`
}

func (GroupModel) TableName() string { return "competition_groups" }

func (m *GroupModel) BeforeCreate(tx *gorm.DB) error {
	if m.GroupID == uuid.Nil {
		m.GroupID = uuid.New()
	}
	return nil
}
