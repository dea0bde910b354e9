// file: internals/features/teams/model/team_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Maksimal event yang bisa ditulis anggota di roster.
const MaxRosterMemberEvents = 5

// RosterMemberEvent adalah satu slot event yang ditulis anggota di roster
// (free text; dicocokkan ke katalog event saat sinkronisasi).
type RosterMemberEvent struct {
	Name   *string `json:"name,omitempty"`
	Result *string `json:"result,omitempty"`
}

// RosterMember adalah satu baris roster tim. Ini deklarasi mandiri tim,
// bukan registrasi; baru jadi registrasi lewat sinkronisasi.
type RosterMember struct {
	Name       string              `json:"name"`
	Gender     *string             `json:"gender,omitempty"`
	GroupLabel *string             `json:"group_label,omitempty"`
	Events     []RosterMemberEvent `json:"events,omitempty"`
	Registered bool                `json:"registered"`
}

// TeamModel merepresentasikan tabel teams.
// Satu user hanya boleh punya satu tim (unique owner_user_id).
type TeamModel struct {
	TeamID uuid.UUID `json:"team_id" gorm:"type:uuid;primaryKey;column:team_id"`

	TeamName        string    `json:"team_name" gorm:"type:text;not null;column:team_name"`
	TeamOwnerUserID uuid.UUID `json:"team_owner_user_id" gorm:"type:uuid;not null;column:team_owner_user_id;uniqueIndex:uq_teams_owner_user_id"`

	TeamContactPhone *string `json:"team_contact_phone,omitempty" gorm:"type:text;column:team_contact_phone"`

	// Roster disimpan sebagai dokumen JSONB, bukan tabel anggota.
	TeamRoster datatypes.JSONSlice[RosterMember] `json:"team_roster" gorm:"type:jsonb;column:team_roster"`

	TeamCreatedAt time.Time      `json:"team_created_at" gorm:"column:team_created_at;autoCreateTime"`
	TeamUpdatedAt time.Time      `json:"team_updated_at" gorm:"column:team_updated_at;autoUpdateTime"`
	TeamDeletedAt gorm.DeletedAt `json:"team_deleted_at,omitempty" gorm:"column:team_deleted_at;index"`
}

func (TeamModel) TableName() string { return "teams" }

func (m *TeamModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeamID == uuid.Nil {
		m.TeamID = uuid.New()
	}
	return nil
}
