// file: internals/features/teams/dto/team_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	teamModel "lombaku_backend/internals/features/teams/model"
)

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type UpsertTeamRequest struct {
	TeamName         string  `json:"team_name"          validate:"required,max=120"`
	TeamContactPhone *string `json:"team_contact_phone" validate:"omitempty,max=30"`
}

type RosterMemberEventRequest struct {
	Name   *string `json:"name"   validate:"omitempty,max=120"`
	Result *string `json:"result" validate:"omitempty,max=120"`
}

type RosterMemberRequest struct {
	Name       string                     `json:"name"        validate:"required,max=120"`
	Gender     *string                    `json:"gender"      validate:"omitempty,oneof=male female"`
	GroupLabel *string                    `json:"group_label" validate:"omitempty,max=120"`
	Events     []RosterMemberEventRequest `json:"events"      validate:"omitempty,max=5,dive"`
	Registered bool                       `json:"registered"`
}

// PutRosterRequest: roster selalu disimpan verbatim; kalau competition_id
// diisi, anggota registered=true disinkronkan ke registrasi kompetisi itu.
type PutRosterRequest struct {
	Members       []RosterMemberRequest `json:"members"        validate:"dive"`
	CompetitionID *uuid.UUID            `json:"competition_id" validate:"omitempty"`
}

func (r *PutRosterRequest) ToRoster() []teamModel.RosterMember {
	out := make([]teamModel.RosterMember, 0, len(r.Members))
	for _, m := range r.Members {
		member := teamModel.RosterMember{
			Name:       strings.TrimSpace(m.Name),
			Gender:     m.Gender,
			GroupLabel: m.GroupLabel,
			Registered: m.Registered,
		}
		for _, ev := range m.Events {
			member.Events = append(member.Events, teamModel.RosterMemberEvent{
				Name:   ev.Name,
				Result: ev.Result,
			})
		}
		out = append(out, member)
	}
	return out
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type TeamResponse struct {
	TeamID           uuid.UUID                `json:"team_id"`
	TeamName         string                   `json:"team_name"`
	TeamOwnerUserID  uuid.UUID                `json:"team_owner_user_id"`
	TeamContactPhone *string                  `json:"team_contact_phone,omitempty"`
	TeamRoster       []teamModel.RosterMember `json:"team_roster"`
	TeamCreatedAt    time.Time                `json:"team_created_at"`
	TeamUpdatedAt    time.Time                `json:"team_updated_at"`
}

func FromModel(m *teamModel.TeamModel) TeamResponse {
	return TeamResponse{
		TeamID:           m.TeamID,
		TeamName:         m.TeamName,
		TeamOwnerUserID:  m.TeamOwnerUserID,
		TeamContactPhone: m.TeamContactPhone,
		TeamRoster:       m.TeamRoster,
		TeamCreatedAt:    m.TeamCreatedAt,
		TeamUpdatedAt:    m.TeamUpdatedAt,
	}
}
