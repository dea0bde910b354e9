// file: internals/features/competitions/group/dto/group_dto.go
package dto

import (
	"github.com/google/uuid"
)

type CreateGroupRequest struct {
	GroupCompetitionID uuid.UUID `json:"group_competition_id" validate:"required"`
	GroupName          string    `json:"group_name"           validate:"required,max=120"`
	GroupGender        *string   `json:"group_gender"         validate:"omitempty,oneof=male female mixed"`

	GroupAllowedIdentities []string `json:"group_allowed_identities" validate:"omitempty,dive,max=40"`

	GroupMaxParticipants *int `json:"group_max_participants" validate:"omitempty,min=1"`
	GroupTeamSize        *int `json:"group_team_size"        validate:"omitempty,min=1"`
}

type UpdateGroupRequest struct {
	GroupName   *string `json:"group_name"   validate:"omitempty,max=120"`
	GroupGender *string `json:"group_gender" validate:"omitempty,oneof=male female mixed"`

	GroupAllowedIdentities *[]string `json:"group_allowed_identities" validate:"omitempty,dive,max=40"`

	GroupMaxParticipants *int `json:"group_max_participants" validate:"omitempty,min=1"`
	GroupTeamSize        *int `json:"group_team_size"        validate:"omitempty,min=1"`
}
