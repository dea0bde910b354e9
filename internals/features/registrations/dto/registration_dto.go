// file: internals/features/registrations/dto/registration_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	regModel "lombaku_backend/internals/features/registrations/model"
	"lombaku_backend/internals/features/registrations/service"
)

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type SelectionRequest struct {
	EventID uuid.UUID  `json:"event_id" validate:"required"`
	GroupID *uuid.UUID `json:"group_id" validate:"omitempty"`
}

type AttachmentRequest struct {
	FileName string `json:"file_name" validate:"required,max=200"`
	FileURL  string `json:"file_url"  validate:"required,url"`
	Size     *int64 `json:"size"      validate:"omitempty,min=0"`
}

// CreateRegistrationRequest: jalur registrasi langsung (non-roster).
type CreateRegistrationRequest struct {
	CompetitionID   uuid.UUID `json:"registration_competition_id" validate:"required"`
	ParticipantName string    `json:"registration_participant_name" validate:"required,max=120"`

	Gender       *string `json:"registration_gender"        validate:"omitempty,oneof=male female"`
	IdentityType *string `json:"registration_identity_type" validate:"omitempty,max=40"`
	Contact      *string `json:"registration_contact"       validate:"omitempty,max=60"`

	// TeamID (harus milik user) ATAU TeamName (upsert tim milik user)
	TeamID   *uuid.UUID `json:"registration_team_id"   validate:"omitempty"`
	TeamName *string    `json:"registration_team_name" validate:"omitempty,max=120"`

	Selections []SelectionRequest `json:"registration_selections" validate:"required,min=1,dive"`

	Organization *string             `json:"registration_organization" validate:"omitempty,max=120"`
	Remark       *string             `json:"registration_remark"       validate:"omitempty,max=500"`
	Extra        map[string]any      `json:"registration_extra"        validate:"omitempty"`
	Attachments  []AttachmentRequest `json:"registration_attachments"  validate:"omitempty,dive"`
}

func (r *CreateRegistrationRequest) ToInput(userID uuid.UUID) service.DirectRegistrationInput {
	selections := make([]service.SelectionInput, 0, len(r.Selections))
	for _, s := range r.Selections {
		selections = append(selections, service.SelectionInput{
			EventID: s.EventID,
			GroupID: s.GroupID,
		})
	}

	attachments := make([]regModel.RegistrationAttachment, 0, len(r.Attachments))
	for _, a := range r.Attachments {
		attachments = append(attachments, regModel.RegistrationAttachment{
			FileName: a.FileName,
			FileURL:  a.FileURL,
			Size:     a.Size,
		})
	}

	return service.DirectRegistrationInput{
		CompetitionID:   r.CompetitionID,
		UserID:          userID,
		ParticipantName: r.ParticipantName,
		Gender:          r.Gender,
		IdentityType:    r.IdentityType,
		Contact:         r.Contact,
		TeamID:          r.TeamID,
		TeamName:        r.TeamName,
		Selections:      selections,
		Organization:    r.Organization,
		Remark:          r.Remark,
		Passthrough:     r.Extra,
		Attachments:     attachments,
	}
}

// UpdateRegistrationRequest: patch parsial (PATCH /registrations/:id).
type UpdateRegistrationRequest struct {
	Status *string `json:"registration_status" validate:"omitempty,oneof=pending approved rejected cancelled"`

	Remark       *string              `json:"registration_remark"       validate:"omitempty,max=500"`
	Organization *string              `json:"registration_organization" validate:"omitempty,max=120"`
	Attachments  *[]AttachmentRequest `json:"registration_attachments"  validate:"omitempty,dive"`

	Contact      *string `json:"registration_contact"       validate:"omitempty,max=60"`
	Gender       *string `json:"registration_gender"        validate:"omitempty,oneof=male female"`
	IdentityType *string `json:"registration_identity_type" validate:"omitempty,max=40"`
}

func (r *UpdateRegistrationRequest) ToInput(actorUserID uuid.UUID, actorRole string) service.UpdateRegistrationInput {
	in := service.UpdateRegistrationInput{
		ActorUserID:  actorUserID,
		ActorRole:    actorRole,
		Remark:       r.Remark,
		Organization: r.Organization,
		Contact:      r.Contact,
		Gender:       r.Gender,
		IdentityType: r.IdentityType,
	}
	if r.Status != nil {
		status := regModel.RegistrationStatusEnum(*r.Status)
		in.Status = &status
	}
	if r.Attachments != nil {
		attachments := make([]regModel.RegistrationAttachment, 0, len(*r.Attachments))
		for _, a := range *r.Attachments {
			attachments = append(attachments, regModel.RegistrationAttachment{
				FileName: a.FileName,
				FileURL:  a.FileURL,
				Size:     a.Size,
			})
		}
		in.Attachments = &attachments
	}
	return in
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type SelectionResponse struct {
	EventID uuid.UUID  `json:"event_id"`
	GroupID *uuid.UUID `json:"group_id,omitempty"`
}

type RegistrationResponse struct {
	RegistrationID    uuid.UUID  `json:"registration_id"`
	CompetitionID     uuid.UUID  `json:"registration_competition_id"`
	ParticipantUserID uuid.UUID  `json:"registration_participant_user_id"`
	TeamID            *uuid.UUID `json:"registration_team_id,omitempty"`

	ParticipantName string  `json:"registration_participant_name"`
	Gender          *string `json:"registration_gender,omitempty"`
	IdentityType    *string `json:"registration_identity_type,omitempty"`
	Contact         *string `json:"registration_contact,omitempty"`

	Status string `json:"registration_status"`

	Organization *string                           `json:"registration_organization,omitempty"`
	Remark       *string                           `json:"registration_remark,omitempty"`
	Extra        map[string]any                    `json:"registration_extra,omitempty"`
	Attachments  []regModel.RegistrationAttachment `json:"registration_attachments,omitempty"`

	Selections []SelectionResponse `json:"registration_selections,omitempty"`

	CreatedAt time.Time `json:"registration_created_at"`
	UpdatedAt time.Time `json:"registration_updated_at"`
}

func FromModel(m *regModel.RegistrationModel, selections []regModel.RegistrationSelectionModel) RegistrationResponse {
	extra := m.RegistrationExtra.Data()

	resp := RegistrationResponse{
		RegistrationID:    m.RegistrationID,
		CompetitionID:     m.RegistrationCompetitionID,
		ParticipantUserID: m.RegistrationParticipantUserID,
		TeamID:            m.RegistrationTeamID,
		ParticipantName:   m.RegistrationParticipantName,
		Gender:            m.RegistrationGender,
		IdentityType:      m.RegistrationIdentityType,
		Contact:           m.RegistrationContact,
		Status:            string(m.RegistrationStatus),
		Organization:      extra.Organization,
		Remark:            extra.Remark,
		Extra:             extra.Passthrough,
		Attachments:       m.RegistrationAttachments,
		CreatedAt:         m.RegistrationCreatedAt,
		UpdatedAt:         m.RegistrationUpdatedAt,
	}
	for _, s := range selections {
		resp.Selections = append(resp.Selections, SelectionResponse{
			EventID: s.RegistrationSelectionEventID,
			GroupID: s.RegistrationSelectionGroupID,
		})
	}
	return resp
}
