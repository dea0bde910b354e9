// file: internals/features/competitions/competition/dto/competition_dto.go
package dto

import (
	"time"

	compModel "lombaku_backend/internals/features/competitions/competition/model"
)

type CreateCompetitionRequest struct {
	CompetitionName        string  `json:"competition_name"        validate:"required,max=160"`
	CompetitionDescription *string `json:"competition_description" validate:"omitempty,max=2000"`

	CompetitionSignupStartAt *time.Time `json:"competition_signup_start_at" validate:"omitempty"`
	CompetitionSignupEndAt   *time.Time `json:"competition_signup_end_at"   validate:"omitempty,gtfield=CompetitionSignupStartAt"`
	CompetitionEventStartAt  *time.Time `json:"competition_event_start_at"  validate:"omitempty"`
	CompetitionEventEndAt    *time.Time `json:"competition_event_end_at"    validate:"omitempty"`
}

type UpdateCompetitionRequest struct {
	CompetitionName        *string `json:"competition_name"        validate:"omitempty,max=160"`
	CompetitionDescription *string `json:"competition_description" validate:"omitempty,max=2000"`

	CompetitionSignupStartAt *time.Time `json:"competition_signup_start_at" validate:"omitempty"`
	CompetitionSignupEndAt   *time.Time `json:"competition_signup_end_at"   validate:"omitempty"`
	CompetitionEventStartAt  *time.Time `json:"competition_event_start_at"  validate:"omitempty"`
	CompetitionEventEndAt    *time.Time `json:"competition_event_end_at"    validate:"omitempty"`
}

// Apply menerapkan field non-nil ke model (PATCH semantics).
func (r *UpdateCompetitionRequest) Apply(m *compModel.CompetitionModel) map[string]any {
	fields := map[string]any{}
	if r.CompetitionName != nil {
		m.CompetitionName = *r.CompetitionName
		fields["competition_name"] = *r.CompetitionName
	}
	if r.CompetitionDescription != nil {
		m.CompetitionDescription = r.CompetitionDescription
		fields["competition_description"] = *r.CompetitionDescription
	}
	if r.CompetitionSignupStartAt != nil {
		m.CompetitionSignupStartAt = r.CompetitionSignupStartAt
		fields["competition_signup_start_at"] = *r.CompetitionSignupStartAt
	}
	if r.CompetitionSignupEndAt != nil {
		m.CompetitionSignupEndAt = r.CompetitionSignupEndAt
		fields["competition_signup_end_at"] = *r.CompetitionSignupEndAt
	}
	if r.CompetitionEventStartAt != nil {
		m.CompetitionEventStartAt = r.CompetitionEventStartAt
		fields["competition_event_start_at"] = *r.CompetitionEventStartAt
	}
	if r.CompetitionEventEndAt != nil {
		m.CompetitionEventEndAt = r.CompetitionEventEndAt
		fields["competition_event_end_at"] = *r.CompetitionEventEndAt
	}
	return fields
}

type ListCompetitionQuery struct {
	Q      *string `query:"q"      validate:"omitempty,max=100"`
	Open   *bool   `query:"open"   validate:"omitempty"` // hanya yang jendela signup-nya sedang buka
	Sort   *string `query:"sort"   validate:"omitempty,oneof=created_at_asc created_at_desc"`
}
