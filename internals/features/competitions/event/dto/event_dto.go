// file: internals/features/competitions/event/dto/event_dto.go
package dto

import (
	"github.com/google/uuid"
)

type CreateEventRequest struct {
	EventCompetitionID uuid.UUID `json:"event_competition_id" validate:"required"`
	EventName          string    `json:"event_name"           validate:"required,max=120"`
	EventCategory      *string   `json:"event_category"       validate:"omitempty,max=80"`
	EventUnit          *string   `json:"event_unit"           validate:"omitempty,oneof=individual team"`
}

type UpdateEventRequest struct {
	EventName     *string `json:"event_name"     validate:"omitempty,max=120"`
	EventCategory *string `json:"event_category" validate:"omitempty,max=80"`
	EventUnit     *string `json:"event_unit"     validate:"omitempty,oneof=individual team"`
}
