// file: internals/features/competitions/event/controller/event_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	compModel "lombaku_backend/internals/features/competitions/competition/model"
	eventDTO "lombaku_backend/internals/features/competitions/event/dto"
	eventModel "lombaku_backend/internals/features/competitions/event/model"
	helper "lombaku_backend/internals/helpers"

	"lombaku_backend/internals/constants"
)

type EventController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{
		DB:        db,
		Validator: validator.New(),
	}
}

// ensureCanManageCompetition: admin bebas; organizer harus pemilik kompetisi.
func (ctl *EventController) ensureCanManageCompetition(c *fiber.Ctx, competitionID uuid.UUID) error {
	var comp compModel.CompetitionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("competition_id = ?", competitionID).
		First(&comp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Kompetisi tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if helper.GetRoleFromToken(c) == constants.RoleAdmin {
		return nil
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if comp.CompetitionCreatedByUserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Organizer hanya boleh mengelola kompetisi buatannya sendiri")
	}
	return nil
}

// POST /a/events
func (ctl *EventController) Create(c *fiber.Ctx) error {
	var req eventDTO.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := ctl.ensureCanManageCompetition(c, req.EventCompetitionID); err != nil {
		return err
	}

	name := strings.TrimSpace(req.EventName)

	// Nama event unik per kompetisi (perbandingan pada bentuk trimmed)
	var count int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&eventModel.EventModel{}).
		Where("event_competition_id = ? AND event_name = ?", req.EventCompetitionID, name).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Event dengan nama ini sudah ada di kompetisi")
	}

	ev := eventModel.EventModel{
		EventCompetitionID: req.EventCompetitionID,
		EventName:          name,
		EventCategory:      helper.TrimPtr(req.EventCategory),
		EventUnit:          eventModel.EventUnitIndividual,
	}
	if req.EventUnit != nil {
		ev.EventUnit = eventModel.EventUnitEnum(*req.EventUnit)
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&ev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Event dibuat", ev)
}

// PUT /a/events/:id
func (ctl *EventController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id event tidak valid")
	}

	var req eventDTO.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var ev eventModel.EventModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("event_id = ?", id).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctl.ensureCanManageCompetition(c, ev.EventCompetitionID); err != nil {
		return err
	}

	fields := map[string]any{}
	if req.EventName != nil {
		name := strings.TrimSpace(*req.EventName)
		var count int64
		if err := ctl.DB.WithContext(c.Context()).
			Model(&eventModel.EventModel{}).
			Where("event_competition_id = ? AND event_name = ? AND event_id <> ?",
				ev.EventCompetitionID, name, ev.EventID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if count > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "Event dengan nama ini sudah ada di kompetisi")
		}
		fields["event_name"] = name
		ev.EventName = name
	}
	if req.EventCategory != nil {
		fields["event_category"] = helper.TrimPtr(req.EventCategory)
		ev.EventCategory = helper.TrimPtr(req.EventCategory)
	}
	if req.EventUnit != nil {
		fields["event_unit"] = *req.EventUnit
		ev.EventUnit = eventModel.EventUnitEnum(*req.EventUnit)
	}
	if len(fields) == 0 {
		return helper.JsonUpdated(c, "Tidak ada perubahan", ev)
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&eventModel.EventModel{}).
		Where("event_id = ?", id).
		Updates(fields).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Event diperbarui", ev)
}

// DELETE /a/events/:id — soft delete.
func (ctl *EventController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id event tidak valid")
	}

	var ev eventModel.EventModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("event_id = ?", id).
		First(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctl.ensureCanManageCompetition(c, ev.EventCompetitionID); err != nil {
		return err
	}

	if err := ctl.DB.WithContext(c.Context()).
		Delete(&eventModel.EventModel{}, "event_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Event dihapus", fiber.Map{"event_id": id})
}

// GET /competitions/:id/events (public)
func (ctl *EventController) ListByCompetition(c *fiber.Ctx) error {
	competitionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id kompetisi tidak valid")
	}

	var rows []eventModel.EventModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("event_competition_id = ?", competitionID).
		Order("event_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}
