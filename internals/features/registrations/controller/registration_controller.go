// file: internals/features/registrations/controller/registration_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	regDTO "lombaku_backend/internals/features/registrations/dto"
	regModel "lombaku_backend/internals/features/registrations/model"
	"lombaku_backend/internals/features/registrations/service"
	helper "lombaku_backend/internals/helpers"
	"lombaku_backend/internals/helpers/storage"

	"lombaku_backend/internals/constants"
)

type RegistrationController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return &RegistrationController{
		DB:        db,
		Validator: validator.New(),
	}
}

// jsonServiceError memetakan error service → envelope error standar.
func jsonServiceError(c *fiber.Ctx, err error) error {
	if se, ok := service.AsError(err); ok {
		return helper.JsonError(c, se.HTTPStatus(), se.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

// ===============================
// Handlers
// ===============================

// POST /u/registrations — jalur registrasi langsung (non-roster).
func (ctl *RegistrationController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req regDTO.CreateRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	reg, err := service.SubmitDirectRegistration(ctl.DB.WithContext(c.Context()), req.ToInput(userID))
	if err != nil {
		return jsonServiceError(c, err)
	}

	selections, err := ctl.loadSelections(c, reg.RegistrationID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Registrasi dibuat", regDTO.FromModel(reg, selections))
}

// GET /u/registrations — registrasi milik user login.
func (ctl *RegistrationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := ctl.DB.WithContext(c.Context()).
		Model(&regModel.RegistrationModel{}).
		Where("registration_participant_user_id = ?", userID)

	if compID := c.Query("competition_id"); compID != "" {
		id, err := uuid.Parse(compID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "competition_id tidak valid")
		}
		base = base.Where("registration_competition_id = ?", id)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []regModel.RegistrationModel
	if err := base.
		Order("registration_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	data := make([]regDTO.RegistrationResponse, 0, len(rows))
	for i := range rows {
		data = append(data, regDTO.FromModel(&rows[i], nil))
	}
	return helper.JsonList(c, "", data, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// GET /a/competitions/:id/registrations — daftar registrasi per kompetisi
// (organizer harus pemilik kompetisi; admin bebas).
func (ctl *RegistrationController) ListByCompetition(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromToken(c)

	competitionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id kompetisi tidak valid")
	}

	comp, err := service.LoadCompetition(ctl.DB.WithContext(c.Context()), competitionID)
	if err != nil {
		return jsonServiceError(c, err)
	}
	if role != constants.RoleAdmin && comp.CompetitionCreatedByUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Organizer hanya boleh melihat kompetisi buatannya sendiri")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := ctl.DB.WithContext(c.Context()).
		Model(&regModel.RegistrationModel{}).
		Where("registration_competition_id = ?", competitionID)

	if status := c.Query("status"); status != "" {
		switch regModel.RegistrationStatusEnum(status) {
		case regModel.RegistrationStatusPending, regModel.RegistrationStatusApproved,
			regModel.RegistrationStatusRejected, regModel.RegistrationStatusCancelled:
			base = base.Where("registration_status = ?", status)
		default:
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak valid (pending/approved/rejected/cancelled)")
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []regModel.RegistrationModel
	if err := base.
		Order("registration_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	data := make([]regDTO.RegistrationResponse, 0, len(rows))
	for i := range rows {
		data = append(data, regDTO.FromModel(&rows[i], nil))
	}
	return helper.JsonList(c, "", data, helper.BuildPagination(paging.Page, paging.PerPage, total))
}

// GET /u/registrations/:id
func (ctl *RegistrationController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromToken(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id registrasi tidak valid")
	}

	var reg regModel.RegistrationModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("registration_id = ?", id).
		First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	switch role {
	case constants.RoleAdmin:
	case constants.RoleOrganizer:
		comp, err := service.LoadCompetition(ctl.DB.WithContext(c.Context()), reg.RegistrationCompetitionID)
		if err != nil {
			return jsonServiceError(c, err)
		}
		if comp.CompetitionCreatedByUserID != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "Organizer hanya boleh melihat kompetisi buatannya sendiri")
		}
	default:
		if reg.RegistrationParticipantUserID != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "Registrasi ini bukan milik Anda")
		}
	}

	selections, err := ctl.loadSelections(c, reg.RegistrationID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", regDTO.FromModel(&reg, selections))
}

// PATCH /u/registrations/:id dan /a/registrations/:id
func (ctl *RegistrationController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromToken(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id registrasi tidak valid")
	}

	var req regDTO.UpdateRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	reg, err := service.UpdateRegistration(ctl.DB.WithContext(c.Context()), id, req.ToInput(userID, role))
	if err != nil {
		return jsonServiceError(c, err)
	}

	selections, err := ctl.loadSelections(c, reg.RegistrationID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Registrasi diperbarui", regDTO.FromModel(reg, selections))
}

// DELETE /u/registrations/:id — soft-cancel, idempoten. Baris tidak dihapus.
func (ctl *RegistrationController) Cancel(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromToken(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id registrasi tidak valid")
	}

	reg, err := service.CancelRegistration(ctl.DB.WithContext(c.Context()), id, userID, role)
	if err != nil {
		return jsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Registrasi dibatalkan", regDTO.FromModel(reg, nil))
}

// POST /u/registrations/attachments — upload lampiran (multipart),
// hasilnya dipakai client sebagai isi registration_attachments.
func (ctl *RegistrationController) UploadAttachment(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak ditemukan di form field 'file'")
	}

	result, err := storage.UploadAttachment("registrations", fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, err.Error())
	}
	return helper.JsonCreated(c, "Lampiran terunggah", result)
}

func (ctl *RegistrationController) loadSelections(c *fiber.Ctx, registrationID uuid.UUID) ([]regModel.RegistrationSelectionModel, error) {
	var selections []regModel.RegistrationSelectionModel
	err := ctl.DB.WithContext(c.Context()).
		Where("registration_selection_registration_id = ?", registrationID).
		Order("registration_selection_created_at ASC").
		Find(&selections).Error
	return selections, err
}
