// file: internals/features/competitions/competition/controller/competition_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	compDTO "lombaku_backend/internals/features/competitions/competition/dto"
	compModel "lombaku_backend/internals/features/competitions/competition/model"
	helper "lombaku_backend/internals/helpers"

	"lombaku_backend/internals/constants"
)

type CompetitionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCompetitionController(db *gorm.DB) *CompetitionController {
	return &CompetitionController{
		DB:        db,
		Validator: validator.New(),
	}
}

// canManage: admin bebas; organizer hanya kompetisi buatannya sendiri.
func canManage(c *fiber.Ctx, comp *compModel.CompetitionModel) error {
	role := helper.GetRoleFromToken(c)
	if role == constants.RoleAdmin {
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

// ===============================
// Handlers
// ===============================

// POST /a/competitions
func (ctl *CompetitionController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req compDTO.CreateCompetitionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	comp := compModel.CompetitionModel{
		CompetitionName:            strings.TrimSpace(req.CompetitionName),
		CompetitionDescription:     helper.TrimPtr(req.CompetitionDescription),
		CompetitionSignupStartAt:   req.CompetitionSignupStartAt,
		CompetitionSignupEndAt:     req.CompetitionSignupEndAt,
		CompetitionEventStartAt:    req.CompetitionEventStartAt,
		CompetitionEventEndAt:      req.CompetitionEventEndAt,
		CompetitionCreatedByUserID: userID,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&comp).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Kompetisi dibuat", comp)
}

// PUT /a/competitions/:id
func (ctl *CompetitionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id kompetisi tidak valid")
	}

	var req compDTO.UpdateCompetitionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var comp compModel.CompetitionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("competition_id = ?", id).
		First(&comp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kompetisi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := canManage(c, &comp); err != nil {
		return err
	}

	fields := req.Apply(&comp)
	if len(fields) == 0 {
		return helper.JsonUpdated(c, "Tidak ada perubahan", comp)
	}
	if err := ctl.DB.WithContext(c.Context()).
		Model(&compModel.CompetitionModel{}).
		Where("competition_id = ?", id).
		Updates(fields).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Kompetisi diperbarui", comp)
}

// DELETE /a/competitions/:id — soft delete; event & grup ikut terhapus (cascade).
func (ctl *CompetitionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id kompetisi tidak valid")
	}

	var comp compModel.CompetitionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("competition_id = ?", id).
		First(&comp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kompetisi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := canManage(c, &comp); err != nil {
		return err
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"UPDATE competition_events SET event_deleted_at = NOW() WHERE event_competition_id = ? AND event_deleted_at IS NULL", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"UPDATE competition_groups SET group_deleted_at = NOW() WHERE group_competition_id = ? AND group_deleted_at IS NULL", id,
		).Error; err != nil {
			return err
		}
		return tx.Delete(&compModel.CompetitionModel{}, "competition_id = ?", id).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Kompetisi dihapus", fiber.Map{"competition_id": id})
}

// GET /competitions/:id (public)
func (ctl *CompetitionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id kompetisi tidak valid")
	}

	var comp compModel.CompetitionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("competition_id = ?", id).
		First(&comp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kompetisi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", comp)
}

// GET /competitions (public, paginated)
func (ctl *CompetitionController) List(c *fiber.Ctx) error {
	var q compDTO.ListCompetitionQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.JsonValidationError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := ctl.DB.WithContext(c.Context()).Model(&compModel.CompetitionModel{})
	if q.Q != nil && strings.TrimSpace(*q.Q) != "" {
		base = base.Where("competition_name ILIKE ?", "%"+strings.TrimSpace(*q.Q)+"%")
	}
	if q.Open != nil && *q.Open {
		now := time.Now()
		base = base.
			Where("competition_signup_start_at IS NULL OR competition_signup_start_at <= ?", now).
			Where("competition_signup_end_at IS NULL OR competition_signup_end_at >= ?", now)
	}

	order := "competition_created_at DESC"
	if q.Sort != nil && *q.Sort == "created_at_asc" {
		order = "competition_created_at ASC"
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []compModel.CompetitionModel
	if err := base.
		Order(order).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", rows, helper.BuildPagination(paging.Page, paging.PerPage, total))
}
