// file: internals/features/competitions/group/controller/group_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	compModel "lombaku_backend/internals/features/competitions/competition/model"
	groupDTO "lombaku_backend/internals/features/competitions/group/dto"
	groupModel "lombaku_backend/internals/features/competitions/group/model"
	helper "lombaku_backend/internals/helpers"

	"lombaku_backend/internals/constants"
)

type GroupController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{
		DB:        db,
		Validator: validator.New(),
	}
}

func (ctl *GroupController) ensureCanManageCompetition(c *fiber.Ctx, competitionID uuid.UUID) error {
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

// POST /a/groups
func (ctl *GroupController) Create(c *fiber.Ctx) error {
	var req groupDTO.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := ctl.ensureCanManageCompetition(c, req.GroupCompetitionID); err != nil {
		return err
	}

	g := groupModel.GroupModel{
		GroupCompetitionID:     req.GroupCompetitionID,
		GroupName:              strings.TrimSpace(req.GroupName),
		GroupGender:            groupModel.GroupGenderMixed,
		GroupAllowedIdentities: pq.StringArray(req.GroupAllowedIdentities),
		GroupMaxParticipants:   req.GroupMaxParticipants,
		GroupTeamSize:          req.GroupTeamSize,
	}
	if req.GroupGender != nil {
		g.GroupGender = groupModel.GroupGenderEnum(*req.GroupGender)
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&g).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Grup dibuat", g)
}

// PUT /a/groups/:id
func (ctl *GroupController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id grup tidak valid")
	}

	var req groupDTO.UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var g groupModel.GroupModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("group_id = ?", id).
		First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Grup tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctl.ensureCanManageCompetition(c, g.GroupCompetitionID); err != nil {
		return err
	}

	fields := map[string]any{}
	if req.GroupName != nil {
		fields["group_name"] = strings.TrimSpace(*req.GroupName)
	}
	if req.GroupGender != nil {
		fields["group_gender"] = *req.GroupGender
	}
	if req.GroupAllowedIdentities != nil {
		fields["group_allowed_identities"] = pq.StringArray(*req.GroupAllowedIdentities)
	}
	if req.GroupMaxParticipants != nil {
		fields["group_max_participants"] = *req.GroupMaxParticipants
	}
	if req.GroupTeamSize != nil {
		fields["group_team_size"] = *req.GroupTeamSize
	}
	if len(fields) == 0 {
		return helper.JsonUpdated(c, "Tidak ada perubahan", g)
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&groupModel.GroupModel{}).
		Where("group_id = ?", id).
		Updates(fields).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("group_id = ?", id).
		First(&g).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Grup diperbarui", g)
}

// DELETE /a/groups/:id — soft delete.
func (ctl *GroupController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id grup tidak valid")
	}

	var g groupModel.GroupModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("group_id = ?", id).
		First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Grup tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctl.ensureCanManageCompetition(c, g.GroupCompetitionID); err != nil {
		return err
	}

	if err := ctl.DB.WithContext(c.Context()).
		Delete(&groupModel.GroupModel{}, "group_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Grup dihapus", fiber.Map{"group_id": id})
}

// GET /competitions/:id/groups (public)
func (ctl *GroupController) ListByCompetition(c *fiber.Ctx) error {
	competitionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id kompetisi tidak valid")
	}

	var rows []groupModel.GroupModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("group_competition_id = ?", competitionID).
		Order("group_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", rows)
}
