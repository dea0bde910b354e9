// file: internals/features/teams/controller/team_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lombaku_backend/internals/features/registrations/service"
	teamDTO "lombaku_backend/internals/features/teams/dto"
	teamModel "lombaku_backend/internals/features/teams/model"
	helper "lombaku_backend/internals/helpers"
)

type TeamController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{
		DB:        db,
		Validator: validator.New(),
	}
}

// GET /u/teams — tim milik user login.
func (ctl *TeamController) GetMyTeam(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var team teamModel.TeamModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("team_owner_user_id = ?", userID).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Anda belum memiliki tim")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", teamDTO.FromModel(&team))
}

// PUT /u/teams — upsert profil tim (key: owner_user_id; satu tim per user).
func (ctl *TeamController) UpsertMyTeam(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req teamDTO.UpsertTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var team teamModel.TeamModel
	err = ctl.DB.WithContext(c.Context()).
		Where("team_owner_user_id = ?", userID).
		First(&team).Error

	switch {
	case err == nil:
		if err := ctl.DB.WithContext(c.Context()).
			Model(&teamModel.TeamModel{}).
			Where("team_id = ?", team.TeamID).
			Updates(map[string]any{
				"team_name":          req.TeamName,
				"team_contact_phone": helper.TrimPtr(req.TeamContactPhone),
			}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		team.TeamName = req.TeamName
		team.TeamContactPhone = helper.TrimPtr(req.TeamContactPhone)
		return helper.JsonUpdated(c, "Tim diperbarui", teamDTO.FromModel(&team))

	case errors.Is(err, gorm.ErrRecordNotFound):
		team = teamModel.TeamModel{
			TeamName:         req.TeamName,
			TeamOwnerUserID:  userID,
			TeamContactPhone: helper.TrimPtr(req.TeamContactPhone),
		}
		if err := ctl.DB.WithContext(c.Context()).Create(&team).Error; err != nil {
			return helper.JsonError(c, fiber.StatusConflict, "User ini sudah memiliki tim")
		}
		return helper.JsonCreated(c, "Tim dibuat", teamDTO.FromModel(&team))

	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

// PUT /u/teams/roster — simpan roster verbatim; kalau competition_id diisi,
// jalankan sinkronisasi registrasi. Roster tetap tersimpan apa pun hasil sync.
func (ctl *TeamController) PutRoster(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req teamDTO.PutRosterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var team teamModel.TeamModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("team_owner_user_id = ?", userID).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Anda belum memiliki tim")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	roster := req.ToRoster()
	team.TeamRoster = datatypes.NewJSONSlice(roster)
	if err := ctl.DB.WithContext(c.Context()).
		Model(&teamModel.TeamModel{}).
		Where("team_id = ?", team.TeamID).
		Update("team_roster", team.TeamRoster).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if req.CompetitionID == nil {
		return helper.JsonUpdated(c, "Roster disimpan", fiber.Map{
			"team": teamDTO.FromModel(&team),
		})
	}

	syncResult, err := service.SyncTeamRoster(ctl.DB.WithContext(c.Context()), *req.CompetitionID, &team)
	if err != nil {
		if se, ok := service.AsError(err); ok {
			return helper.JsonError(c, se.HTTPStatus(), se.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Roster disimpan dan disinkronkan", fiber.Map{
		"team": teamDTO.FromModel(&team),
		"sync": syncResult,
	})
}
