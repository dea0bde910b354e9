// file: internals/features/registrations/service/guard.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	compModel "lombaku_backend/internals/features/competitions/competition/model"
	eventModel "lombaku_backend/internals/features/competitions/event/model"
	groupModel "lombaku_backend/internals/features/competitions/group/model"
	regModel "lombaku_backend/internals/features/registrations/model"
	teamModel "lombaku_backend/internals/features/teams/model"
	helper "lombaku_backend/internals/helpers"

	"lombaku_backend/internals/constants"
)

/* =========================================================
   Lifecycle Guard: kelayakan signup + validasi referensi +
   aturan transisi status per role.
   ========================================================= */

// SelectionInput adalah pilihan event/grup dari jalur registrasi langsung.
type SelectionInput struct {
	EventID uuid.UUID
	GroupID *uuid.UUID
}

type DirectRegistrationInput struct {
	CompetitionID   uuid.UUID
	UserID          uuid.UUID
	ParticipantName string
	Gender          *string
	IdentityType    *string
	Contact         *string

	// TeamID eksplisit (harus milik user) ATAU TeamName (upsert tim milik user).
	TeamID   *uuid.UUID
	TeamName *string

	Selections []SelectionInput

	Organization *string
	Remark       *string
	Passthrough  map[string]any
	Attachments  []regModel.RegistrationAttachment
}

// LoadCompetition mengambil kompetisi; gagal dengan NotFound kalau tidak ada.
func LoadCompetition(tx *gorm.DB, competitionID uuid.UUID) (*compModel.CompetitionModel, error) {
	var comp compModel.CompetitionModel
	if err := tx.Where("competition_id = ?", competitionID).First(&comp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Kompetisi tidak ditemukan")
		}
		return nil, err
	}
	return &comp, nil
}

// CheckSignupWindow memeriksa apakah `now` ada dalam jendela pendaftaran.
// Batas start/end inklusif; nil berarti tidak dibatasi.
func CheckSignupWindow(comp *compModel.CompetitionModel, now time.Time) error {
	if comp.CompetitionSignupStartAt != nil && now.Before(*comp.CompetitionSignupStartAt) {
		return errWindowNotOpen("Pendaftaran belum dibuka")
	}
	if comp.CompetitionSignupEndAt != nil && now.After(*comp.CompetitionSignupEndAt) {
		return errWindowClosed("Pendaftaran sudah ditutup")
	}
	return nil
}

// ValidateSelections memastikan semua event (dan grup, jika ada) milik kompetisi ini.
func ValidateSelections(tx *gorm.DB, competitionID uuid.UUID, selections []SelectionInput) error {
	if len(selections) == 0 {
		return errValidation("Minimal satu event harus dipilih")
	}

	eventIDs := make([]uuid.UUID, 0, len(selections))
	groupIDs := make([]uuid.UUID, 0, len(selections))
	seenEvents := make(map[uuid.UUID]struct{}, len(selections))
	for _, s := range selections {
		// selection unik per (registration, event)
		if _, dup := seenEvents[s.EventID]; dup {
			return errValidation("Event yang sama dipilih lebih dari satu kali")
		}
		seenEvents[s.EventID] = struct{}{}
		eventIDs = append(eventIDs, s.EventID)
		if s.GroupID != nil {
			groupIDs = append(groupIDs, *s.GroupID)
		}
	}

	var eventCount int64
	if err := tx.Model(&eventModel.EventModel{}).
		Where("event_id IN ? AND event_competition_id = ?", eventIDs, competitionID).
		Count(&eventCount).Error; err != nil {
		return err
	}
	if eventCount != int64(len(eventIDs)) {
		return errValidation("Ada event yang bukan milik kompetisi ini")
	}

	if len(groupIDs) > 0 {
		var groupCount int64
		if err := tx.Model(&groupModel.GroupModel{}).
			Where("group_id IN ? AND group_competition_id = ?", groupIDs, competitionID).
			Count(&groupCount).Error; err != nil {
			return err
		}
		if groupCount != int64(len(uniqueUUIDs(groupIDs))) {
			return errValidation("Ada grup yang bukan milik kompetisi ini")
		}
	}
	return nil
}

// ResolveTeam menyelesaikan tim untuk registrasi langsung:
//   - TeamID: harus ada dan dimiliki user (bukan sekadar "tim aktif" implisit).
//   - TeamName: upsert tim milik user (key: owner_user_id).
//   - dua-duanya kosong: registrasi tanpa tim.
func ResolveTeam(tx *gorm.DB, userID uuid.UUID, teamID *uuid.UUID, teamName *string) (*teamModel.TeamModel, error) {
	if teamID != nil {
		var team teamModel.TeamModel
		if err := tx.Where("team_id = ?", *teamID).First(&team).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errNotFound("Tim tidak ditemukan")
			}
			return nil, err
		}
		if team.TeamOwnerUserID != userID {
			return nil, errForbidden("Tim ini bukan milik Anda")
		}
		return &team, nil
	}

	name := helper.TrimPtr(teamName)
	if name == nil {
		return nil, nil
	}

	var team teamModel.TeamModel
	err := tx.Where("team_owner_user_id = ?", userID).First(&team).Error
	switch {
	case err == nil:
		if team.TeamName != *name {
			team.TeamName = *name
			if err := tx.Model(&teamModel.TeamModel{}).
				Where("team_id = ?", team.TeamID).
				Update("team_name", *name).Error; err != nil {
				return nil, err
			}
		}
		return &team, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		team = teamModel.TeamModel{
			TeamName:        *name,
			TeamOwnerUserID: userID,
		}
		if err := tx.Create(&team).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, errConflict("User ini sudah memiliki tim")
			}
			return nil, err
		}
		return &team, nil
	default:
		return nil, err
	}
}

// SubmitDirectRegistration adalah jalur registrasi langsung (non-roster):
// validasi berurutan (kompetisi → jendela → event → grup → tim), lalu insert
// registrasi status pending + selection rows dalam satu transaksi.
func SubmitDirectRegistration(db *gorm.DB, in DirectRegistrationInput) (*regModel.RegistrationModel, error) {
	name := strings.TrimSpace(in.ParticipantName)
	if name == "" {
		return nil, errValidation("Nama peserta wajib diisi")
	}

	var created *regModel.RegistrationModel
	err := db.Transaction(func(tx *gorm.DB) error {
		comp, err := LoadCompetition(tx, in.CompetitionID)
		if err != nil {
			return err
		}
		if err := CheckSignupWindow(comp, time.Now()); err != nil {
			return err
		}
		if err := ValidateSelections(tx, in.CompetitionID, in.Selections); err != nil {
			return err
		}
		team, err := ResolveTeam(tx, in.UserID, in.TeamID, in.TeamName)
		if err != nil {
			return err
		}

		reg := regModel.RegistrationModel{
			RegistrationCompetitionID:     in.CompetitionID,
			RegistrationParticipantUserID: in.UserID,
			RegistrationParticipantName:   name,
			RegistrationGender:            helper.TrimPtr(in.Gender),
			RegistrationIdentityType:      helper.TrimPtr(in.IdentityType),
			RegistrationContact:           helper.TrimPtr(in.Contact),
			RegistrationStatus:            regModel.RegistrationStatusPending,
			RegistrationExtra: datatypes.NewJSONType(regModel.RegistrationExtra{
				Organization: helper.TrimPtr(in.Organization),
				Remark:       helper.TrimPtr(in.Remark),
				Passthrough:  in.Passthrough,
			}),
			RegistrationAttachments: datatypes.NewJSONSlice(in.Attachments),
		}
		if team != nil {
			reg.RegistrationTeamID = &team.TeamID
		}

		if err := ApplyDirectRegistration(tx, &reg, in.Selections); err != nil {
			return err
		}
		created = &reg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

/* =========================================================
   Transisi status
   ========================================================= */

// validTransition adalah mesin status untuk perubahan langsung (non-reconciler):
// pending → approved/rejected/cancelled, approved → cancelled,
// rejected → cancelled. cancelled terminal; reaktivasi hanya lewat sinkronisasi roster.
func validTransition(from, to regModel.RegistrationStatusEnum) bool {
	if from == to {
		return true // idempoten (mis. cancel dua kali)
	}
	switch from {
	case regModel.RegistrationStatusPending:
		return to == regModel.RegistrationStatusApproved ||
			to == regModel.RegistrationStatusRejected ||
			to == regModel.RegistrationStatusCancelled
	case regModel.RegistrationStatusApproved, regModel.RegistrationStatusRejected:
		return to == regModel.RegistrationStatusCancelled
	default:
		return false
	}
}

// CheckStatusChange menerapkan kontrak role:
//   - admin: bebas (tetap mengikuti mesin status);
//   - organizer: sama dengan admin tapi harus pembuat kompetisi induk;
//   - peserta: hanya boleh membatalkan registrasinya sendiri.
func CheckStatusChange(
	role string,
	actorUserID uuid.UUID,
	reg *regModel.RegistrationModel,
	comp *compModel.CompetitionModel,
	to regModel.RegistrationStatusEnum,
) error {
	switch to {
	case regModel.RegistrationStatusPending, regModel.RegistrationStatusApproved,
		regModel.RegistrationStatusRejected, regModel.RegistrationStatusCancelled:
	default:
		return errValidation("Status tidak dikenal")
	}

	if !validTransition(reg.RegistrationStatus, to) {
		return errValidation("Transisi status tidak diizinkan")
	}

	switch role {
	case constants.RoleAdmin:
		return nil
	case constants.RoleOrganizer:
		if comp == nil || comp.CompetitionCreatedByUserID != actorUserID {
			return errForbidden("Organizer hanya boleh mengelola kompetisi buatannya sendiri")
		}
		return nil
	default:
		if reg.RegistrationParticipantUserID != actorUserID {
			return errForbidden("Registrasi ini bukan milik Anda")
		}
		if to != regModel.RegistrationStatusCancelled {
			return errForbidden("Peserta hanya boleh membatalkan registrasinya")
		}
		return nil
	}
}

/* ===============================
   helpers
=================================*/

func uniqueUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "violates unique constraint") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}
