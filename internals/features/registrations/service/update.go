// file: internals/features/registrations/service/update.go
package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	compModel "lombaku_backend/internals/features/competitions/competition/model"
	regModel "lombaku_backend/internals/features/registrations/model"
	helper "lombaku_backend/internals/helpers"
	"lombaku_backend/internals/helpers/storage"

	"lombaku_backend/internals/constants"
)

// UpdateRegistrationInput adalah patch parsial sebuah registrasi.
type UpdateRegistrationInput struct {
	ActorUserID uuid.UUID
	ActorRole   string

	Status       *regModel.RegistrationStatusEnum
	Remark       *string
	Organization *string
	Attachments  *[]regModel.RegistrationAttachment

	Contact      *string
	Gender       *string
	IdentityType *string
}

// UpdateRegistration menerapkan patch dengan gating role:
// status lewat CheckStatusChange; field lain boleh diubah admin, organizer
// pemilik kompetisi, atau peserta pemilik registrasi.
func UpdateRegistration(db *gorm.DB, registrationID uuid.UUID, in UpdateRegistrationInput) (*regModel.RegistrationModel, error) {
	var out *regModel.RegistrationModel
	var detached []regModel.RegistrationAttachment

	err := db.Transaction(func(tx *gorm.DB) error {
		var reg regModel.RegistrationModel
		if err := tx.Where("registration_id = ?", registrationID).First(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Registrasi tidak ditemukan")
			}
			return err
		}

		var comp *compModel.CompetitionModel
		if in.ActorRole == constants.RoleOrganizer {
			var err error
			comp, err = LoadCompetition(tx, reg.RegistrationCompetitionID)
			if err != nil {
				return err
			}
		}

		if err := checkFieldEdit(in.ActorRole, in.ActorUserID, &reg, comp); err != nil {
			return err
		}

		fields := map[string]any{}

		if in.Status != nil {
			if err := CheckStatusChange(in.ActorRole, in.ActorUserID, &reg, comp, *in.Status); err != nil {
				return err
			}
			fields["registration_status"] = *in.Status
		}

		if in.Contact != nil {
			fields["registration_contact"] = helper.TrimPtr(in.Contact)
		}
		if in.Gender != nil {
			fields["registration_gender"] = helper.TrimPtr(in.Gender)
		}
		if in.IdentityType != nil {
			fields["registration_identity_type"] = helper.TrimPtr(in.IdentityType)
		}

		if in.Remark != nil || in.Organization != nil {
			extra := reg.RegistrationExtra.Data()
			if in.Remark != nil {
				extra.Remark = helper.TrimPtr(in.Remark)
			}
			if in.Organization != nil {
				extra.Organization = helper.TrimPtr(in.Organization)
			}
			fields["registration_extra"] = datatypes.NewJSONType(extra)
		}
		if in.Attachments != nil {
			kept := make(map[string]struct{}, len(*in.Attachments))
			for _, a := range *in.Attachments {
				kept[a.FileURL] = struct{}{}
			}
			for _, old := range reg.RegistrationAttachments {
				if _, ok := kept[old.FileURL]; !ok {
					detached = append(detached, old)
				}
			}
			fields["registration_attachments"] = datatypes.NewJSONSlice(*in.Attachments)
		}

		if len(fields) == 0 {
			out = &reg
			return nil
		}
		fields["registration_updated_at"] = time.Now()

		if err := tx.Model(&regModel.RegistrationModel{}).
			Where("registration_id = ?", reg.RegistrationID).
			Updates(fields).Error; err != nil {
			return err
		}

		if err := tx.Where("registration_id = ?", reg.RegistrationID).First(&reg).Error; err != nil {
			return err
		}
		out = &reg
		return nil
	})
	if err != nil {
		return nil, err
	}

	// File yang lepas dari registrasi dibersihkan dari storage (best-effort,
	// setelah commit; gagal hapus tidak membatalkan patch).
	for _, a := range detached {
		if err := storage.DeleteAttachment(a.FileURL); err != nil {
			log.Printf("[WARN] gagal hapus attachment %s: %v", a.FileURL, err)
		}
	}
	return out, nil
}

// CancelRegistration = PATCH {status: cancelled}; idempoten.
func CancelRegistration(db *gorm.DB, registrationID uuid.UUID, actorUserID uuid.UUID, actorRole string) (*regModel.RegistrationModel, error) {
	status := regModel.RegistrationStatusCancelled
	return UpdateRegistration(db, registrationID, UpdateRegistrationInput{
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		Status:      &status,
	})
}

func checkFieldEdit(
	role string,
	actorUserID uuid.UUID,
	reg *regModel.RegistrationModel,
	comp *compModel.CompetitionModel,
) error {
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
		return nil
	}
}
