// file: internals/features/registrations/service/writer.go
package service

import (
	"time"

	"gorm.io/gorm"

	regModel "lombaku_backend/internals/features/registrations/model"
)

/* =========================================================
   Transactional Writer: menerapkan mutasi hasil Reconciler /
   Lifecycle Guard secara atomik. Gagal satu langkah = rollback semua.
   ========================================================= */

// ApplyRosterSync menerapkan satu set mutasi sinkronisasi roster.
// Dipanggil dengan tx milik reconciler; kalau dipanggil dengan *gorm.DB biasa,
// gorm membungkusnya jadi transaksi sendiri.
func ApplyRosterSync(db *gorm.DB, muts *RosterSyncMutations) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, ins := range muts.Inserts {
			if err := tx.Create(&ins.Registration).Error; err != nil {
				return err
			}
			if err := replaceSelections(tx, &ins.Registration, ins.Selections); err != nil {
				return err
			}
		}

		for _, upd := range muts.Updates {
			fields := upd.Fields
			if fields == nil {
				fields = map[string]any{}
			}
			fields["registration_updated_at"] = time.Now()
			if err := tx.Model(&regModel.RegistrationModel{}).
				Where("registration_id = ?", upd.RegistrationID).
				Updates(fields).Error; err != nil {
				return err
			}
			reg := regModel.RegistrationModel{RegistrationID: upd.RegistrationID}
			if err := replaceSelections(tx, &reg, upd.Selections); err != nil {
				return err
			}
		}

		if len(muts.CancelIDs) > 0 {
			if err := tx.Model(&regModel.RegistrationModel{}).
				Where("registration_id IN ? AND registration_status <> ?",
					muts.CancelIDs, regModel.RegistrationStatusCancelled).
				Updates(map[string]any{
					"registration_status":     regModel.RegistrationStatusCancelled,
					"registration_updated_at": time.Now(),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyDirectRegistration menulis satu registrasi baru + selection-nya.
func ApplyDirectRegistration(db *gorm.DB, reg *regModel.RegistrationModel, selections []SelectionInput) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reg).Error; err != nil {
			return err
		}
		return replaceSelections(tx, reg, selections)
	})
}

// replaceSelections mengganti utuh selection rows sebuah registrasi
// (delete lalu insert, tidak pernah partial patch).
func replaceSelections(tx *gorm.DB, reg *regModel.RegistrationModel, selections []SelectionInput) error {
	if err := tx.
		Where("registration_selection_registration_id = ?", reg.RegistrationID).
		Delete(&regModel.RegistrationSelectionModel{}).Error; err != nil {
		return err
	}

	for _, sel := range selections {
		row := regModel.RegistrationSelectionModel{
			RegistrationSelectionRegistrationID: reg.RegistrationID,
			RegistrationSelectionEventID:        sel.EventID,
			RegistrationSelectionGroupID:        sel.GroupID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
