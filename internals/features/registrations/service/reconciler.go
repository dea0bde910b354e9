// file: internals/features/registrations/service/reconciler.go
package service

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	eventModel "lombaku_backend/internals/features/competitions/event/model"
	groupModel "lombaku_backend/internals/features/competitions/group/model"
	regModel "lombaku_backend/internals/features/registrations/model"
	teamModel "lombaku_backend/internals/features/teams/model"
	helper "lombaku_backend/internals/helpers"
)

/* =========================================================
   Reconciler: roster tim → diff registrasi (insert/update/cancel).

   Kontrak:
   - hanya anggota registered=true dengan ≥1 event yang ter-resolve yang diproses;
   - nama peserta (dinormalisasi) adalah kunci pencocokan per (kompetisi, tim);
   - match → update + paksa approved (yang cancelled hidup lagi) + ganti utuh selections;
   - tanpa match → insert approved atas nama owner tim;
   - registrasi lama yang tidak diklaim roster → cancelled (tidak pernah delete);
   - seluruhnya satu transaksi.
   ========================================================= */

type SyncResult struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Cancelled int `json:"cancelled"`
}

// RegistrationInsert adalah satu registrasi baru beserta selection-nya.
type RegistrationInsert struct {
	Registration regModel.RegistrationModel
	Selections   []SelectionInput
}

// RegistrationUpdate adalah update field + penggantian utuh selection
// untuk registrasi yang sudah ada.
type RegistrationUpdate struct {
	RegistrationID uuid.UUID
	Fields         map[string]any
	Selections     []SelectionInput
}

// RosterSyncMutations adalah hasil diff yang diserahkan ke writer.
type RosterSyncMutations struct {
	Inserts   []*RegistrationInsert
	Updates   []*RegistrationUpdate
	CancelIDs []uuid.UUID
}

// SyncTeamRoster menyinkronkan roster tim ke registrasi kompetisi.
// Load katalog + diff + tulis terjadi dalam satu transaksi; gagal di tengah
// berarti rollback total.
func SyncTeamRoster(db *gorm.DB, competitionID uuid.UUID, team *teamModel.TeamModel) (*SyncResult, error) {
	var result SyncResult

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := LoadCompetition(tx, competitionID); err != nil {
			return err
		}

		// 1) Katalog event: nama (trimmed, case-sensitive) → event_id
		var events []eventModel.EventModel
		if err := tx.Where("event_competition_id = ?", competitionID).Find(&events).Error; err != nil {
			return err
		}
		eventByName := make(map[string]uuid.UUID, len(events))
		for _, ev := range events {
			eventByName[strings.TrimSpace(ev.EventName)] = ev.EventID
		}

		// Grup: label roster → group_id (label yang tidak dikenal dibiarkan nil)
		var groups []groupModel.GroupModel
		if err := tx.Where("group_competition_id = ?", competitionID).Find(&groups).Error; err != nil {
			return err
		}
		groupByName := make(map[string]uuid.UUID, len(groups))
		for _, g := range groups {
			groupByName[strings.TrimSpace(g.GroupName)] = g.GroupID
		}

		// 2) Registrasi existing untuk (kompetisi, tim), keyed nama ternormalisasi
		var existing []regModel.RegistrationModel
		if err := tx.
			Where("registration_competition_id = ? AND registration_team_id = ?", competitionID, team.TeamID).
			Find(&existing).Error; err != nil {
			return err
		}
		existingByName := make(map[string]*regModel.RegistrationModel, len(existing))
		for i := range existing {
			existingByName[helper.NormalizeName(existing[i].RegistrationParticipantName)] = &existing[i]
		}

		// 3) Diff
		muts := computeRosterMutations(competitionID, team, eventByName, groupByName, existingByName, existing)

		result.Created = len(muts.Inserts)
		result.Updated = len(muts.Updates)
		result.Cancelled = len(muts.CancelIDs)

		// 4) Tulis
		return ApplyRosterSync(tx, muts)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func computeRosterMutations(
	competitionID uuid.UUID,
	team *teamModel.TeamModel,
	eventByName map[string]uuid.UUID,
	groupByName map[string]uuid.UUID,
	existingByName map[string]*regModel.RegistrationModel,
	existing []regModel.RegistrationModel,
) *RosterSyncMutations {
	muts := &RosterSyncMutations{}

	// Nama duplikat dalam satu submit jatuh ke entri yang sama: last write wins.
	insertByName := make(map[string]*RegistrationInsert)
	updateByName := make(map[string]*RegistrationUpdate)
	processed := make(map[uuid.UUID]struct{})

	// exempt menandai registrasi existing sebagai "tidak disentuh":
	// tidak di-update, tapi juga tidak dibatalkan di langkah konvergensi.
	exempt := func(normName string) {
		if reg, ok := existingByName[normName]; ok {
			processed[reg.RegistrationID] = struct{}{}
		}
	}

	for _, member := range team.TeamRoster {
		name := strings.TrimSpace(member.Name)
		if name == "" {
			continue
		}
		normName := helper.NormalizeName(name)

		if !member.Registered {
			// Anggota registered=false diabaikan total: tidak disinkronkan,
			// tidak juga dibatalkan.
			exempt(normName)
			continue
		}

		selections := resolveMemberSelections(member, eventByName, groupByName)
		if len(selections) == 0 {
			// Tidak ada event yang ter-resolve: anggota dilewati,
			// tidak dibuatkan registrasi kosong dan yang lama tidak disentuh.
			exempt(normName)
			continue
		}

		if reg, ok := existingByName[normName]; ok {
			upd := &RegistrationUpdate{
				RegistrationID: reg.RegistrationID,
				Fields: map[string]any{
					"registration_participant_name": name,
					"registration_gender":           trimOrNil(member.Gender),
					"registration_status":           regModel.RegistrationStatusApproved,
				},
				Selections: selections,
			}
			if prev, dup := updateByName[normName]; dup {
				*prev = *upd // duplikat dalam satu roster: entri terakhir menang
			} else {
				updateByName[normName] = upd
				muts.Updates = append(muts.Updates, upd)
			}
			processed[reg.RegistrationID] = struct{}{}
			continue
		}

		ins := &RegistrationInsert{
			Registration: regModel.RegistrationModel{
				RegistrationCompetitionID:     competitionID,
				RegistrationParticipantUserID: team.TeamOwnerUserID,
				RegistrationTeamID:            &team.TeamID,
				RegistrationParticipantName:   name,
				RegistrationGender:            helper.TrimPtr(member.Gender),
				RegistrationStatus:            regModel.RegistrationStatusApproved,
			},
			Selections: selections,
		}
		if prev, dup := insertByName[normName]; dup {
			*prev = *ins
		} else {
			insertByName[normName] = ins
			muts.Inserts = append(muts.Inserts, ins)
		}
	}

	// Konvergensi: registrasi yang tidak diklaim roster baru dipensiunkan.
	for i := range existing {
		reg := &existing[i]
		if _, ok := processed[reg.RegistrationID]; ok {
			continue
		}
		if reg.RegistrationStatus == regModel.RegistrationStatusCancelled {
			continue
		}
		muts.CancelIDs = append(muts.CancelIDs, reg.RegistrationID)
	}

	return muts
}

// resolveMemberSelections memetakan slot event anggota ke katalog.
// Nama yang tidak dikenal tidak menghasilkan selection (drop diam-diam).
func resolveMemberSelections(
	member teamModel.RosterMember,
	eventByName map[string]uuid.UUID,
	groupByName map[string]uuid.UUID,
) []SelectionInput {
	var groupID *uuid.UUID
	if member.GroupLabel != nil {
		if id, ok := groupByName[strings.TrimSpace(*member.GroupLabel)]; ok {
			groupID = &id
		}
	}

	events := member.Events
	if len(events) > teamModel.MaxRosterMemberEvents {
		events = events[:teamModel.MaxRosterMemberEvents]
	}

	var out []SelectionInput
	seen := map[uuid.UUID]struct{}{}
	for _, slot := range events {
		if slot.Name == nil {
			continue
		}
		id, ok := eventByName[strings.TrimSpace(*slot.Name)]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue // selection unik per (registration, event)
		}
		seen[id] = struct{}{}
		out = append(out, SelectionInput{EventID: id, GroupID: groupID})
	}
	return out
}

func trimOrNil(p *string) any {
	if v := helper.TrimPtr(p); v != nil {
		return *v
	}
	return gorm.Expr("NULL")
}
