package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	regModel "lombaku_backend/internals/features/registrations/model"

	"lombaku_backend/internals/constants"
)

func TestSubmitDirectRegistration_CreatesPending(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")
	userID := uuid.New()

	remark := "bawa kartu identitas"
	reg, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          userID,
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: ev.EventID}},
		Remark:          &remark,
	})
	require.NoError(t, err)
	assert.Equal(t, regModel.RegistrationStatusPending, reg.RegistrationStatus)
	assert.Equal(t, userID, reg.RegistrationParticipantUserID)
	assert.Nil(t, reg.RegistrationTeamID)

	selections := loadSelections(t, db, reg.RegistrationID)
	require.Len(t, selections, 1)
	assert.Equal(t, ev.EventID, selections[0].RegistrationSelectionEventID)

	extra := reg.RegistrationExtra.Data()
	require.NotNil(t, extra.Remark)
	assert.Equal(t, "bawa kartu identitas", *extra.Remark)
}

func TestSubmitDirectRegistration_WindowNotOpen(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db,
		timePtr(time.Now().Add(time.Hour)),
		timePtr(time.Now().Add(2*time.Hour)),
	)
	ev := createEvent(t, db, comp.CompetitionID, "100m")

	_, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          uuid.New(),
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: ev.EventID}},
	})
	require.Error(t, err)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindWindowNotOpen, se.Kind)
}

func TestSubmitDirectRegistration_WindowClosed(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db,
		timePtr(time.Now().Add(-2*time.Hour)),
		timePtr(time.Now().Add(-time.Hour)),
	)
	ev := createEvent(t, db, comp.CompetitionID, "100m")

	_, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          uuid.New(),
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: ev.EventID}},
	})
	require.Error(t, err)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindWindowClosed, se.Kind)
}

func TestSubmitDirectRegistration_WithinWindowSucceeds(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db,
		timePtr(time.Now().Add(-time.Minute)),
		timePtr(time.Now().Add(time.Minute)),
	)
	ev := createEvent(t, db, comp.CompetitionID, "100m")

	_, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          uuid.New(),
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: ev.EventID}},
	})
	require.NoError(t, err)
}

func TestSubmitDirectRegistration_ForeignEventRejected(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	other := createCompetition(t, db, nil, nil)
	foreign := createEvent(t, db, other.CompetitionID, "100m")

	_, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          uuid.New(),
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: foreign.EventID}},
	})
	require.Error(t, err)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, se.Kind)

	// tidak ada baris yang tertulis
	var regCount, selCount int64
	require.NoError(t, db.Model(&regModel.RegistrationModel{}).Count(&regCount).Error)
	require.NoError(t, db.Model(&regModel.RegistrationSelectionModel{}).Count(&selCount).Error)
	assert.Zero(t, regCount)
	assert.Zero(t, selCount)
}

func TestSubmitDirectRegistration_DuplicateEventRejected(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")

	_, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          uuid.New(),
		ParticipantName: "Hana",
		Selections: []SelectionInput{
			{EventID: ev.EventID},
			{EventID: ev.EventID},
		},
	})
	require.Error(t, err)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, se.Kind)

	var regCount int64
	require.NoError(t, db.Model(&regModel.RegistrationModel{}).Count(&regCount).Error)
	assert.Zero(t, regCount)
}

func TestSubmitDirectRegistration_UnknownCompetition(t *testing.T) {
	db := setupTestDB(t)

	_, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   uuid.New(),
		UserID:          uuid.New(),
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: uuid.New()}},
	})
	require.Error(t, err)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, se.Kind)
}

func TestSubmitDirectRegistration_TeamNameUpsert(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")
	userID := uuid.New()

	teamName := "Tim Rajawali"
	reg, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          userID,
		ParticipantName: "Hana",
		TeamName:        &teamName,
		Selections:      []SelectionInput{{EventID: ev.EventID}},
	})
	require.NoError(t, err)
	require.NotNil(t, reg.RegistrationTeamID)

	// submit kedua dengan nama baru: tim yang sama di-rename, bukan dibuat lagi
	renamed := "Tim Rajawali Muda"
	reg2, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          userID,
		ParticipantName: "Hani",
		TeamName:        &renamed,
		Selections:      []SelectionInput{{EventID: ev.EventID}},
	})
	require.NoError(t, err)
	assert.Equal(t, *reg.RegistrationTeamID, *reg2.RegistrationTeamID)
}

func TestSubmitDirectRegistration_ForeignTeamForbidden(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")
	team := createTeam(t, db) // dimiliki user lain

	_, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          uuid.New(),
		ParticipantName: "Hana",
		TeamID:          &team.TeamID,
		Selections:      []SelectionInput{{EventID: ev.EventID}},
	})
	require.Error(t, err)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindForbidden, se.Kind)
}

func TestUpdateRegistration_ParticipantMayOnlyCancelOwn(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")
	userID := uuid.New()

	reg, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          userID,
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: ev.EventID}},
	})
	require.NoError(t, err)

	// peserta tidak boleh approve dirinya sendiri
	approved := regModel.RegistrationStatusApproved
	_, err = UpdateRegistration(db, reg.RegistrationID, UpdateRegistrationInput{
		ActorUserID: userID,
		ActorRole:   constants.RoleUser,
		Status:      &approved,
	})
	require.Error(t, err)
	se, _ := AsError(err)
	assert.Equal(t, KindForbidden, se.Kind)

	// user lain tidak boleh cancel
	_, err = CancelRegistration(db, reg.RegistrationID, uuid.New(), constants.RoleUser)
	require.Error(t, err)
	se, _ = AsError(err)
	assert.Equal(t, KindForbidden, se.Kind)

	// pemilik boleh cancel, dan idempoten
	out, err := CancelRegistration(db, reg.RegistrationID, userID, constants.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, regModel.RegistrationStatusCancelled, out.RegistrationStatus)

	out, err = CancelRegistration(db, reg.RegistrationID, userID, constants.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, regModel.RegistrationStatusCancelled, out.RegistrationStatus)
}

func TestUpdateRegistration_AdminTransitions(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")

	reg, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          uuid.New(),
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: ev.EventID}},
	})
	require.NoError(t, err)

	admin := uuid.New()

	approved := regModel.RegistrationStatusApproved
	out, err := UpdateRegistration(db, reg.RegistrationID, UpdateRegistrationInput{
		ActorUserID: admin,
		ActorRole:   constants.RoleAdmin,
		Status:      &approved,
	})
	require.NoError(t, err)
	assert.Equal(t, regModel.RegistrationStatusApproved, out.RegistrationStatus)

	cancelled := regModel.RegistrationStatusCancelled
	out, err = UpdateRegistration(db, reg.RegistrationID, UpdateRegistrationInput{
		ActorUserID: admin,
		ActorRole:   constants.RoleAdmin,
		Status:      &cancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, regModel.RegistrationStatusCancelled, out.RegistrationStatus)

	// cancelled terminal untuk perubahan langsung, bahkan oleh admin
	_, err = UpdateRegistration(db, reg.RegistrationID, UpdateRegistrationInput{
		ActorUserID: admin,
		ActorRole:   constants.RoleAdmin,
		Status:      &approved,
	})
	require.Error(t, err)
	se, _ := AsError(err)
	assert.Equal(t, KindValidation, se.Kind)
}

func TestUpdateRegistration_OrganizerMustOwnCompetition(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")

	reg, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          uuid.New(),
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: ev.EventID}},
	})
	require.NoError(t, err)

	approved := regModel.RegistrationStatusApproved

	// organizer lain: bukan pembuat kompetisi
	_, err = UpdateRegistration(db, reg.RegistrationID, UpdateRegistrationInput{
		ActorUserID: uuid.New(),
		ActorRole:   constants.RoleOrganizer,
		Status:      &approved,
	})
	require.Error(t, err)
	se, _ := AsError(err)
	assert.Equal(t, KindForbidden, se.Kind)

	// pembuat kompetisi boleh
	out, err := UpdateRegistration(db, reg.RegistrationID, UpdateRegistrationInput{
		ActorUserID: comp.CompetitionCreatedByUserID,
		ActorRole:   constants.RoleOrganizer,
		Status:      &approved,
	})
	require.NoError(t, err)
	assert.Equal(t, regModel.RegistrationStatusApproved, out.RegistrationStatus)
}

func TestUpdateRegistration_RejectedNotDirectlyReinstated(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")

	reg, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          uuid.New(),
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: ev.EventID}},
	})
	require.NoError(t, err)

	admin := uuid.New()
	rejected := regModel.RegistrationStatusRejected
	_, err = UpdateRegistration(db, reg.RegistrationID, UpdateRegistrationInput{
		ActorUserID: admin,
		ActorRole:   constants.RoleAdmin,
		Status:      &rejected,
	})
	require.NoError(t, err)

	// rejected → approved hanya lewat jalur sinkronisasi roster
	approved := regModel.RegistrationStatusApproved
	_, err = UpdateRegistration(db, reg.RegistrationID, UpdateRegistrationInput{
		ActorUserID: admin,
		ActorRole:   constants.RoleAdmin,
		Status:      &approved,
	})
	require.Error(t, err)
	se, _ := AsError(err)
	assert.Equal(t, KindValidation, se.Kind)
}

func TestUpdateRegistration_PatchExtraFields(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")
	userID := uuid.New()

	reg, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          userID,
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: ev.EventID}},
	})
	require.NoError(t, err)

	contact := "0812-0000-1111"
	org := "SMA 3"
	out, err := UpdateRegistration(db, reg.RegistrationID, UpdateRegistrationInput{
		ActorUserID:  userID,
		ActorRole:    constants.RoleUser,
		Contact:      &contact,
		Organization: &org,
	})
	require.NoError(t, err)
	require.NotNil(t, out.RegistrationContact)
	assert.Equal(t, contact, *out.RegistrationContact)

	extra := out.RegistrationExtra.Data()
	require.NotNil(t, extra.Organization)
	assert.Equal(t, org, *extra.Organization)
}

func TestUpdateRegistration_ReplacesAttachments(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")
	userID := uuid.New()

	reg, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          userID,
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: ev.EventID}},
		Attachments: []regModel.RegistrationAttachment{
			{FileName: "ktp.webp", FileURL: "https://files.example.com/ktp.webp"},
			{FileName: "sertifikat.webp", FileURL: "https://files.example.com/sertifikat.webp"},
		},
	})
	require.NoError(t, err)
	require.Len(t, reg.RegistrationAttachments, 2)

	// patch mengganti daftar lampiran utuh; lampiran lama yang tidak
	// disebut lagi dianggap lepas
	replacement := []regModel.RegistrationAttachment{
		{FileName: "ktp-baru.webp", FileURL: "https://files.example.com/ktp-baru.webp"},
	}
	out, err := UpdateRegistration(db, reg.RegistrationID, UpdateRegistrationInput{
		ActorUserID: userID,
		ActorRole:   constants.RoleUser,
		Attachments: &replacement,
	})
	require.NoError(t, err)
	require.Len(t, out.RegistrationAttachments, 1)
	assert.Equal(t, "ktp-baru.webp", out.RegistrationAttachments[0].FileName)
}

func TestSubmitDirectRegistration_ForeignGroupRejected(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	other := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")

	foreignGroup := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO competition_groups (group_id, group_competition_id, group_name, group_gender) VALUES (?, ?, ?, ?)`,
		foreignGroup, other.CompetitionID, "Putri U-17", "female",
	).Error)

	_, err := SubmitDirectRegistration(db, DirectRegistrationInput{
		CompetitionID:   comp.CompetitionID,
		UserID:          uuid.New(),
		ParticipantName: "Hana",
		Selections:      []SelectionInput{{EventID: ev.EventID, GroupID: &foreignGroup}},
	})
	require.Error(t, err)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, se.Kind)
}
