package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	regModel "lombaku_backend/internals/features/registrations/model"
	teamModel "lombaku_backend/internals/features/teams/model"
)

func TestSyncTeamRoster_CreatesApprovedRegistration(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	ev := createEvent(t, db, comp.CompetitionID, "100m")
	team := createTeam(t, db, member("Zhang", true, "100m"))

	result, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Cancelled)

	regs := loadRegistrations(t, db, comp.CompetitionID, team.TeamID)
	require.Len(t, regs, 1)
	assert.Equal(t, "Zhang", regs[0].RegistrationParticipantName)
	assert.Equal(t, regModel.RegistrationStatusApproved, regs[0].RegistrationStatus)
	assert.Equal(t, team.TeamOwnerUserID, regs[0].RegistrationParticipantUserID)

	selections := loadSelections(t, db, regs[0].RegistrationID)
	require.Len(t, selections, 1)
	assert.Equal(t, ev.EventID, selections[0].RegistrationSelectionEventID)
	assert.Nil(t, selections[0].RegistrationSelectionGroupID)
}

func TestSyncTeamRoster_EmptyRosterCancelsWithoutDelete(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	createEvent(t, db, comp.CompetitionID, "100m")
	team := createTeam(t, db, member("Zhang", true, "100m"))

	_, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)

	setRoster(t, db, team, nil)
	result, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Cancelled)

	// soft-cancel: jumlah baris tidak berubah
	regs := loadRegistrations(t, db, comp.CompetitionID, team.TeamID)
	require.Len(t, regs, 1)
	assert.Equal(t, regModel.RegistrationStatusCancelled, regs[0].RegistrationStatus)
}

func TestSyncTeamRoster_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	createEvent(t, db, comp.CompetitionID, "100m")
	createEvent(t, db, comp.CompetitionID, "200m")
	team := createTeam(t, db,
		member("Ani", true, "100m", "200m"),
		member("Budi", true, "100m"),
	)

	first, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)

	second, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)
	assert.Equal(t, 0, second.Cancelled)

	regs := loadRegistrations(t, db, comp.CompetitionID, team.TeamID)
	require.Len(t, regs, 2)
	for _, reg := range regs {
		assert.Equal(t, regModel.RegistrationStatusApproved, reg.RegistrationStatus)
	}

	// tidak ada selection ganda setelah pass kedua
	var selCount int64
	require.NoError(t, db.Model(&regModel.RegistrationSelectionModel{}).Count(&selCount).Error)
	assert.EqualValues(t, 3, selCount)
}

func TestSyncTeamRoster_ConvergesDisjointRosters(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	createEvent(t, db, comp.CompetitionID, "100m")
	team := createTeam(t, db,
		member("Ani", true, "100m"),
		member("Budi", true, "100m"),
	)

	_, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)

	setRoster(t, db, team, []teamModel.RosterMember{member("Citra", true, "100m")})
	result, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 2, result.Cancelled)

	regs := loadRegistrations(t, db, comp.CompetitionID, team.TeamID)
	require.Len(t, regs, 3)
	byName := map[string]regModel.RegistrationStatusEnum{}
	for _, reg := range regs {
		byName[reg.RegistrationParticipantName] = reg.RegistrationStatus
	}
	assert.Equal(t, regModel.RegistrationStatusCancelled, byName["Ani"])
	assert.Equal(t, regModel.RegistrationStatusCancelled, byName["Budi"])
	assert.Equal(t, regModel.RegistrationStatusApproved, byName["Citra"])
}

func TestSyncTeamRoster_NameKeyIgnoresWhitespace(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	createEvent(t, db, comp.CompetitionID, "100m")
	team := createTeam(t, db, member("Alice", true, "100m"))

	_, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)

	setRoster(t, db, team, []teamModel.RosterMember{member("  Alice ", true, "100m")})
	result, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)

	regs := loadRegistrations(t, db, comp.CompetitionID, team.TeamID)
	require.Len(t, regs, 1)
}

func TestSyncTeamRoster_UnresolvableEventProducesNothing(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	createEvent(t, db, comp.CompetitionID, "100m")
	team := createTeam(t, db, member("Dewi", true, "maraton"))

	result, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)

	regs := loadRegistrations(t, db, comp.CompetitionID, team.TeamID)
	assert.Empty(t, regs)
}

func TestSyncTeamRoster_ReactivatesCancelled(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	createEvent(t, db, comp.CompetitionID, "100m")
	team := createTeam(t, db, member("Zhang", true, "100m"))

	_, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)

	setRoster(t, db, team, nil)
	_, err = SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)

	setRoster(t, db, team, []teamModel.RosterMember{member("Zhang", true, "100m")})
	result, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)

	regs := loadRegistrations(t, db, comp.CompetitionID, team.TeamID)
	require.Len(t, regs, 1)
	assert.Equal(t, regModel.RegistrationStatusApproved, regs[0].RegistrationStatus)
}

func TestSyncTeamRoster_UnregisteredMemberIsLeftAlone(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	createEvent(t, db, comp.CompetitionID, "100m")
	team := createTeam(t, db, member("Eko", true, "100m"))

	_, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)

	// Eko masih di roster tapi registered=false: tidak di-update,
	// tidak juga dibatalkan.
	setRoster(t, db, team, []teamModel.RosterMember{member("Eko", false, "100m")})
	result, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Cancelled)

	regs := loadRegistrations(t, db, comp.CompetitionID, team.TeamID)
	require.Len(t, regs, 1)
	assert.Equal(t, regModel.RegistrationStatusApproved, regs[0].RegistrationStatus)
}

func TestSyncTeamRoster_DuplicateNamesLastWriteWins(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	createEvent(t, db, comp.CompetitionID, "100m")
	ev200 := createEvent(t, db, comp.CompetitionID, "200m")
	team := createTeam(t, db,
		member("Fajar", true, "100m"),
		member("Fajar", true, "200m"),
	)

	result, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	regs := loadRegistrations(t, db, comp.CompetitionID, team.TeamID)
	require.Len(t, regs, 1)

	selections := loadSelections(t, db, regs[0].RegistrationID)
	require.Len(t, selections, 1)
	assert.Equal(t, ev200.EventID, selections[0].RegistrationSelectionEventID)
}

func TestSyncTeamRoster_UnknownCompetitionFails(t *testing.T) {
	db := setupTestDB(t)
	team := createTeam(t, db, member("Gita", true, "100m"))

	_, err := SyncTeamRoster(db, uuid.New(), team)
	require.Error(t, err)
	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, se.Kind)
}

func TestSyncTeamRoster_ResolvesGroupLabel(t *testing.T) {
	db := setupTestDB(t)
	comp := createCompetition(t, db, nil, nil)
	createEvent(t, db, comp.CompetitionID, "100m")

	groupID := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO competition_groups (group_id, group_competition_id, group_name, group_gender) VALUES (?, ?, ?, ?)`,
		groupID, comp.CompetitionID, "Putri U-17", "female",
	).Error)

	known := member("Dewi", true, "100m")
	label := "Putri U-17"
	known.GroupLabel = &label

	unknown := member("Sari", true, "100m")
	badLabel := "Veteran"
	unknown.GroupLabel = &badLabel

	team := createTeam(t, db, known, unknown)
	_, err := SyncTeamRoster(db, comp.CompetitionID, team)
	require.NoError(t, err)

	regs := loadRegistrations(t, db, comp.CompetitionID, team.TeamID)
	require.Len(t, regs, 2)
	for _, reg := range regs {
		selections := loadSelections(t, db, reg.RegistrationID)
		require.Len(t, selections, 1)
		if reg.RegistrationParticipantName == "Dewi" {
			require.NotNil(t, selections[0].RegistrationSelectionGroupID)
			assert.Equal(t, groupID, *selections[0].RegistrationSelectionGroupID)
		} else {
			// label yang tidak dikenal: selection tetap dibuat tanpa grup
			assert.Nil(t, selections[0].RegistrationSelectionGroupID)
		}
	}
}
