package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	compModel "lombaku_backend/internals/features/competitions/competition/model"
	eventModel "lombaku_backend/internals/features/competitions/event/model"
	regModel "lombaku_backend/internals/features/registrations/model"
	teamModel "lombaku_backend/internals/features/teams/model"
)

// setupTestDB membuka sqlite file sementara dan menyiapkan skema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&compModel.CompetitionModel{},
		&eventModel.EventModel{},
		&teamModel.TeamModel{},
		&regModel.RegistrationModel{},
		&regModel.RegistrationSelectionModel{},
	))

	// sqlite tidak mengenal tipe text[]; tabel grup dibuat manual supaya
	// pq.StringArray tetap tersimpan sebagai literal array postgres.
	require.NoError(t, db.Exec(`CREATE TABLE competition_groups (
		group_id uuid PRIMARY KEY,
		group_competition_id uuid NOT NULL,
		group_name text NOT NULL,
		group_gender text NOT NULL DEFAULT 'mixed',
		group_allowed_identities text,
		group_max_participants integer,
		group_team_size integer,
		group_created_at datetime,
		group_updated_at datetime,
		group_deleted_at datetime
	)`).Error)

	return db
}

func createCompetition(t *testing.T, db *gorm.DB, signupStart, signupEnd *time.Time) *compModel.CompetitionModel {
	t.Helper()
	comp := &compModel.CompetitionModel{
		CompetitionName:            "Pekan Olahraga",
		CompetitionSignupStartAt:   signupStart,
		CompetitionSignupEndAt:     signupEnd,
		CompetitionCreatedByUserID: uuid.New(),
	}
	require.NoError(t, db.Create(comp).Error)
	return comp
}

func createEvent(t *testing.T, db *gorm.DB, competitionID uuid.UUID, name string) *eventModel.EventModel {
	t.Helper()
	ev := &eventModel.EventModel{
		EventCompetitionID: competitionID,
		EventName:          name,
		EventUnit:          eventModel.EventUnitIndividual,
	}
	require.NoError(t, db.Create(ev).Error)
	return ev
}

func createTeam(t *testing.T, db *gorm.DB, roster ...teamModel.RosterMember) *teamModel.TeamModel {
	t.Helper()
	team := &teamModel.TeamModel{
		TeamName:        "Tim Garuda",
		TeamOwnerUserID: uuid.New(),
	}
	team.TeamRoster = datatypes.NewJSONSlice(roster)
	require.NoError(t, db.Create(team).Error)
	return team
}

func member(name string, registered bool, eventNames ...string) teamModel.RosterMember {
	m := teamModel.RosterMember{
		Name:       name,
		Registered: registered,
	}
	for i := range eventNames {
		m.Events = append(m.Events, teamModel.RosterMemberEvent{Name: &eventNames[i]})
	}
	return m
}

func setRoster(t *testing.T, db *gorm.DB, team *teamModel.TeamModel, roster []teamModel.RosterMember) {
	t.Helper()
	team.TeamRoster = datatypes.NewJSONSlice(roster)
	require.NoError(t, db.Model(&teamModel.TeamModel{}).
		Where("team_id = ?", team.TeamID).
		Update("team_roster", team.TeamRoster).Error)
}

func loadRegistrations(t *testing.T, db *gorm.DB, competitionID, teamID uuid.UUID) []regModel.RegistrationModel {
	t.Helper()
	var rows []regModel.RegistrationModel
	require.NoError(t, db.
		Where("registration_competition_id = ? AND registration_team_id = ?", competitionID, teamID).
		Order("registration_created_at ASC").
		Find(&rows).Error)
	return rows
}

func loadSelections(t *testing.T, db *gorm.DB, registrationID uuid.UUID) []regModel.RegistrationSelectionModel {
	t.Helper()
	var rows []regModel.RegistrationSelectionModel
	require.NoError(t, db.
		Where("registration_selection_registration_id = ?", registrationID).
		Find(&rows).Error)
	return rows
}

func timePtr(v time.Time) *time.Time { return &v }
