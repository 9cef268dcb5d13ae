package documents_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/trainerdesk/internal/docstore"
	"github.com/vytor/trainerdesk/internal/models"
	"github.com/vytor/trainerdesk/internal/repository/documents"
	"github.com/vytor/trainerdesk/internal/testutil"
)

type RepositoriesSuite struct {
	suite.Suite
	db    *sql.DB
	store docstore.Store
	ctx   context.Context
}

func (s *RepositoriesSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.store = docstore.NewSQLiteStore(s.db)
	s.ctx = context.Background()
}

func (s *RepositoriesSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func (s *RepositoriesSuite) TestTrainer_UpsertAndGet() {
	repo := documents.NewTrainerRepository(s.store)

	missing, err := repo.Get(s.ctx, "uid-1")
	s.Require().NoError(err)
	s.Assert().Nil(missing)

	s.Require().NoError(repo.Upsert(s.ctx, models.Trainer{ID: "uid-1", Username: "coach"}))
	s.Require().NoError(repo.Upsert(s.ctx, models.Trainer{ID: "uid-1", Username: "head coach"}))

	got, err := repo.Get(s.ctx, "uid-1")
	s.Require().NoError(err)
	s.Assert().Equal(&models.Trainer{ID: "uid-1", Username: "head coach"}, got)
}

func (s *RepositoriesSuite) TestClients_ScopedToTrainer() {
	repo := documents.NewClientRepository(s.store)

	_, err := repo.Insert(s.ctx, models.Client{TrainerID: "t1", FirstName: "Olha", LastName: "Shevchenko"})
	s.Require().NoError(err)
	_, err = repo.Insert(s.ctx, models.Client{TrainerID: "t1", FirstName: "Andrii", LastName: "Boiko"})
	s.Require().NoError(err)
	otherID, err := repo.Insert(s.ctx, models.Client{TrainerID: "t2", FirstName: "Ivan", LastName: "Koval",
		SocialNetworks: []models.SocialNetwork{{Name: "instagram", URL: "https://instagram.com/ivan"}}})
	s.Require().NoError(err)

	clients, err := repo.ListByTrainer(s.ctx, "t1")
	s.Require().NoError(err)
	s.Require().Len(clients, 2)
	s.Assert().Equal("Boiko", clients[0].LastName)
	s.Assert().Equal("Shevchenko", clients[1].LastName)

	other, err := repo.Get(s.ctx, otherID)
	s.Require().NoError(err)
	s.Assert().Equal("t2", other.TrainerID)
	s.Assert().Len(other.SocialNetworks, 1)

	none, err := repo.Get(s.ctx, "nope")
	s.Require().NoError(err)
	s.Assert().Nil(none)
}

func (s *RepositoriesSuite) TestTemplate_FirstByTrainer() {
	repo := documents.NewTemplateRepository(s.store)

	none, err := repo.FirstByTrainer(s.ctx, "t1")
	s.Require().NoError(err)
	s.Assert().Nil(none)

	id, err := repo.Insert(s.ctx, models.MetricTemplate{TrainerID: "t1", Rows: []models.MetricRow{{ID: "w", Name: "weight"}}})
	s.Require().NoError(err)

	tmpl, err := repo.FirstByTrainer(s.ctx, "t1")
	s.Require().NoError(err)
	s.Require().NotNil(tmpl)
	s.Assert().Equal(id, tmpl.ID)

	tmpl.Rows = append(tmpl.Rows, models.MetricRow{ID: "h", Name: "height"})
	s.Require().NoError(repo.Update(s.ctx, *tmpl))

	updated, err := repo.FirstByTrainer(s.ctx, "t1")
	s.Require().NoError(err)
	s.Assert().Equal([]models.MetricRow{{ID: "w", Name: "weight"}, {ID: "h", Name: "height"}}, updated.Rows)

	err = repo.Update(s.ctx, models.MetricTemplate{ID: "missing", TrainerID: "t1"})
	s.Assert().ErrorIs(err, docstore.ErrNotFound)
}

func (s *RepositoriesSuite) TestProgress_OrderedAndFoundByDate() {
	repo := documents.NewProgressRepository(s.store)

	_, err := repo.Insert(s.ctx, models.ProgressRecord{ClientID: "c1", Date: day(3), Values: map[string]float64{"w": 72}})
	s.Require().NoError(err)
	firstID, err := repo.Insert(s.ctx, models.ProgressRecord{ClientID: "c1", Date: day(1), Values: map[string]float64{"w": 70}})
	s.Require().NoError(err)
	_, err = repo.Insert(s.ctx, models.ProgressRecord{ClientID: "c2", Date: day(2), Values: map[string]float64{"w": 90}})
	s.Require().NoError(err)

	records, err := repo.ListByClient(s.ctx, "c1")
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Assert().True(records[0].Date.Equal(day(1)))
	s.Assert().True(records[1].Date.Equal(day(3)))

	found, err := repo.FindByClientAndDate(s.ctx, "c1", day(1))
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Assert().Equal(firstID, found.ID)

	missing, err := repo.FindByClientAndDate(s.ctx, "c1", day(2))
	s.Require().NoError(err)
	s.Assert().Nil(missing)

	found.Values = map[string]float64{"w": 69.5}
	s.Require().NoError(repo.Merge(s.ctx, *found))

	again, err := repo.FindByClientAndDate(s.ctx, "c1", day(1))
	s.Require().NoError(err)
	s.Assert().Equal(map[string]float64{"w": 69.5}, again.Values)
}

func (s *RepositoriesSuite) TestSchedule_DayRangeOrderedByTime() {
	repo := documents.NewScheduleRepository(s.store)
	at := func(d, h, m int) time.Time { return time.Date(2024, 3, d, h, m, 0, 0, time.UTC) }

	for _, a := range []models.Appointment{
		{TrainerID: "t1", ClientID: "c1", Date: at(1, 18, 0), Time: "18:00"},
		{TrainerID: "t1", ClientID: "c2", Date: at(1, 9, 30), Time: "09:30"},
		{TrainerID: "t1", ClientID: "c3", Date: at(2, 9, 0), Time: "09:00"},
		{TrainerID: "t2", ClientID: "c4", Date: at(1, 10, 0), Time: "10:00"},
	} {
		_, err := repo.Insert(s.ctx, a)
		s.Require().NoError(err)
	}

	list, err := repo.ListBetween(s.ctx, "t1", day(1), day(2).Add(-time.Millisecond))
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Assert().Equal("09:30", list[0].Time)
	s.Assert().Equal("18:00", list[1].Time)
}

func (s *RepositoriesSuite) TestLibrary_FoldersAndVideos() {
	folders := documents.NewFolderRepository(s.store)
	videos := documents.NewVideoRepository(s.store)

	legsID, err := folders.Insert(s.ctx, models.TrainingFolder{TrainerID: "t1", Name: "Legs", CreatedAt: day(1)})
	s.Require().NoError(err)
	_, err = folders.Insert(s.ctx, models.TrainingFolder{TrainerID: "t1", Name: "Arms", CreatedAt: day(2)})
	s.Require().NoError(err)

	list, err := folders.ListByTrainer(s.ctx, "t1")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Assert().Equal("Arms", list[0].Name)

	legs, err := folders.Get(s.ctx, legsID)
	s.Require().NoError(err)
	s.Assert().Equal("Legs", legs.Name)
	s.Assert().True(legs.CreatedAt.Equal(day(1)))

	for _, name := range []string{"squat", "lunge"} {
		_, err := videos.Insert(s.ctx, models.Video{TrainerID: "t1", FolderID: legsID, Name: name, URL: "file:///" + name + ".mp4"})
		s.Require().NoError(err)
	}
	_, err = videos.Insert(s.ctx, models.Video{TrainerID: "t2", FolderID: legsID, Name: "other"})
	s.Require().NoError(err)

	vids, err := videos.ListByFolder(s.ctx, "t1", legsID)
	s.Require().NoError(err)
	s.Require().Len(vids, 2)
	s.Assert().Equal("lunge", vids[0].Name)
	s.Assert().Equal("squat", vids[1].Name)
}

func TestRepositoriesSuite(t *testing.T) {
	suite.Run(t, new(RepositoriesSuite))
}
