package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/trainerdesk/internal/api"
	"github.com/vytor/trainerdesk/internal/docstore"
	"github.com/vytor/trainerdesk/internal/i18n"
	"github.com/vytor/trainerdesk/internal/metrics"
	"github.com/vytor/trainerdesk/internal/progress"
	"github.com/vytor/trainerdesk/internal/repository/documents"
	"github.com/vytor/trainerdesk/internal/services"
	"github.com/vytor/trainerdesk/internal/testutil"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type ServerSuite struct {
	suite.Suite
	handler http.Handler
	reg     *prometheus.Registry
	pingErr error
	done    func()
}

func (s *ServerSuite) SetupTest() {
	db := testutil.NewTestDB(s.T())
	s.done = func() { testutil.MustClose(s.T(), db) }
	store := docstore.NewSQLiteStore(db)

	catalog, err := i18n.Load("en")
	s.Require().NoError(err)

	var m *metrics.Manager
	m, s.reg = metrics.NewTestManagerAndRegistry()
	s.pingErr = nil

	clients := documents.NewClientRepository(store)
	templates := documents.NewTemplateRepository(store)
	srv := &api.Server{
		TrainerService:  services.NewTrainerService(documents.NewTrainerRepository(store)),
		ClientService:   services.NewClientService(clients),
		TemplateService: services.NewTemplateService(templates),
		ProgressService: services.NewProgressService(clients, templates, documents.NewProgressRepository(store),
			progress.NewBuilder("", time.UTC), m),
		ScheduleService: services.NewScheduleService(documents.NewScheduleRepository(store), clients, time.UTC),
		LibraryService:  services.NewLibraryService(documents.NewFolderRepository(store), documents.NewVideoRepository(store)),
		Catalog:         catalog,
		Metrics:         m,
		Gatherer:        s.reg,
		DB:              pingFunc(func(context.Context) error { return s.pingErr }),
		Location:        time.UTC,
		RequestTimeout:  5 * time.Second,
	}
	s.handler = srv.Routes()
}

func (s *ServerSuite) TearDownTest() {
	s.done()
}

type request struct {
	method  string
	path    string
	trainer string
	lang    string
	body    any
	cookies []*http.Cookie
}

func (s *ServerSuite) do(req request) *httptest.ResponseRecorder {
	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		s.Require().NoError(err)
		body = bytes.NewReader(raw)
	}
	r := httptest.NewRequest(req.method, req.path, body)
	if req.trainer != "" {
		r.Header.Set("X-Trainer-ID", req.trainer)
	}
	if req.lang != "" {
		r.Header.Set("Accept-Language", req.lang)
	}
	for _, c := range req.cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func (s *ServerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Fields  map[string]struct {
			Reason  string `json:"reason"`
			Message string `json:"message"`
		} `json:"fields"`
	} `json:"error"`
}

func (s *ServerSuite) createClient(trainer, first, last string) string {
	w := s.do(request{method: http.MethodPost, path: "/api/clients", trainer: trainer,
		body: map[string]string{"first_name": first, "last_name": last}})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		ID string `json:"id"`
	}
	s.decode(w, &out)
	return out.ID
}

func (s *ServerSuite) saveTemplate(trainer string) {
	w := s.do(request{method: http.MethodPut, path: "/api/template", trainer: trainer,
		body: map[string]any{"rows": []map[string]string{{"id": "w", "name": "weight"}, {"id": "h", "name": "height"}}}})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *ServerSuite) TestHealthAndReady() {
	w := s.do(request{method: http.MethodGet, path: "/health"})
	s.Assert().Equal(http.StatusOK, w.Code)

	w = s.do(request{method: http.MethodGet, path: "/ready"})
	s.Assert().Equal(http.StatusOK, w.Code)

	s.pingErr = stderrors.New("database is locked")
	w = s.do(request{method: http.MethodGet, path: "/ready"})
	s.Assert().Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *ServerSuite) TestMissingTrainerIsRejected() {
	w := s.do(request{method: http.MethodGet, path: "/api/clients", lang: "uk"})
	s.Require().Equal(http.StatusUnauthorized, w.Code)

	var out errorResponse
	s.decode(w, &out)
	s.Assert().Equal("NOT_AUTHENTICATED", out.Error.Code)
	s.Assert().Equal("Тренер не авторизований", out.Error.Message)
	s.Assert().Equal("uk", w.Header().Get("Content-Language"))
}

func (s *ServerSuite) TestClientsScopedToTrainer() {
	id := s.createClient("t1", "Olha", "Shevchenko")
	s.createClient("t2", "Ivan", "Koval")

	w := s.do(request{method: http.MethodGet, path: "/api/clients", trainer: "t1"})
	s.Require().Equal(http.StatusOK, w.Code)
	var list struct {
		Clients []struct {
			ID        string `json:"id"`
			FirstName string `json:"first_name"`
		} `json:"clients"`
	}
	s.decode(w, &list)
	s.Require().Len(list.Clients, 1)
	s.Assert().Equal("Olha", list.Clients[0].FirstName)

	w = s.do(request{method: http.MethodGet, path: "/api/clients/" + id, trainer: "t2"})
	s.Assert().Equal(http.StatusNotFound, w.Code)
}

func (s *ServerSuite) TestCreateClientValidation() {
	w := s.do(request{method: http.MethodPost, path: "/api/clients", trainer: "t1",
		body: map[string]string{"first_name": "  ", "last_name": "Koval"}})
	s.Require().Equal(http.StatusBadRequest, w.Code)

	var out errorResponse
	s.decode(w, &out)
	s.Assert().Equal("VALIDATION_ERROR", out.Error.Code)
	s.Assert().Equal("requiredField", out.Error.Fields["first_name"].Reason)
	s.Assert().Equal("This field is required", out.Error.Fields["first_name"].Message)
}

func (s *ServerSuite) TestEnterValuesUpsertsAndBuildsStatistics() {
	s.saveTemplate("t1")
	id := s.createClient("t1", "Olha", "Shevchenko")
	base := "/api/clients/" + id

	w := s.do(request{method: http.MethodPut, path: base + "/records/2024-03-01", trainer: "t1",
		body: map[string]any{"values": map[string]string{"w": "80,5", "h": "180"}}})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(request{method: http.MethodPut, path: base + "/records/2024-03-01", trainer: "t1",
		body: map[string]any{"values": map[string]string{"w": "80,5", "h": "180"}}})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var upsert struct {
		Created bool   `json:"created"`
		Message string `json:"message"`
	}
	s.decode(w, &upsert)
	s.Assert().False(upsert.Created)
	s.Assert().Equal("Values updated", upsert.Message)

	w = s.do(request{method: http.MethodPut, path: base + "/records/2024-03-08", trainer: "t1",
		body: map[string]any{"values": map[string]string{"w": "79", "h": "180"}}})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(request{method: http.MethodGet, path: base + "/records", trainer: "t1"})
	s.Require().Equal(http.StatusOK, w.Code)
	var records struct {
		Records []struct {
			Date string `json:"date"`
		} `json:"records"`
	}
	s.decode(w, &records)
	s.Require().Len(records.Records, 2)
	s.Assert().Equal("2024-03-01", records.Records[0].Date)

	w = s.do(request{method: http.MethodGet, path: base + "/records/2024-03-01", trainer: "t1"})
	s.Require().Equal(http.StatusOK, w.Code)
	var form struct {
		Inputs map[string]string `json:"inputs"`
	}
	s.decode(w, &form)
	s.Assert().Equal(map[string]string{"w": "80,5", "h": "180"}, form.Inputs)

	w = s.do(request{method: http.MethodGet, path: base + "/statistics", trainer: "t1"})
	s.Require().Equal(http.StatusOK, w.Code)
	var stats struct {
		State  string `json:"state"`
		Series []struct {
			MetricID string    `json:"metric_id"`
			Label    string    `json:"label"`
			Labels   []string  `json:"labels"`
			Points   []float64 `json:"points"`
		} `json:"series"`
	}
	s.decode(w, &stats)
	s.Assert().Equal("ready", stats.State)
	s.Require().Len(stats.Series, 2)
	s.Assert().Equal("Weight", stats.Series[0].Label)
	s.Assert().Equal([]string{"01.03", "08.03"}, stats.Series[0].Labels)
	s.Assert().Equal([]float64{80.5, 79}, stats.Series[0].Points)
}

func (s *ServerSuite) TestEnterValuesValidation() {
	s.saveTemplate("t1")
	id := s.createClient("t1", "Olha", "Shevchenko")

	w := s.do(request{method: http.MethodPut, path: "/api/clients/" + id + "/records/2024-03-01", trainer: "t1", lang: "uk",
		body: map[string]any{"values": map[string]string{"w": "abc"}}})
	s.Require().Equal(http.StatusBadRequest, w.Code)

	var out errorResponse
	s.decode(w, &out)
	s.Assert().Equal("invalidNumber", out.Error.Fields["w"].Reason)
	s.Assert().Equal("Некоректне число", out.Error.Fields["w"].Message)
	s.Assert().Equal("requiredField", out.Error.Fields["h"].Reason)

	w = s.do(request{method: http.MethodPut, path: "/api/clients/" + id + "/records/yesterday", trainer: "t1",
		body: map[string]any{"values": map[string]string{"w": "80", "h": "180"}}})
	s.Assert().Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerSuite) TestStatisticsWithoutTemplate() {
	id := s.createClient("t1", "Olha", "Shevchenko")

	w := s.do(request{method: http.MethodGet, path: "/api/clients/" + id + "/statistics", trainer: "t1"})
	s.Require().Equal(http.StatusOK, w.Code)
	var stats struct {
		State   string `json:"state"`
		Message string `json:"message"`
	}
	s.decode(w, &stats)
	s.Assert().Equal("no_template", stats.State)
	s.Assert().NotEmpty(stats.Message)
}

func (s *ServerSuite) TestStatisticsChart() {
	s.saveTemplate("t1")
	id := s.createClient("t1", "Olha", "Shevchenko")
	for _, d := range []string{"2024-03-01", "2024-03-08"} {
		w := s.do(request{method: http.MethodPut, path: "/api/clients/" + id + "/records/" + d, trainer: "t1",
			body: map[string]any{"values": map[string]string{"w": "80", "h": "180"}}})
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	w := s.do(request{method: http.MethodGet, path: "/api/clients/" + id + "/statistics/chart", trainer: "t1"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Assert().True(strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	s.Assert().Contains(w.Body.String(), "echarts")
	s.Assert().Contains(w.Body.String(), "01.03")
}

func (s *ServerSuite) TestSchedule() {
	id := s.createClient("t1", "Olha", "Shevchenko")

	w := s.do(request{method: http.MethodPost, path: "/api/schedule", trainer: "t1",
		body: map[string]string{"client_id": id, "date": "2024-03-04", "time": "09:30"}})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(request{method: http.MethodPost, path: "/api/schedule", trainer: "t1",
		body: map[string]string{"client_id": id, "date": "2024-03-04", "time": "25:00"}})
	s.Assert().Equal(http.StatusBadRequest, w.Code)

	w = s.do(request{method: http.MethodGet, path: "/api/schedule/2024-03-04", trainer: "t1"})
	s.Require().Equal(http.StatusOK, w.Code)
	var day struct {
		Appointments []struct {
			Time       string `json:"time"`
			ClientName string `json:"client_name"`
		} `json:"appointments"`
	}
	s.decode(w, &day)
	s.Require().Len(day.Appointments, 1)
	s.Assert().Equal("09:30", day.Appointments[0].Time)
	s.Assert().Equal("Olha Shevchenko", day.Appointments[0].ClientName)

	w = s.do(request{method: http.MethodGet, path: "/api/schedule/2024-03-05", trainer: "t1"})
	s.decode(w, &day)
	s.Assert().Empty(day.Appointments)
}

func (s *ServerSuite) TestLibrary() {
	w := s.do(request{method: http.MethodPost, path: "/api/folders", trainer: "t1", body: map[string]string{"name": "Legs"}})
	s.Require().Equal(http.StatusCreated, w.Code)
	var folder struct {
		ID string `json:"id"`
	}
	s.decode(w, &folder)

	w = s.do(request{method: http.MethodPost, path: "/api/folders/" + folder.ID + "/videos", trainer: "t1",
		body: map[string]string{"name": "Squat", "url": "https://cdn.example/squat.mp4"}})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(request{method: http.MethodGet, path: "/api/folders/" + folder.ID + "/videos", trainer: "t2"})
	s.Assert().Equal(http.StatusNotFound, w.Code)

	w = s.do(request{method: http.MethodGet, path: "/api/folders/" + folder.ID + "/videos", trainer: "t1"})
	s.Require().Equal(http.StatusOK, w.Code)
	var videos struct {
		Videos []struct {
			Name string `json:"name"`
		} `json:"videos"`
	}
	s.decode(w, &videos)
	s.Require().Len(videos.Videos, 1)
	s.Assert().Equal("Squat", videos.Videos[0].Name)
}

func (s *ServerSuite) TestSessionCookie() {
	w := s.do(request{method: http.MethodPost, path: "/api/session", body: map[string]string{"trainer_id": "t1"}})
	s.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	s.Require().NotEmpty(cookies)

	w = s.do(request{method: http.MethodPut, path: "/api/me", cookies: cookies, body: map[string]string{"username": "coach"}})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(request{method: http.MethodGet, path: "/api/me", cookies: cookies})
	s.Require().Equal(http.StatusOK, w.Code)
	var me struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	s.decode(w, &me)
	s.Assert().Equal("t1", me.ID)
	s.Assert().Equal("coach", me.Username)

	w = s.do(request{method: http.MethodDelete, path: "/api/session", cookies: cookies})
	s.Assert().Equal(http.StatusNoContent, w.Code)
}

func (s *ServerSuite) TestMetricsEndpoint() {
	s.do(request{method: http.MethodGet, path: "/api/clients", trainer: "t1"})

	w := s.do(request{method: http.MethodGet, path: "/metrics"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Assert().Contains(w.Body.String(), `trainerdesk_test_requests_total{method="GET",route="/api/clients",status="200"} 1`)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}
