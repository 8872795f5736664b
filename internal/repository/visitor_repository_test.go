package repository_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/nikolayk812/streamstick/internal/port"
	"github.com/nikolayk812/streamstick/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type visitorRepositorySuite struct {
	suite.Suite

	repo port.VisitorRepository
	pool *pgxpool.Pool
}

func TestVisitorRepositorySuite(t *testing.T) {
	suite.Run(t, new(visitorRepositorySuite))
}

func (suite *visitorRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewVisitors(suite.pool)
	suite.Require().NoError(err)
}

func (suite *visitorRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *visitorRepositorySuite) TestTrackVisit() {
	defer suite.deleteAll()

	tests := []struct {
		name  string
		visit domain.VisitorLog
	}{
		{
			name:  "all fields: ok",
			visit: randomVisit(),
		},
		{
			name:  "only page url: ok",
			visit: domain.VisitorLog{PageURL: "/"},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			defer suite.deleteAll()

			t := suite.T()
			ctx := t.Context()

			require.NoError(t, suite.repo.TrackVisit(ctx, tt.visit))

			visits, err := suite.repo.RecentVisits(ctx, 10)
			require.NoError(t, err)
			require.Len(t, visits, 1)

			assert.NotEqual(t, uuid.Nil, visits[0].ID)
			assert.WithinDuration(t, time.Now(), visits[0].VisitedAt, time.Minute)

			opts := cmpopts.IgnoreFields(domain.VisitorLog{}, "ID", "VisitedAt")
			assert.Empty(t, cmp.Diff(tt.visit, visits[0], opts))
		})
	}
}

func (suite *visitorRepositorySuite) TestRecentVisits() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	base := time.Now().UTC()
	for i := range 5 {
		_, err := suite.pool.Exec(ctx,
			"INSERT INTO visitor_logs (page_url, visited_at) VALUES ($1, $2)",
			"/page-"+string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	visits, err := suite.repo.RecentVisits(ctx, 3)
	require.NoError(t, err)
	require.Len(t, visits, 3)

	assert.Equal(t, "/page-e", visits[0].PageURL)
	assert.Equal(t, "/page-d", visits[1].PageURL)
	assert.Equal(t, "/page-c", visits[2].PageURL)

	_, err = suite.repo.RecentVisits(ctx, 0)
	require.EqualError(t, err, "limit[0] is not valid")
}

func (suite *visitorRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE visitor_logs")
	suite.NoError(err)
}

func randomVisit() domain.VisitorLog {
	return domain.VisitorLog{
		IPAddress:  gofakeit.IPv4Address(),
		UserAgent:  gofakeit.UserAgent(),
		PageURL:    "/" + gofakeit.Word(),
		Referrer:   gofakeit.URL(),
		Country:    gofakeit.Country(),
		City:       gofakeit.City(),
		DeviceType: "Desktop",
		Browser:    "Chrome",
	}
}
