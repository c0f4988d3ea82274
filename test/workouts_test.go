//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/gymlog/internal/client"
	pkgtesting "github.com/2beens/gymlog/pkg/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) SetupTest() {
	_, err := s.dbPool.Exec(context.Background(), "DELETE FROM workout")
	require.NoError(s.T(), err)
	// fresh rate limiter counters
	pkgtesting.GetRedisClientAndCtx(s.T(), s.redisAddr, "")
}

func (s *IntegrationTestSuite) postWorkout(body string) (int, string) {
	req, err := http.NewRequest(http.MethodPost, serverEndpoint+"/api/workouts", bytes.NewBufferString(body))
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, string(respBytes)
}

func (s *IntegrationTestSuite) TestWorkouts_AddListStats() {
	t := s.T()
	today := time.Now().Format("2006-01-02")

	status, body := s.postWorkout(`{"date":"` + today + `","exercise":"Bench","sets":[{"reps":5,"weight":100},{"reps":3,"weight":120}],"duration":null}`)
	require.Equal(t, http.StatusCreated, status, body)
	assert.JSONEq(t, `{"ok":true}`, body)

	status, body = s.postWorkout(`{"date":"` + today + `","exercise":"Run","sets":null,"duration":25}`)
	require.Equal(t, http.StatusCreated, status, body)

	c := client.New(serverEndpoint, 5*time.Second)
	ctx := context.Background()

	list, err := c.Workouts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bench", list[0].Exercise)
	assert.Equal(t, "Run", list[1].Exercise)
	d, ok := list[1].Duration.Get()
	assert.True(t, ok)
	assert.Equal(t, 25, d)

	snapshot, err := c.Stats(ctx)
	require.NoError(t, err)
	require.NotNil(t, snapshot.WeeklyVolume)
	assert.Equal(t, 860.0, *snapshot.WeeklyVolume)
	assert.Equal(t, 860.0, *snapshot.MonthlyVolume)
	// max(100*(1+5/30), 120*(1+3/30)) = 132
	assert.Equal(t, map[string]float64{"Bench": 132}, snapshot.BestOneRm)
	assert.Equal(t, []client.Daily{{Date: today, Volume: 860}}, snapshot.DailyVolumes)
}

func (s *IntegrationTestSuite) TestWorkouts_Validation() {
	t := s.T()

	status, body := s.postWorkout(`{"exercise":"Bench","sets":[{"reps":5,"weight":100}]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"date is required"}`, body)

	status, body = s.postWorkout(`not json`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Body missing"}`, body)

	err := client.New(serverEndpoint, 5*time.Second).CreateWorkout(context.Background(), client.NewWorkout{
		Date:     "2025-03-01",
		Exercise: "Bench",
		Sets:     []client.Set{{Reps: 0, Weight: 100}},
	})
	apiErr, ok := client.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "reps must be > 0", apiErr.Message)
}

func (s *IntegrationTestSuite) TestWorkouts_PostRateLimited() {
	t := s.T()

	for i := 0; i < postLimitMin; i++ {
		status, body := s.postWorkout(`{"date":"2025-03-01","exercise":"Row","sets":[{"reps":10,"weight":50}]}`)
		require.Equal(t, http.StatusCreated, status, body)
	}

	status, body := s.postWorkout(`{"date":"2025-03-01","exercise":"Row","sets":[{"reps":10,"weight":50}]}`)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Contains(t, body, "retry after")

	// reads are not limited
	resp, err := s.httpClient.Get(serverEndpoint + "/api/workouts")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list []json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, postLimitMin)
}

func (s *IntegrationTestSuite) TestPage_RendersStoredWorkouts() {
	t := s.T()

	status, body := s.postWorkout(`{"date":"2025-03-01","exercise":"<i>Squat</i>","sets":[{"reps":5,"weight":140}]}`)
	require.Equal(t, http.StatusCreated, status, body)

	resp, err := s.httpClient.Get(serverEndpoint + "/?w=500&h=200")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "&lt;i&gt;Squat&lt;/i&gt;")
	assert.Contains(t, string(page), "<td>5x140</td>")
	assert.Contains(t, string(page), `name="gorilla.csrf.Token"`)
	assert.Contains(t, string(page), `<svg id="chart" width="500" height="200"`)
}

func (s *IntegrationTestSuite) TestMetricsEndpoint() {
	t := s.T()

	resp, err := s.httpClient.Get("http://" + serverHost + ":9001/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	metricsBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(metricsBody), "gymlog_service_"))
	assert.True(t, strings.Contains(string(metricsBody), "pgxpool_"))
}
