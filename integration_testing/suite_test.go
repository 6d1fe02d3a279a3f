//go:build integration_test || all_tests

package integration_testing

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/2beens/fitcoach/internal"
	"github.com/2beens/fitcoach/internal/middleware"
	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/testinternals"
	testingpkg "github.com/2beens/fitcoach/pkg/testing"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/suite"
)

type IntegrationTestSuite struct {
	suite.Suite

	DB         *sql.DB
	dockerPool *dockertest.Pool
	server     *internal.Server
	redisAddr  string
	httpClient *http.Client
	teardown   []func()
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	fmt.Println("setting up test suite...")

	s.teardown = make([]func(), 0)
	s.httpClient = &http.Client{Timeout: 30 * time.Second}

	var err error
	s.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}
	if err = s.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	redisPort, err := s.redisSetup()
	if err != nil {
		s.cleanup()
		log.Fatalf("failed to setup redis: %s", err)
	}

	pgPort, err := s.postgresSetup()
	if err != nil {
		s.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}

	// the server pings redis once on start, make sure it is up
	s.redisAddr = net.JoinHostPort("localhost", redisPort)
	testingpkg.NewRedisClient(s.T(), s.redisAddr, "")

	if err := s.startServer(ctx, redisPort, pgPort); err != nil {
		s.cleanup()
		log.Fatalf("start server: %s", err)
	}

	s.Require().Eventually(func() bool {
		resp, err := s.httpClient.Get(serverEndpoint + "/unknown")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, 10*time.Second, 100*time.Millisecond)
	fmt.Println("server started")
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.cleanup()
}

func (s *IntegrationTestSuite) cleanup() {
	fmt.Println(" --> cleaning up test suite...")
	if s.server != nil {
		s.server.GracefulShutdown()
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			fmt.Printf(" --> test suite db close error: %s\n", err)
		}
	}
	for _, teardown := range s.teardown {
		teardown()
	}
	fmt.Println(" --> test suite cleanup done")
}

func (s *IntegrationTestSuite) do(method, path, deviceID string, body []byte) (*http.Response, []byte) {
	req, err := http.NewRequest(method, serverEndpoint+path, bytes.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if deviceID != "" {
		req.Header.Set(middleware.DeviceIDHeader, deviceID)
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, respBody
}

func (s *IntegrationTestSuite) remoteCount(userID string) int {
	var count int
	err := s.DB.QueryRow("SELECT count(*) FROM fitness_plans WHERE user_id = $1", userID).Scan(&count)
	s.Require().NoError(err)
	return count
}

func (s *IntegrationTestSuite) TestGenerateSaveAndHistory() {
	const deviceID = "it-device-1"

	profileJSON, err := json.Marshal(testinternals.Alex())
	s.Require().NoError(err)

	resp, body := s.do(http.MethodPost, "/generate-plan", "", profileJSON)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var generated plan.GeneratedPlan
	s.Require().NoError(json.Unmarshal(body, &generated))
	s.Len(generated.WorkoutPlan, 2)
	s.Require().NotNil(generated.UserProfile)
	s.Equal("Alex", generated.UserProfile.Name)
	s.False(generated.GeneratedAt.IsZero())

	resp, body = s.do(http.MethodPost, "/plans", deviceID, body)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	s.Equal(deviceID, resp.Header.Get(middleware.DeviceIDHeader))

	var saved struct {
		Item     plan.HistoryItem `json:"item"`
		Degraded bool             `json:"degraded"`
	}
	s.Require().NoError(json.Unmarshal(body, &saved))
	s.False(saved.Degraded)
	s.NotEmpty(saved.Item.ID)
	s.Equal(1, s.remoteCount(deviceID))

	rdb := testingpkg.NewRedisClient(s.T(), s.redisAddr, "")
	exists, err := rdb.Exists(context.Background(), "device::"+deviceID+"::currentPlan").Result()
	s.Require().NoError(err)
	s.Equal(int64(1), exists)

	resp, body = s.do(http.MethodGet, "/plans/current/stats", deviceID, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.JSONEq(`{
		"stats": {"totalWorkoutDays":2,"totalExercises":3,"totalDietDays":2,"totalMeals":3,"averageCaloriesPerDay":1751,"totalTips":4},
		"summary": "2 workout days, 3 exercises, 2 diet days, 3 meals"
	}`, string(body))

	resp, body = s.do(http.MethodGet, "/plans/history", deviceID, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var history struct {
		Items    []plan.HistoryItem `json:"items"`
		Source   string             `json:"source"`
		Degraded bool               `json:"degraded"`
	}
	s.Require().NoError(json.Unmarshal(body, &history))
	s.Equal("remote", history.Source)
	s.False(history.Degraded)
	s.Require().Len(history.Items, 1)
	remoteID := history.Items[0].ID
	_, err = strconv.ParseInt(remoteID, 10, 64)
	s.NoError(err, "remote ids are decimal row ids")

	resp, body = s.do(http.MethodDelete, "/plans/history/"+remoteID, deviceID, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	s.JSONEq(fmt.Sprintf(`{"deleted":%q,"degraded":false}`, remoteID), string(body))
	s.Equal(0, s.remoteCount(deviceID))
}

func (s *IntegrationTestSuite) TestDevicesAreIsolated() {
	resp, body := s.do(http.MethodPost, "/plans", "it-device-a", []byte(testinternals.SamplePlanJSON))
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = s.do(http.MethodGet, "/plans/current", "it-device-a", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/plans/current", "it-device-b", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(http.MethodDelete, "/plans", "it-device-a", nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/plans/current", "it-device-a", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	// clearing only forgets the local tier
	s.Equal(1, s.remoteCount("it-device-a"))
}

func (s *IntegrationTestSuite) TestMintsDeviceID() {
	resp, body := s.do(http.MethodGet, "/plans/history", "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	s.Regexp(`^user_\d+_[0-9a-z]{9}$`, resp.Header.Get(middleware.DeviceIDHeader))

	resp, _ = s.do(http.MethodGet, "/plans/history", "bad id!", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestExportPDF() {
	resp, body := s.do(http.MethodPost, "/export/pdf", "", []byte(testinternals.SamplePlanJSON))
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/pdf", resp.Header.Get("Content-Type"))
	s.True(bytes.HasPrefix(body, []byte("%PDF")))
}
