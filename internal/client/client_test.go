package client_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/client"
	"github.com/antonio-alexander/go-employee-seeder/internal/data"
	"github.com/antonio-alexander/go-employee-seeder/internal/logic"
	"github.com/antonio-alexander/go-employee-seeder/internal/service"
	"github.com/antonio-alexander/go-employee-seeder/internal/store"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var envs = map[string]string{
	//client
	"CLIENT_PROTOCOL": "http",
	"CLIENT_TIMEOUT":  "5",
	"SSL_CA_FILE":     "",
	"SSL_KEY_FILE":    "",
	"SSL_CRT_FILE":    "",

	//logic
	"LOGIC_BCRYPT_COST": "4",
}

func init() {
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
}

func newClient(t *testing.T, rawUrl string) interface {
	internal.Configurer
	internal.Opener
	client.Client
} {
	u, err := url.Parse(rawUrl)
	assert.Nil(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	assert.Nil(t, err)
	clientEnvs := make(map[string]string)
	for key, value := range envs {
		clientEnvs[key] = value
	}
	clientEnvs["CLIENT_ADDRESS"], clientEnvs["CLIENT_PORT"] = host, port
	c := client.NewClient(utilities.NewLogger())
	if !assert.Nil(t, c.Configure(clientEnvs)) || !assert.Nil(t, c.Open(context.TODO())) {
		assert.FailNow(t, "unable to open client")
	}
	t.Cleanup(func() { _ = c.Close(context.TODO()) })
	return c
}

// newBackend starts the stub backend with an empty memory store
func newBackend(t *testing.T) *httptest.Server {
	ctx := context.TODO()
	s := store.NewMemory()
	l := logic.NewLogic(s)
	svc := service.NewService(l)
	assert.Nil(t, s.Configure(envs))
	assert.Nil(t, s.Open(ctx))
	assert.Nil(t, l.Configure(envs))
	assert.Nil(t, l.Open(ctx))
	assert.Nil(t, svc.Configure(envs))
	server := httptest.NewServer(svc)
	t.Cleanup(server.Close)
	return server
}

// newStatusBackend answers every request on route with statusCode and body
func newStatusBackend(t *testing.T, method, route string, statusCode int, body string) *httptest.Server {
	router := mux.NewRouter()
	router.HandleFunc(route, func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(statusCode)
		_, _ = writer.Write([]byte(body))
	}).Methods(method)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestCreate(t *testing.T) {
	ctx := context.TODO()
	c := newClient(t, newBackend(t).URL)

	err := c.EmployeeCreate(ctx, &data.Employee{
		EmpCode:   "EM001",
		FirstName: "Rajesh",
		LastName:  "Kumar",
		Email:     "rajesh.kumar@company.com",
		Password:  "Password@123",
	})
	assert.Nil(t, err)
	err = c.ReviewCycleCreate(ctx, &data.ReviewCycle{
		CycleName: "Q1 2025 Performance Review",
		Status:    data.CycleStatusInProgress,
	})
	assert.Nil(t, err)
	err = c.GoalCreate(ctx, &data.Goal{Title: "Sales Target Q1", EmpId: 3})
	assert.Nil(t, err)
	err = c.ReviewCreate(ctx, &data.Review{EmpName: "Amit Patel", Rating: 4})
	assert.Nil(t, err)

	employees, err := c.EmployeesRead(ctx)
	assert.Nil(t, err)
	if assert.Len(t, employees, 1) {
		assert.Equal(t, "EM001", employees[0].EmpCode)
		assert.Empty(t, employees[0].Password)
	}
	reviewCycles, err := c.ReviewCyclesRead(ctx)
	assert.Nil(t, err)
	assert.Len(t, reviewCycles, 1)
	goals, err := c.GoalsRead(ctx)
	assert.Nil(t, err)
	assert.Len(t, goals, 1)
	reviews, err := c.ReviewsRead(ctx)
	assert.Nil(t, err)
	if assert.Len(t, reviews, 1) {
		assert.Equal(t, 4.0, reviews[0].Rating)
	}

	statusCode, count, err := c.Probe(ctx)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, 1, count)
}

func TestCreateStatus(t *testing.T) {
	ctx := context.TODO()
	cases := map[string]struct {
		statusCode int
		body       string
		success    bool
	}{
		"ok":           {http.StatusOK, `{"message":"saved"}`, true},
		"created":      {http.StatusCreated, `{"message":"saved"}`, true},
		"bad_request":  {http.StatusBadRequest, `{"message":"email is required"}`, false},
		"server_error": {http.StatusInternalServerError, "internal error", false},
		"no_content":   {http.StatusNoContent, "", false},
	}
	for cDesc, c := range cases {
		t.Run(cDesc, func(t *testing.T) {
			server := newStatusBackend(t, http.MethodPost, data.RouteGoalCreate,
				c.statusCode, c.body)
			err := newClient(t, server.URL).GoalCreate(ctx, &data.Goal{Title: "Sales Target Q1"})
			if c.success {
				assert.Nil(t, err)
				return
			}
			var statusError *client.StatusError
			if assert.True(t, errors.As(err, &statusError)) {
				assert.Equal(t, c.statusCode, statusError.StatusCode)
				assert.Equal(t, c.body, statusError.Body)
			}
		})
	}
}

func TestCreateUnreachable(t *testing.T) {
	server := newStatusBackend(t, http.MethodPost, data.RouteReviewCreate,
		http.StatusCreated, "")
	c := newClient(t, server.URL)
	server.Close()

	err := c.ReviewCreate(context.TODO(), &data.Review{EmpName: "Amit Patel"})
	assert.NotNil(t, err)
	var statusError *client.StatusError
	assert.False(t, errors.As(err, &statusError))
}

func TestProbe(t *testing.T) {
	ctx := context.TODO()
	cases := map[string]struct {
		statusCode int
		body       string
		count      int
		success    bool
	}{
		"empty":       {http.StatusOK, `{"data":[]}`, 0, true},
		"populated":   {http.StatusOK, `{"data":[{"id":1},{"id":2},{"id":3}]}`, 3, true},
		"no_data":     {http.StatusOK, `{"message":"ok"}`, 0, true},
		"null_data":   {http.StatusOK, `{"data":null}`, 0, true},
		"error_json":  {http.StatusInternalServerError, `{"message":"db down","data":[{}]}`, 1, true},
		"not_found":   {http.StatusNotFound, `{}`, 0, true},
		"malformed":   {http.StatusOK, "<html></html>", 0, false},
		"not_array":   {http.StatusOK, `{"data":"employees"}`, 0, false},
		"object_data": {http.StatusOK, `{"data":{"id":1}}`, 0, false},
		"empty_body":  {http.StatusBadGateway, "", 0, false},
	}
	for cDesc, c := range cases {
		t.Run(cDesc, func(t *testing.T) {
			server := newStatusBackend(t, http.MethodGet, data.RouteEmployeesRead,
				c.statusCode, c.body)
			statusCode, count, err := newClient(t, server.URL).Probe(ctx)
			if !c.success {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, c.statusCode, statusCode)
			assert.Equal(t, c.count, count)
		})
	}
}

func TestProbeUnreachable(t *testing.T) {
	server := newStatusBackend(t, http.MethodGet, data.RouteEmployeesRead,
		http.StatusOK, `{"data":[]}`)
	c := newClient(t, server.URL)
	server.Close()

	_, _, err := c.Probe(context.TODO())
	assert.NotNil(t, err)
}

func TestReadStatus(t *testing.T) {
	server := newStatusBackend(t, http.MethodGet, data.RouteGoalsRead,
		http.StatusInternalServerError, "unable to read goals")

	goals, err := newClient(t, server.URL).GoalsRead(context.TODO())
	assert.Nil(t, goals)
	var statusError *client.StatusError
	if assert.True(t, errors.As(err, &statusError)) {
		assert.Equal(t, http.StatusInternalServerError, statusError.StatusCode)
	}
}

func TestOpen(t *testing.T) {
	c := client.NewClient()
	assert.Nil(t, c.Configure(map[string]string{
		"CLIENT_ADDRESS":  "backend",
		"CLIENT_PORT":     "9090",
		"CLIENT_PROTOCOL": "http",
	}))
	assert.Nil(t, c.Open(context.TODO()))
	assert.Equal(t, "http://backend:9090", c.Address())

	c = client.NewClient()
	assert.Nil(t, c.Configure(map[string]string{"CLIENT_PROTOCOL": "ftp"}))
	assert.NotNil(t, c.Open(context.TODO()))

	c = client.NewClient()
	assert.NotNil(t, c.Configure(map[string]string{"CLIENT_TIMEOUT": "soon"}))
}
