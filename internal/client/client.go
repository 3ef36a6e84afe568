package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/data"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"

	"github.com/pkg/errors"
)

const (
	defaultAddress  string = "localhost"
	defaultPort     string = "8080"
	defaultProtocol string = "http"
	defaultTimeout  int64  = 5
)

// StatusError is returned when the backend answers with a status other
// than 200 or 201; Body is the response body as received.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d - %s", e.StatusCode, e.Body)
}

type Client interface {
	Address() string
	Probe(ctx context.Context) (statusCode, count int, err error)
	RecordCreate(ctx context.Context, route string, record data.Record) error
	EmployeeCreate(ctx context.Context, employee *data.Employee) error
	ReviewCycleCreate(ctx context.Context, reviewCycle *data.ReviewCycle) error
	GoalCreate(ctx context.Context, goal *data.Goal) error
	ReviewCreate(ctx context.Context, review *data.Review) error
	EmployeesRead(ctx context.Context) ([]*data.Employee, error)
	ReviewCyclesRead(ctx context.Context) ([]*data.ReviewCycle, error)
	GoalsRead(ctx context.Context) ([]*data.Goal, error)
	ReviewsRead(ctx context.Context) ([]*data.Review, error)
}

type client struct {
	sync.RWMutex
	config struct {
		protocol   string
		address    string
		port       string
		timeout    int64
		sslCaFile  string
		sslCrtFile string
		sslKeyFile string
	}
	address string
	logger  utilities.Logger
	*http.Client
}

func NewClient(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Client
} {
	c := &client{Client: &http.Client{}}
	c.config.address = defaultAddress
	c.config.port = defaultPort
	c.config.protocol = defaultProtocol
	c.config.timeout = defaultTimeout
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			c.logger = p
		}
	}
	return c
}

func (c *client) trace(ctx context.Context, format string, v ...any) {
	if c.logger != nil {
		c.logger.Trace(ctx, format, v...)
	}
}

func (c *client) doRequest(ctx context.Context, uri, method string, body []byte) (int, []byte, error) {
	var reader io.Reader

	if body != nil {
		reader = bytes.NewReader(body)
	}
	request, err := http.NewRequestWithContext(ctx, method, uri, reader)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if correlationId := internal.CorrelationIdFromCtx(ctx); correlationId != "" {
		request.Header.Set("Correlation-Id", correlationId)
	}
	c.trace(ctx, "%s %s", method, uri)
	response, err := c.Do(request)
	if err != nil {
		return 0, nil, err
	}
	defer response.Body.Close()
	bytes, err := io.ReadAll(response.Body)
	if err != nil {
		return response.StatusCode, nil, err
	}
	c.trace(ctx, "%s %s: %d", method, uri, response.StatusCode)
	return response.StatusCode, bytes, nil
}

func (c *client) readAll(ctx context.Context, route string, v any) error {
	statusCode, bytes, err := c.doRequest(ctx, c.address+route, http.MethodGet, nil)
	if err != nil {
		return err
	}
	if statusCode != http.StatusOK {
		return &StatusError{StatusCode: statusCode, Body: string(bytes)}
	}
	if err := json.Unmarshal(bytes, &data.Response{Data: v}); err != nil {
		return errors.Wrap(err, "unable to decode response")
	}
	return nil
}

func (c *client) Configure(envs map[string]string) error {
	if address, ok := envs["CLIENT_ADDRESS"]; ok && address != "" {
		c.config.address = address
	}
	if port, ok := envs["CLIENT_PORT"]; ok && port != "" {
		c.config.port = port
	}
	if protocol, ok := envs["CLIENT_PROTOCOL"]; ok && protocol != "" {
		c.config.protocol = protocol
	}
	if timeout, ok := envs["CLIENT_TIMEOUT"]; ok && timeout != "" {
		i, err := strconv.ParseInt(timeout, 10, 64)
		if err != nil {
			return errors.Wrap(err, "invalid CLIENT_TIMEOUT")
		}
		c.config.timeout = i
	}
	if sslCaFile, ok := envs["SSL_CA_FILE"]; ok {
		c.config.sslCaFile = sslCaFile
	}
	if sslKeyFile, ok := envs["SSL_KEY_FILE"]; ok {
		c.config.sslKeyFile = sslKeyFile
	}
	if sslCrtFile, ok := envs["SSL_CRT_FILE"]; ok {
		c.config.sslCrtFile = sslCrtFile
	}
	return nil
}

func (c *client) Open(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	switch c.config.protocol {
	default:
		return errors.Errorf("unsupported protocol: %s", c.config.protocol)
	case "http", "https":
		c.address = fmt.Sprintf("%s://%s", c.config.protocol,
			net.JoinHostPort(c.config.address, c.config.port))
	}
	c.Client.Timeout = time.Duration(c.config.timeout) * time.Second
	transport, err := getTransport(c.config.sslCaFile, c.config.sslCrtFile,
		c.config.sslKeyFile)
	if err != nil {
		return err
	}
	c.Client.Transport = transport
	return nil
}

func (c *client) Close(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	c.Client.CloseIdleConnections()
	return nil
}

// Address returns the base url the client was opened with.
func (c *client) Address() string {
	c.RLock()
	defer c.RUnlock()

	return c.address
}

// Probe only checks that the backend answers: any status is accepted as long
// as the body is json, and the status is returned alongside the number of
// employees listed. A missing or null data field counts as zero employees;
// a data field that isn't an array (string, object or number) fails the
// probe rather than having its length taken.
func (c *client) Probe(ctx context.Context) (int, int, error) {
	var response struct {
		Data []json.RawMessage `json:"data"`
	}

	statusCode, bytes, err := c.doRequest(ctx, c.address+data.RouteEmployeesRead,
		http.MethodGet, nil)
	if err != nil {
		return 0, 0, err
	}
	if err := json.Unmarshal(bytes, &response); err != nil {
		return statusCode, 0, errors.Wrap(err, "malformed response")
	}
	return statusCode, len(response.Data), nil
}

func (c *client) RecordCreate(ctx context.Context, route string, record data.Record) error {
	body, err := record.MarshalBinary()
	if err != nil {
		return err
	}
	statusCode, bytes, err := c.doRequest(ctx, c.address+route, http.MethodPost, body)
	if err != nil {
		return err
	}
	switch statusCode {
	default:
		return &StatusError{StatusCode: statusCode, Body: string(bytes)}
	case http.StatusOK, http.StatusCreated:
		return nil
	}
}

func (c *client) EmployeeCreate(ctx context.Context, employee *data.Employee) error {
	return c.RecordCreate(ctx, data.RouteEmployeeCreate, employee)
}

func (c *client) ReviewCycleCreate(ctx context.Context, reviewCycle *data.ReviewCycle) error {
	return c.RecordCreate(ctx, data.RouteReviewCycleCreate, reviewCycle)
}

func (c *client) GoalCreate(ctx context.Context, goal *data.Goal) error {
	return c.RecordCreate(ctx, data.RouteGoalCreate, goal)
}

func (c *client) ReviewCreate(ctx context.Context, review *data.Review) error {
	return c.RecordCreate(ctx, data.RouteReviewCreate, review)
}

func (c *client) EmployeesRead(ctx context.Context) ([]*data.Employee, error) {
	var employees []*data.Employee

	if err := c.readAll(ctx, data.RouteEmployeesRead, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *client) ReviewCyclesRead(ctx context.Context) ([]*data.ReviewCycle, error) {
	var reviewCycles []*data.ReviewCycle

	if err := c.readAll(ctx, data.RouteReviewCyclesRead, &reviewCycles); err != nil {
		return nil, err
	}
	return reviewCycles, nil
}

func (c *client) GoalsRead(ctx context.Context) ([]*data.Goal, error) {
	var goals []*data.Goal

	if err := c.readAll(ctx, data.RouteGoalsRead, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *client) ReviewsRead(ctx context.Context) ([]*data.Review, error) {
	var reviews []*data.Review

	if err := c.readAll(ctx, data.RouteReviewsRead, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
