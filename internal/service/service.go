package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/data"
	"github.com/antonio-alexander/go-employee-seeder/internal/logic"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

var errRequest = errors.New("malformed request")

type service struct {
	sync.RWMutex
	sync.WaitGroup
	config struct {
		address          string
		port             string
		shutdownTimeout  time.Duration
		allowedOrigins   []string
		allowedMethods   []string
		allowedHeaders   []string
		allowCredentials bool
		corsDisabled     bool
		corsDebug        bool
		timersEnabled    bool
	}
	ctx     context.Context
	cancel  context.CancelFunc
	router  *mux.Router
	handler http.Handler
	server  *http.Server
	logger  utilities.Logger
	timers  utilities.Timers
	logic.Logic
}

// NewService builds the routes immediately so the returned value can be
// used as an http.Handler without being opened.
func NewService(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	http.Handler
} {
	s := &service{router: mux.NewRouter()}
	s.config.port = "8080"
	s.config.shutdownTimeout = 10 * time.Second
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case logic.Logic:
			s.Logic = p
		case utilities.Timers:
			s.timers = p
		case utilities.Logger:
			s.logger = p
		}
	}
	s.buildRoutes()
	s.handler = s.router
	return s
}

func (s *service) info(ctx context.Context, format string, v ...any) {
	if s.logger != nil {
		s.logger.Info(ctx, format, v...)
	}
}

func (s *service) trace(ctx context.Context, format string, v ...any) {
	if s.logger != nil {
		s.logger.Trace(ctx, format, v...)
	}
}

// startTimer starts a timer for the group when timers are enabled, the returned
// function stops it.
func (s *service) startTimer(ctx context.Context, group string) func() {
	if !s.config.timersEnabled || s.timers == nil {
		return func() {}
	}
	index := s.timers.Start(group)
	return func() {
		elapsedTime := s.timers.Stop(group, index)
		s.trace(ctx, "%s took %v", group, time.Duration(elapsedTime))
	}
}

func (s *service) launchServer() error {
	started := make(chan struct{})
	chErr := make(chan error, 1)
	s.Add(1)
	go func() {
		defer s.WaitGroup.Done()
		defer close(chErr)

		close(started)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			chErr <- err
		}
	}()
	<-started
	select {
	case err := <-chErr:
		//KIM: here we're accounting for a situation where the server closes unexpectedly
		// but quickly (within a second of starting); this allows us to respond to errors such as
		// the port being already used
		return err
	case <-time.After(time.Second):
		s.info(s.ctx, "started server: %s", s.server.Addr)
		return nil
	}
}

func (s *service) endpointDefault(writer http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(writer,
		"employee management stub\n"+
			"Version: \"%s\"\n"+
			"Git Commit: \"%s\"\n"+
			"Git Branch: \"%s\"\n",
		data.Version, data.GitCommit, data.GitBranch)
}

func (s *service) endpointEmployeesRead(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(), getCorrelationId(request))
	defer s.startTimer(ctx, "employees_read")()
	employees, err := s.EmployeesRead(ctx)
	handleResponse(writer, http.StatusOK, err, "employees fetched", employees)
}

func (s *service) endpointEmployeeRegister(writer http.ResponseWriter, request *http.Request) {
	var employee data.Employee

	ctx := internal.CtxWithCorrelationId(request.Context(), getCorrelationId(request))
	defer s.startTimer(ctx, "employee_register")()
	if err := decodeRequest(request, &employee); err != nil {
		handleResponse(writer, 0, err, "", nil)
		return
	}
	registered, err := s.EmployeeRegister(ctx, &employee)
	handleResponse(writer, http.StatusCreated, err, "employee registered", registered)
	if err == nil {
		s.trace(ctx, "executed employee_register: %d", registered.Id)
	}
}

func (s *service) endpointReviewCyclesRead(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(), getCorrelationId(request))
	defer s.startTimer(ctx, "review_cycles_read")()
	reviewCycles, err := s.ReviewCyclesRead(ctx)
	handleResponse(writer, http.StatusOK, err, "review cycles fetched", reviewCycles)
}

func (s *service) endpointReviewCycleSave(writer http.ResponseWriter, request *http.Request) {
	var reviewCycle data.ReviewCycle

	ctx := internal.CtxWithCorrelationId(request.Context(), getCorrelationId(request))
	defer s.startTimer(ctx, "review_cycle_save")()
	if err := decodeRequest(request, &reviewCycle); err != nil {
		handleResponse(writer, 0, err, "", nil)
		return
	}
	saved, err := s.ReviewCycleSave(ctx, &reviewCycle)
	handleResponse(writer, http.StatusCreated, err, "review cycle saved", saved)
	if err == nil {
		s.trace(ctx, "executed review_cycle_save: %d", saved.Id)
	}
}

func (s *service) endpointGoalsRead(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(), getCorrelationId(request))
	defer s.startTimer(ctx, "goals_read")()
	goals, err := s.GoalsRead(ctx)
	handleResponse(writer, http.StatusOK, err, "goals fetched", goals)
}

func (s *service) endpointGoalSave(writer http.ResponseWriter, request *http.Request) {
	var goal data.Goal

	ctx := internal.CtxWithCorrelationId(request.Context(), getCorrelationId(request))
	defer s.startTimer(ctx, "goal_save")()
	if err := decodeRequest(request, &goal); err != nil {
		handleResponse(writer, 0, err, "", nil)
		return
	}
	saved, err := s.GoalSave(ctx, &goal)
	handleResponse(writer, http.StatusCreated, err, "goal saved", saved)
	if err == nil {
		s.trace(ctx, "executed goal_save: %d", saved.Id)
	}
}

func (s *service) endpointReviewsRead(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(), getCorrelationId(request))
	defer s.startTimer(ctx, "reviews_read")()
	reviews, err := s.ReviewsRead(ctx)
	handleResponse(writer, http.StatusOK, err, "reviews fetched", reviews)
}

func (s *service) endpointReviewSave(writer http.ResponseWriter, request *http.Request) {
	var review data.Review

	ctx := internal.CtxWithCorrelationId(request.Context(), getCorrelationId(request))
	defer s.startTimer(ctx, "review_save")()
	if err := decodeRequest(request, &review); err != nil {
		handleResponse(writer, 0, err, "", nil)
		return
	}
	saved, err := s.ReviewSave(ctx, &review)
	handleResponse(writer, http.StatusCreated, err, "review saved", saved)
	if err == nil {
		s.trace(ctx, "executed review_save: %d", saved.Id)
	}
}

func (s *service) buildRoutes() {
	s.router.HandleFunc("/", s.endpointDefault).Methods(http.MethodGet)
	s.router.HandleFunc(data.RouteEmployeesRead, s.endpointEmployeesRead).Methods(http.MethodGet)
	s.router.HandleFunc(data.RouteEmployeeCreate, s.endpointEmployeeRegister).Methods(http.MethodPost)
	s.router.HandleFunc(data.RouteReviewCyclesRead, s.endpointReviewCyclesRead).Methods(http.MethodGet)
	s.router.HandleFunc(data.RouteReviewCycleCreate, s.endpointReviewCycleSave).Methods(http.MethodPost)
	s.router.HandleFunc(data.RouteGoalsRead, s.endpointGoalsRead).Methods(http.MethodGet)
	s.router.HandleFunc(data.RouteGoalCreate, s.endpointGoalSave).Methods(http.MethodPost)
	s.router.HandleFunc(data.RouteReviewsRead, s.endpointReviewsRead).Methods(http.MethodGet)
	s.router.HandleFunc(data.RouteReviewCreate, s.endpointReviewSave).Methods(http.MethodPost)
}

func (s *service) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	s.RLock()
	handler := s.handler
	s.RUnlock()
	handler.ServeHTTP(writer, request)
}

func (s *service) Configure(envs map[string]string) error {
	s.Lock()
	defer s.Unlock()

	if address, ok := envs["SERVICE_ADDRESS"]; ok {
		s.config.address = address
	}
	if port, ok := envs["SERVICE_PORT"]; ok {
		s.config.port = port
	}
	if shutdownTimeoutString, ok := envs["SERVICE_SHUTDOWN_TIMEOUT"]; ok {
		if shutdownTimeoutInt, err := strconv.Atoi(shutdownTimeoutString); err == nil {
			if timeout := time.Duration(shutdownTimeoutInt) * time.Second; timeout > 0 {
				s.config.shutdownTimeout = timeout
			}
		}
	}
	if allowCredentialsString, ok := envs["SERVICE_CORS_ALLOW_CREDENTIALS"]; ok {
		if allowCredentials, err := strconv.ParseBool(allowCredentialsString); err == nil {
			s.config.allowCredentials = allowCredentials
		}
	}
	if allowedOrigins := envs["SERVICE_CORS_ALLOWED_ORIGINS"]; allowedOrigins != "" {
		s.config.allowedOrigins = strings.Split(allowedOrigins, ",")
	}
	if allowedMethods := envs["SERVICE_CORS_ALLOWED_METHODS"]; allowedMethods != "" {
		s.config.allowedMethods = strings.Split(allowedMethods, ",")
	}
	if allowedHeaders := envs["SERVICE_CORS_ALLOWED_HEADERS"]; allowedHeaders != "" {
		s.config.allowedHeaders = strings.Split(allowedHeaders, ",")
	}
	if corsDisabledString, ok := envs["SERVICE_CORS_DISABLED"]; ok {
		if corsDisabled, err := strconv.ParseBool(corsDisabledString); err == nil {
			s.config.corsDisabled = corsDisabled
		}
	}
	if corsDebug, ok := envs["SERVICE_CORS_DEBUG"]; ok {
		if corsDebug, err := strconv.ParseBool(corsDebug); err == nil {
			s.config.corsDebug = corsDebug
		}
	}
	if timersEnabled := envs["SERVICE_TIMERS_ENABLED"]; timersEnabled != "" {
		s.config.timersEnabled, _ = strconv.ParseBool(timersEnabled)
	}
	s.handler = s.router
	if !s.config.corsDisabled {
		s.handler = cors.New(cors.Options{
			AllowedOrigins:   s.config.allowedOrigins,
			AllowCredentials: s.config.allowCredentials,
			AllowedMethods:   s.config.allowedMethods,
			AllowedHeaders:   s.config.allowedHeaders,
			Debug:            s.config.corsDebug,
		}).Handler(s.router)
	}
	return nil
}

func (s *service) Open(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	if s.Logic == nil {
		return errors.New("logic not provided")
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.server = &http.Server{
		Addr:    net.JoinHostPort(s.config.address, s.config.port),
		Handler: s.handler,
	}
	return s.launchServer()
}

func (s *service) Close(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil && s.logger != nil {
		s.logger.Error(ctx, "error while shutting down the server: %s", err)
	}
	s.cancel()
	s.Wait()
	return nil
}
