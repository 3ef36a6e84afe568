package seeder

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/client"
	"github.com/antonio-alexander/go-employee-seeder/internal/data"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"

	"github.com/pkg/errors"
)

const (
	PhaseEmployees    string = "employees"
	PhaseReviewCycles string = "review_cycles"
	PhaseGoals        string = "goals"
	PhaseReviews      string = "reviews"
)

const defaultPacing = 500 * time.Millisecond

var ErrBackendUnreachable = errors.New("backend unreachable")

type Seeder interface {
	Seed(ctx context.Context) (*data.Summary, error)
}

type phase struct {
	name    string
	title   string
	route   string
	records []data.Record
}

type seeder struct {
	config struct {
		pacing time.Duration
	}
	client  client.Client
	logger  utilities.Logger
	counter utilities.Counter
	timers  utilities.Timers
	writer  io.Writer
	phases  []phase
}

func toRecords[R data.Record](items []R) []data.Record {
	records := make([]data.Record, 0, len(items))
	for _, item := range items {
		records = append(records, item)
	}
	return records
}

// NewSeeder needs a client.Client; progress is written to stdout unless an
// io.Writer is provided.
func NewSeeder(parameters ...any) interface {
	internal.Configurer
	Seeder
} {
	s := &seeder{
		counter: utilities.NewCounter(),
		timers:  utilities.NewTimers(),
		writer:  os.Stdout,
		phases: []phase{
			{
				name:    PhaseEmployees,
				title:   "Employees",
				route:   data.RouteEmployeeCreate,
				records: toRecords(Employees()),
			},
			{
				name:    PhaseReviewCycles,
				title:   "Review Cycles",
				route:   data.RouteReviewCycleCreate,
				records: toRecords(ReviewCycles()),
			},
			{
				name:    PhaseGoals,
				title:   "Goals",
				route:   data.RouteGoalCreate,
				records: toRecords(Goals()),
			},
			{
				name:    PhaseReviews,
				title:   "Reviews",
				route:   data.RouteReviewCreate,
				records: toRecords(Reviews()),
			},
		},
	}
	s.config.pacing = defaultPacing
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case client.Client:
			s.client = p
		case utilities.Logger:
			s.logger = p
		case io.Writer:
			s.writer = p
		}
	}
	return s
}

func (s *seeder) printf(format string, v ...any) {
	fmt.Fprintf(s.writer, format, v...)
}

func (s *seeder) logDebug(ctx context.Context, format string, v ...any) {
	if s.logger != nil {
		s.logger.Debug(ctx, format, v...)
	}
}

func (s *seeder) logError(ctx context.Context, format string, v ...any) {
	if s.logger != nil {
		s.logger.Error(ctx, format, v...)
	}
}

// pause waits out the pacing interval; it returns false if the context was
// cancelled first.
func (s *seeder) pause(ctx context.Context) bool {
	if s.config.pacing <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(s.config.pacing)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (s *seeder) probe(ctx context.Context) error {
	s.printf("\ntesting backend connection...\n")
	statusCode, count, err := s.client.Probe(ctx)
	if err != nil {
		s.printf("backend connection failed: %s\n", err)
		s.printf("\nmake sure your backend is running on %s\n", s.client.Address())
		return errors.Wrap(ErrBackendUnreachable, err.Error())
	}
	s.printf("backend is running (status: %d)\n", statusCode)
	s.printf("   current employees: %d\n", count)
	return nil
}

// create submits a single record; every failure is printed but never
// returned.
func (s *seeder) create(ctx context.Context, p phase, record data.Record) bool {
	var statusError *client.StatusError

	index := s.timers.Start(p.name)
	err := s.client.RecordCreate(ctx, p.route, record)
	elapsed := time.Duration(s.timers.Stop(p.name, index))
	if err != nil {
		switch {
		default:
			s.printf("  error: %s\n", err)
		case errors.As(err, &statusError):
			s.printf("  failed: %d - %s\n", statusError.StatusCode, statusError.Body)
		}
		s.logError(ctx, "unable to create %s record (%s): %s", p.name, record.Label(), err)
		return false
	}
	s.printf("  created: %s\n", record.Label())
	s.logDebug(ctx, "created %s record (%s) in %v", p.name, record.Label(), elapsed)
	return true
}

func (s *seeder) summarize() *data.Summary {
	employees, _ := s.counter.Read(PhaseEmployees)
	reviewCycles, _ := s.counter.Read(PhaseReviewCycles)
	goals, _ := s.counter.Read(PhaseGoals)
	reviews, _ := s.counter.Read(PhaseReviews)
	return &data.Summary{
		Employees:    employees,
		ReviewCycles: reviewCycles,
		Goals:        goals,
		Reviews:      reviews,
		Counters:     s.counter.ReadAll(),
		Timers:       s.timers.ReadAll(),
	}
}

func (s *seeder) report(summary *data.Summary) {
	s.printf("\n%s\n", strings.Repeat("=", 60))
	s.printf("DATA SEEDING COMPLETE\n")
	s.printf("%s\n", strings.Repeat("=", 60))
	s.printf("\nsummary:\n")
	s.printf("   employees created: %d\n", summary.Employees)
	s.printf("   review cycles created: %d\n", summary.ReviewCycles)
	s.printf("   goals created: %d\n", summary.Goals)
	s.printf("   reviews created: %d\n", summary.Reviews)
}

func (s *seeder) Configure(envs map[string]string) error {
	if pacing, ok := envs["SEEDER_PACING_MS"]; ok && pacing != "" {
		i, err := strconv.Atoi(pacing)
		if err != nil {
			return errors.Wrap(err, "invalid SEEDER_PACING_MS")
		}
		s.config.pacing = time.Duration(i) * time.Millisecond
	}
	return nil
}

// Seed probes the backend and then runs every phase in order, regardless of
// how the previous phases went. An error is only returned when the probe
// fails, in which case nothing is written.
func (s *seeder) Seed(ctx context.Context) (*data.Summary, error) {
	if s.client == nil {
		return nil, errors.New("client not provided")
	}
	if internal.CorrelationIdFromCtx(ctx) == "" {
		ctx = internal.CtxWithCorrelationId(ctx, "seed_"+internal.GenerateId())
	}
	s.counter.Reset()
	s.timers.Clear()
	s.printf("%s\n", strings.Repeat("=", 60))
	s.printf("EMPLOYEE MANAGEMENT TEST DATA SEEDER\n")
	s.printf("%s\n", strings.Repeat("=", 60))
	if err := s.probe(ctx); err != nil {
		return nil, err
	}

phases:
	for i, p := range s.phases {
		s.printf("\nSTEP %d: Creating %s...\n\n", i+1, p.title)
		for _, record := range p.records {
			if s.create(ctx, p, record) {
				s.counter.IncrementSuccess(p.name)
			} else {
				s.counter.IncrementFailure(p.name)
			}
			if !s.pause(ctx) {
				s.logError(ctx, "seeding interrupted during %s: %s", p.name, ctx.Err())
				break phases
			}
		}
	}
	summary := s.summarize()
	s.report(summary)
	return summary, nil
}
