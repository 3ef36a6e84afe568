package logic

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/data"
	"github.com/antonio-alexander/go-employee-seeder/internal/store"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	CollectionEmployees    string = "employees"
	CollectionReviewCycles string = "review_cycles"
	CollectionGoals        string = "goals"
	CollectionReviews      string = "reviews"
)

var (
	ErrInvalid          = errors.New("invalid record")
	ErrConflict         = errors.New("record already exists")
	ErrMutationDisabled = errors.New("mutation disabled")
)

type Logic interface {
	EmployeeRegister(ctx context.Context, employee *data.Employee) (*data.Employee, error)
	EmployeesRead(ctx context.Context) ([]*data.Employee, error)
	ReviewCycleSave(ctx context.Context, reviewCycle *data.ReviewCycle) (*data.ReviewCycle, error)
	ReviewCyclesRead(ctx context.Context) ([]*data.ReviewCycle, error)
	GoalSave(ctx context.Context, goal *data.Goal) (*data.Goal, error)
	GoalsRead(ctx context.Context) ([]*data.Goal, error)
	ReviewSave(ctx context.Context, review *data.Review) (*data.Review, error)
	ReviewsRead(ctx context.Context) ([]*data.Review, error)
}

type logic struct {
	sync.Mutex
	store  store.Store
	logger utilities.Logger
	config struct {
		mutateDisabled bool
		bcryptCost     int
	}
}

func NewLogic(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Logic
} {
	l := &logic{}
	l.config.bcryptCost = bcrypt.DefaultCost
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case store.Store:
			l.store = p
		case utilities.Logger:
			l.logger = p
		}
	}
	return l
}

func recordsRead[T any, P interface {
	*T
	data.Record
}](ctx context.Context, s store.Store, collection string) ([]*T, error) {
	items, err := s.RecordsRead(ctx, collection)
	if err != nil {
		return nil, err
	}
	records := make([]*T, 0, len(items))
	for _, item := range items {
		record := P(new(T))
		if err := record.UnmarshalBinary(item); err != nil {
			return nil, errors.Wrapf(err, "unable to decode %s record", collection)
		}
		records = append(records, (*T)(record))
	}
	return records, nil
}

func (l *logic) trace(ctx context.Context, format string, v ...any) {
	if l.logger != nil {
		l.logger.Trace(ctx, format, v...)
	}
}

func (l *logic) recordWrite(ctx context.Context, collection string, id int64, record data.Record) error {
	bytes, err := record.MarshalBinary()
	if err != nil {
		return err
	}
	if err := l.store.RecordWrite(ctx, collection, id, bytes); err != nil {
		return err
	}
	l.trace(ctx, "saved %s record: %d", collection, id)
	return nil
}

func (l *logic) Configure(envs map[string]string) error {
	l.Lock()
	defer l.Unlock()

	if mutateDisabled, ok := envs["LOGIC_MUTATE_DISABLED"]; ok {
		l.config.mutateDisabled, _ = strconv.ParseBool(mutateDisabled)
	}
	if s := envs["LOGIC_BCRYPT_COST"]; s != "" {
		bcryptCost, err := strconv.Atoi(s)
		if err != nil {
			return errors.Wrap(err, "invalid LOGIC_BCRYPT_COST")
		}
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return errors.Errorf("LOGIC_BCRYPT_COST out of range: %d", bcryptCost)
		}
		l.config.bcryptCost = bcryptCost
	}
	return nil
}

func (l *logic) Open(ctx context.Context) error {
	if l.store == nil {
		return errors.New("store not provided")
	}
	return nil
}

func (l *logic) Close(ctx context.Context) error {
	return nil
}

func (l *logic) EmployeeRegister(ctx context.Context, employee *data.Employee) (*data.Employee, error) {
	l.Lock()
	defer l.Unlock()

	if l.config.mutateDisabled {
		return nil, ErrMutationDisabled
	}
	switch {
	case strings.TrimSpace(employee.EmpCode) == "":
		return nil, errors.Wrap(ErrInvalid, "emp_code is required")
	case strings.TrimSpace(employee.FirstName) == "":
		return nil, errors.Wrap(ErrInvalid, "first_name is required")
	case strings.TrimSpace(employee.Email) == "":
		return nil, errors.Wrap(ErrInvalid, "email is required")
	}
	employees, err := recordsRead[data.Employee](ctx, l.store, CollectionEmployees)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		if strings.EqualFold(e.EmpCode, employee.EmpCode) {
			return nil, errors.Wrapf(ErrConflict, "emp_code %s", employee.EmpCode)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(employee.Password), l.config.bcryptCost)
	if err != nil {
		return nil, err
	}
	id, err := l.store.NextId(ctx, CollectionEmployees)
	if err != nil {
		return nil, err
	}
	registered := *employee
	registered.Id, registered.Password = id, string(hash)
	if err := l.recordWrite(ctx, CollectionEmployees, id, &registered); err != nil {
		return nil, err
	}
	registered.Password = ""
	return &registered, nil
}

// EmployeesRead never returns the stored password hashes.
func (l *logic) EmployeesRead(ctx context.Context) ([]*data.Employee, error) {
	employees, err := recordsRead[data.Employee](ctx, l.store, CollectionEmployees)
	if err != nil {
		return nil, err
	}
	for _, employee := range employees {
		employee.Password = ""
	}
	return employees, nil
}

func (l *logic) ReviewCycleSave(ctx context.Context, reviewCycle *data.ReviewCycle) (*data.ReviewCycle, error) {
	l.Lock()
	defer l.Unlock()

	if l.config.mutateDisabled {
		return nil, ErrMutationDisabled
	}
	if strings.TrimSpace(reviewCycle.CycleName) == "" {
		return nil, errors.Wrap(ErrInvalid, "cycle_name is required")
	}
	id, err := l.store.NextId(ctx, CollectionReviewCycles)
	if err != nil {
		return nil, err
	}
	saved := *reviewCycle
	saved.Id = id
	if err := l.recordWrite(ctx, CollectionReviewCycles, id, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (l *logic) ReviewCyclesRead(ctx context.Context) ([]*data.ReviewCycle, error) {
	return recordsRead[data.ReviewCycle](ctx, l.store, CollectionReviewCycles)
}

func (l *logic) GoalSave(ctx context.Context, goal *data.Goal) (*data.Goal, error) {
	l.Lock()
	defer l.Unlock()

	if l.config.mutateDisabled {
		return nil, ErrMutationDisabled
	}
	if strings.TrimSpace(goal.Title) == "" {
		return nil, errors.Wrap(ErrInvalid, "title is required")
	}
	id, err := l.store.NextId(ctx, CollectionGoals)
	if err != nil {
		return nil, err
	}
	saved := *goal
	saved.Id = id
	if err := l.recordWrite(ctx, CollectionGoals, id, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (l *logic) GoalsRead(ctx context.Context) ([]*data.Goal, error) {
	return recordsRead[data.Goal](ctx, l.store, CollectionGoals)
}

func (l *logic) ReviewSave(ctx context.Context, review *data.Review) (*data.Review, error) {
	l.Lock()
	defer l.Unlock()

	if l.config.mutateDisabled {
		return nil, ErrMutationDisabled
	}
	if review.Rating < data.RatingMin || review.Rating > data.RatingMax {
		return nil, errors.Wrapf(ErrInvalid, "rating %v not within [%v, %v]",
			review.Rating, data.RatingMin, data.RatingMax)
	}
	id, err := l.store.NextId(ctx, CollectionReviews)
	if err != nil {
		return nil, err
	}
	saved := *review
	saved.Id = id
	if err := l.recordWrite(ctx, CollectionReviews, id, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (l *logic) ReviewsRead(ctx context.Context) ([]*data.Review, error) {
	return recordsRead[data.Review](ctx, l.store, CollectionReviews)
}
