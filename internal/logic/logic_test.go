package logic_test

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/data"
	"github.com/antonio-alexander/go-employee-seeder/internal/logic"
	"github.com/antonio-alexander/go-employee-seeder/internal/store"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

var envs = map[string]string{
	"LOGIC_MUTATE_DISABLED": "false",
	"LOGIC_BCRYPT_COST":     "4",
}

func init() {
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
}

type logicTest struct {
	store interface {
		internal.Configurer
		internal.Opener
		internal.Clearer
		store.Store
	}
	logic interface {
		internal.Configurer
		internal.Opener
		logic.Logic
	}
}

func newLogicTest(t *testing.T, envs map[string]string) *logicTest {
	ctx := context.TODO()
	s := store.NewMemory()
	l := logic.NewLogic(s)
	if !assert.Nil(t, s.Configure(envs)) || !assert.Nil(t, s.Open(ctx)) {
		assert.FailNow(t, "unable to open store")
	}
	if !assert.Nil(t, l.Configure(envs)) || !assert.Nil(t, l.Open(ctx)) {
		assert.FailNow(t, "unable to open logic")
	}
	return &logicTest{store: s, logic: l}
}

func TestEmployeeRegister(t *testing.T) {
	ctx := context.TODO()
	l := newLogicTest(t, envs).logic

	employee, err := l.EmployeeRegister(ctx, &data.Employee{
		EmpCode:   "EM001",
		FirstName: "Rajesh",
		LastName:  "Kumar",
		Email:     "rajesh.kumar@company.com",
		Password:  "Password@123",
	})
	assert.Nil(t, err)
	assert.Equal(t, int64(1), employee.Id)
	assert.Empty(t, employee.Password)

	// duplicate codes are rejected regardless of case
	_, err = l.EmployeeRegister(ctx, &data.Employee{
		EmpCode:   "em001",
		FirstName: "Rajesh",
		Email:     "rajesh@company.com",
	})
	assert.True(t, errors.Is(err, logic.ErrConflict))

	// required fields
	_, err = l.EmployeeRegister(ctx, &data.Employee{EmpCode: "EM002"})
	assert.True(t, errors.Is(err, logic.ErrInvalid))

	employees, err := l.EmployeesRead(ctx)
	assert.Nil(t, err)
	if assert.Len(t, employees, 1) {
		assert.Equal(t, "Rajesh Kumar", employees[0].Label())
		assert.Empty(t, employees[0].Password)
	}
}

func TestEmployeePasswordHashed(t *testing.T) {
	ctx := context.TODO()
	lt := newLogicTest(t, envs)

	_, err := lt.logic.EmployeeRegister(ctx, &data.Employee{
		EmpCode:   "EM001",
		FirstName: "Rajesh",
		Email:     "rajesh.kumar@company.com",
		Password:  "Password@123",
	})
	assert.Nil(t, err)
	records, err := lt.store.RecordsRead(ctx, logic.CollectionEmployees)
	assert.Nil(t, err)
	if assert.Len(t, records, 1) {
		stored := &data.Employee{}
		assert.Nil(t, stored.UnmarshalBinary(records[0]))
		assert.NotEqual(t, "Password@123", stored.Password)
		err = bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("Password@123"))
		assert.Nil(t, err)
	}
}

func TestRecordsSave(t *testing.T) {
	ctx := context.TODO()
	l := newLogicTest(t, envs).logic

	reviewCycle, err := l.ReviewCycleSave(ctx, &data.ReviewCycle{
		CycleName: "Q1 2025 Performance Review",
		Status:    data.CycleStatusInProgress,
	})
	assert.Nil(t, err)
	assert.Equal(t, int64(1), reviewCycle.Id)
	_, err = l.ReviewCycleSave(ctx, &data.ReviewCycle{})
	assert.True(t, errors.Is(err, logic.ErrInvalid))

	goal, err := l.GoalSave(ctx, &data.Goal{Title: "Sales Target Q1", EmpId: 3})
	assert.Nil(t, err)
	assert.Equal(t, int64(1), goal.Id)
	_, err = l.GoalSave(ctx, &data.Goal{})
	assert.True(t, errors.Is(err, logic.ErrInvalid))

	review, err := l.ReviewSave(ctx, &data.Review{EmpName: "Amit Patel", Rating: 3.5})
	assert.Nil(t, err)
	assert.Equal(t, int64(1), review.Id)
	_, err = l.ReviewSave(ctx, &data.Review{EmpName: "Amit Patel", Rating: 5.5})
	assert.True(t, errors.Is(err, logic.ErrInvalid))

	reviewCycles, err := l.ReviewCyclesRead(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []*data.ReviewCycle{reviewCycle}, reviewCycles)
	goals, err := l.GoalsRead(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []*data.Goal{goal}, goals)
	reviews, err := l.ReviewsRead(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []*data.Review{review}, reviews)
}

func TestMutationDisabled(t *testing.T) {
	ctx := context.TODO()
	l := newLogicTest(t, map[string]string{"LOGIC_MUTATE_DISABLED": "true"}).logic

	_, err := l.EmployeeRegister(ctx, &data.Employee{EmpCode: "EM001"})
	assert.True(t, errors.Is(err, logic.ErrMutationDisabled))
	_, err = l.GoalSave(ctx, &data.Goal{Title: "Sales Target Q1"})
	assert.True(t, errors.Is(err, logic.ErrMutationDisabled))
}

func TestConfigureWhileSaving(t *testing.T) {
	const n int = 20

	var wg sync.WaitGroup

	ctx := context.TODO()
	l := newLogicTest(t, envs).logic

	wg.Add(2)
	go func() {
		defer wg.Done()

		for i := 0; i < n; i++ {
			_ = l.Configure(map[string]string{"LOGIC_MUTATE_DISABLED": "false"})
		}
	}()
	go func() {
		defer wg.Done()

		for i := 0; i < n; i++ {
			_, _ = l.ReviewCycleSave(ctx, &data.ReviewCycle{CycleName: "Q1 2025 Performance Review"})
			_, _ = l.GoalSave(ctx, &data.Goal{Title: "Sales Target Q1"})
			_, _ = l.ReviewSave(ctx, &data.Review{EmpName: "Amit Patel", Rating: 4})
		}
	}()
	wg.Wait()

	reviewCycles, err := l.ReviewCyclesRead(ctx)
	assert.Nil(t, err)
	assert.Len(t, reviewCycles, n)
	goals, err := l.GoalsRead(ctx)
	assert.Nil(t, err)
	assert.Len(t, goals, n)
	reviews, err := l.ReviewsRead(ctx)
	assert.Nil(t, err)
	assert.Len(t, reviews, n)

	// the flag flipped mid-run is honoured by every save
	assert.Nil(t, l.Configure(map[string]string{"LOGIC_MUTATE_DISABLED": "true"}))
	_, err = l.ReviewCycleSave(ctx, &data.ReviewCycle{CycleName: "Q2 2025 Performance Review"})
	assert.True(t, errors.Is(err, logic.ErrMutationDisabled))
	_, err = l.ReviewSave(ctx, &data.Review{EmpName: "Amit Patel", Rating: 4})
	assert.True(t, errors.Is(err, logic.ErrMutationDisabled))
}
