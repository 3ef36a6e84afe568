package store_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/store"

	"github.com/antonio-alexander/go-stash/memory"
	"github.com/antonio-alexander/go-stash/redis"
	"github.com/stretchr/testify/assert"
)

var envs = map[string]string{
	"REDIS_ADDRESS":    "localhost",
	"REDIS_PORT":       "6379",
	"REDIS_TIMEOUT":    "10",
	"REDIS_KEY_PREFIX": "employee_management_test",

	"DATABASE_PORT":            "3306",
	"DATABASE_NAME":            "employee_management",
	"DATABASE_USER":            "mysql",
	"DATABASE_PASSWORD":        "mysql",
	"DATABASE_CONNECT_TIMEOUT": "10",
}

func init() {
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
}

type storeTest struct {
	store interface {
		internal.Configurer
		internal.Opener
		internal.Clearer
		store.Store
	}
}

func newStoreTest(storeType string) *storeTest {
	s := &storeTest{}
	switch storeType {
	case "memory":
		s.store = store.NewMemory()
	case "redis":
		s.store = store.NewRedis()
	case "mysql":
		s.store = store.NewMySql()
	case "stash-memory":
		stash := memory.New()
		_ = stash.Configure(envs)
		s.store = store.NewStash(stash)
	case "stash-redis":
		stash := redis.New()
		_ = stash.Configure(envs)
		s.store = store.NewStash(stash)
	}
	return s
}

func (s *storeTest) TestStore(t *testing.T) {
	ctx := context.TODO()

	err := s.store.Clear(ctx)
	assert.Nil(t, err)

	// empty collections read as empty
	records, err := s.store.RecordsRead(ctx, "goals")
	assert.Nil(t, err)
	assert.Empty(t, records)

	// ids are handed out per collection
	id, err := s.store.NextId(ctx, "goals")
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id)
	id, err = s.store.NextId(ctx, "goals")
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id)
	id, err = s.store.NextId(ctx, "reviews")
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id)

	// records come back ordered by id
	err = s.store.RecordWrite(ctx, "goals", 2, []byte(`{"id":2}`))
	assert.Nil(t, err)
	err = s.store.RecordWrite(ctx, "goals", 1, []byte(`{"id":1}`))
	assert.Nil(t, err)
	records, err = s.store.RecordsRead(ctx, "goals")
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte(`{"id":1}`), []byte(`{"id":2}`)}, records)
	records, err = s.store.RecordsRead(ctx, "reviews")
	assert.Nil(t, err)
	assert.Empty(t, records)

	// clear resets records and ids
	err = s.store.Clear(ctx)
	assert.Nil(t, err)
	records, err = s.store.RecordsRead(ctx, "goals")
	assert.Nil(t, err)
	assert.Empty(t, records)
	id, err = s.store.NextId(ctx, "goals")
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id)
}

func testStore(t *testing.T, storeType string) {
	s := newStoreTest(storeType)

	ctx := context.TODO()
	err := s.store.Configure(envs)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to configure store")
	}
	err = s.store.Open(ctx)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to open store")
	}
	defer func() {
		if err := s.store.Close(ctx); err != nil {
			t.Logf("error while closing store: %s", err)
		}
	}()
	t.Run("Store", s.TestStore)
}

func TestStoreMemory(t *testing.T) {
	testStore(t, "memory")
}

func TestStoreRedis(t *testing.T) {
	if _, ok := os.LookupEnv("REDIS_ADDRESS"); !ok {
		t.Skip("REDIS_ADDRESS not set")
	}
	testStore(t, "redis")
}

func TestStoreStashMemory(t *testing.T) {
	testStore(t, "stash-memory")
}

func TestStoreStashRedis(t *testing.T) {
	if _, ok := os.LookupEnv("REDIS_ADDRESS"); !ok {
		t.Skip("REDIS_ADDRESS not set")
	}
	testStore(t, "stash-redis")
}

func TestStoreMySql(t *testing.T) {
	if _, ok := os.LookupEnv("DATABASE_HOST"); !ok {
		t.Skip("DATABASE_HOST not set")
	}
	testStore(t, "mysql")
}
