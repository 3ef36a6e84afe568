package store

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix string = "employee_management"
	hashKeyIds       string = "ids"
	hashKeyRecords   string = "records"
)

type redisStore struct {
	redisClient *redis.Client
	config      struct {
		address   string
		port      string
		password  string
		database  int
		timeout   time.Duration
		keyPrefix string
	}
	utilities.Logger
}

func NewRedis(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	internal.Clearer
	Store
} {
	s := &redisStore{}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			s.Logger = p
		}
	}
	return s
}

func (s *redisStore) keyIds() string {
	return s.config.keyPrefix + ":" + hashKeyIds
}

func (s *redisStore) keyRecords(collection string) string {
	return s.config.keyPrefix + ":" + hashKeyRecords + ":" + collection
}

func (s *redisStore) Configure(envs map[string]string) error {
	s.config.keyPrefix = defaultKeyPrefix
	s.config.timeout = 10 * time.Second
	if redisAddress, ok := envs["REDIS_ADDRESS"]; ok {
		s.config.address = redisAddress
	}
	if redisPort, ok := envs["REDIS_PORT"]; ok {
		s.config.port = redisPort
	}
	if redisPassword, ok := envs["REDIS_PASSWORD"]; ok {
		s.config.password = redisPassword
	}
	if redisDatabase := envs["REDIS_DATABASE"]; redisDatabase != "" {
		i, err := strconv.Atoi(redisDatabase)
		if err != nil {
			return errors.Wrap(err, "invalid REDIS_DATABASE")
		}
		s.config.database = i
	}
	if redisTimeout := envs["REDIS_TIMEOUT"]; redisTimeout != "" {
		i, _ := strconv.ParseInt(redisTimeout, 10, 64)
		if i > 0 {
			s.config.timeout = time.Duration(i) * time.Second
		}
	}
	if keyPrefix := envs["REDIS_KEY_PREFIX"]; keyPrefix != "" {
		s.config.keyPrefix = keyPrefix
	}
	return nil
}

func (s *redisStore) Open(ctx context.Context) error {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(s.config.address, s.config.port),
		Password: s.config.password,
		DB:       s.config.database,
	})
	ctx, cancel := context.WithTimeout(ctx, s.config.timeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return err
	}
	s.redisClient = redisClient
	return nil
}

func (s *redisStore) Close(ctx context.Context) error {
	if s.redisClient == nil {
		return nil
	}
	if err := s.redisClient.Close(); err != nil && s.Logger != nil {
		s.Error(ctx, "error while shutting down redis client: %s", err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.timeout)
	defer cancel()
	keys, err := s.redisClient.Keys(ctx, s.config.keyPrefix+":*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	_, err = s.redisClient.Del(ctx, keys...).Result()
	return err
}

func (s *redisStore) NextId(ctx context.Context, collection string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.timeout)
	defer cancel()
	return s.redisClient.HIncrBy(ctx, s.keyIds(), collection, 1).Result()
}

func (s *redisStore) RecordWrite(ctx context.Context, collection string, id int64, record []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.timeout)
	defer cancel()
	_, err := s.redisClient.HSet(ctx, s.keyRecords(collection),
		strconv.FormatInt(id, 10), string(record)).Result()
	return err
}

func (s *redisStore) RecordsRead(ctx context.Context, collection string) ([][]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.timeout)
	defer cancel()
	values, err := s.redisClient.HGetAll(ctx, s.keyRecords(collection)).Result()
	if err != nil {
		return nil, err
	}
	records := make(map[int64][]byte, len(values))
	for key, value := range values {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid record id %q", key)
		}
		records[id] = []byte(value)
	}
	return sortedRecords(records), nil
}
