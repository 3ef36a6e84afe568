package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"

	"github.com/antonio-alexander/go-stash"
	"github.com/pkg/errors"
)

type stashRecord []byte

func (r *stashRecord) MarshalBinary() ([]byte, error) {
	return *r, nil
}

func (r *stashRecord) UnmarshalBinary(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// stashStore keeps the record bodies in a stash and the ids it has handed
// out in memory; a stash is allowed to evict, so RecordsRead skips any id
// it can no longer find.
type stashStore struct {
	sync.RWMutex
	logger utilities.Logger
	stash  interface {
		stash.Configurer
		stash.Parameterizer
		stash.Initializer
		stash.Shutdowner
	}
	stash.Stasher
	ids map[string][]int64 //map[collection]ids
}

func NewStash(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	internal.Clearer
	Store
} {
	s := &stashStore{}
	for _, p := range parameters {
		switch p := p.(type) {
		case utilities.Logger:
			s.logger = p
		case interface {
			stash.Configurer
			stash.Parameterizer
			stash.Initializer
			stash.Shutdowner
			stash.Stasher
		}:
			s.stash = p
			s.Stasher = p
		}
	}
	if s.stash != nil {
		s.stash.SetParameters(parameters...)
	}
	return s
}

func stashKey(collection string, id int64) string {
	return fmt.Sprintf("%s_%d", collection, id)
}

func (s *stashStore) Error(ctx context.Context, format string, v ...any) {
	if s.logger != nil {
		s.logger.Error(ctx, format, v...)
	}
}

func (s *stashStore) Trace(ctx context.Context, format string, v ...any) {
	if s.logger != nil {
		s.logger.Trace(ctx, format, v...)
	}
}

func (s *stashStore) Configure(envs map[string]string) error {
	if s.stash != nil {
		if err := s.stash.Configure(envs); err != nil {
			return err
		}
	}
	return nil
}

func (s *stashStore) Open(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	if s.stash == nil {
		return errors.New("stash not provided")
	}
	s.ids = make(map[string][]int64)
	return s.stash.Initialize()
}

func (s *stashStore) Close(ctx context.Context) error {
	if s.stash != nil {
		return s.stash.Shutdown()
	}
	return nil
}

func (s *stashStore) Clear(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	s.ids = make(map[string][]int64)
	return s.Stasher.Clear()
}

func (s *stashStore) NextId(ctx context.Context, collection string) (int64, error) {
	s.Lock()
	defer s.Unlock()

	var id int64 = 1
	if ids := s.ids[collection]; len(ids) > 0 {
		id = ids[len(ids)-1] + 1
	}
	s.ids[collection] = append(s.ids[collection], id)
	return id, nil
}

func (s *stashStore) RecordWrite(ctx context.Context, collection string, id int64, record []byte) error {
	key := stashKey(collection, id)
	value := stashRecord(record)
	if _, err := s.Stasher.Write(key, &value); err != nil {
		s.Error(ctx, "error while writing record (%s): %s", key, err)
		return err
	}
	s.Trace(ctx, "stashed record: %s", key)
	return nil
}

func (s *stashStore) RecordsRead(ctx context.Context, collection string) ([][]byte, error) {
	s.RLock()
	defer s.RUnlock()

	records := make(map[int64][]byte, len(s.ids[collection]))
	for _, id := range s.ids[collection] {
		var value stashRecord

		key := stashKey(collection, id)
		if err := s.Stasher.Read(key, &value); err != nil {
			s.Trace(ctx, "record not stashed (%s): %s", key, err)
			continue
		}
		records[id] = value
	}
	return sortedRecords(records), nil
}
