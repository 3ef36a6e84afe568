package store

import (
	"context"
	"sync"

	"github.com/antonio-alexander/go-employee-seeder/internal"
	"github.com/antonio-alexander/go-employee-seeder/internal/utilities"
)

type memoryStore struct {
	sync.RWMutex
	ids     map[string]int64            //map[collection]last id
	records map[string]map[int64][]byte //map[collection][id]record
	utilities.Logger
}

func NewMemory(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	internal.Clearer
	Store
} {
	s := &memoryStore{}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			s.Logger = p
		}
	}
	return s
}

func (s *memoryStore) Configure(envs map[string]string) error {
	return nil
}

func (s *memoryStore) Open(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	s.ids = make(map[string]int64)
	s.records = make(map[string]map[int64][]byte)
	return nil
}

func (s *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (s *memoryStore) Clear(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	s.ids = make(map[string]int64)
	s.records = make(map[string]map[int64][]byte)
	return nil
}

func (s *memoryStore) NextId(ctx context.Context, collection string) (int64, error) {
	s.Lock()
	defer s.Unlock()

	s.ids[collection]++
	return s.ids[collection], nil
}

func (s *memoryStore) RecordWrite(ctx context.Context, collection string, id int64, record []byte) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.records[collection]; !ok {
		s.records[collection] = make(map[int64][]byte)
	}
	s.records[collection][id] = append([]byte(nil), record...)
	return nil
}

func (s *memoryStore) RecordsRead(ctx context.Context, collection string) ([][]byte, error) {
	s.RLock()
	defer s.RUnlock()

	return sortedRecords(s.records[collection]), nil
}
