package store

import (
	"context"
	"sort"
)

// Store holds json encoded records per collection, each record keyed by an
// id handed out by NextId. RecordsRead returns records ordered by id.
type Store interface {
	NextId(ctx context.Context, collection string) (int64, error)
	RecordWrite(ctx context.Context, collection string, id int64, record []byte) error
	RecordsRead(ctx context.Context, collection string) ([][]byte, error)
}

func sortedRecords(records map[int64][]byte) [][]byte {
	ids := make([]int64, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	sorted := make([][]byte, 0, len(ids))
	for _, id := range ids {
		sorted = append(sorted, records[id])
	}
	return sorted
}
