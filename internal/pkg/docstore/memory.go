package docstore

import (
	"context"
	"sync"

	pkgerrors "github.com/pkg/errors"
)

// MemoryStore 进程内文档库实现，语义与 MongoStore 对齐
// 用于单元测试和本地联调，不做持久化
type MemoryStore struct {
	mu     sync.RWMutex
	tables TableConfig
	data   map[string]map[string]Record
}

func NewMemoryStore(tables TableConfig) *MemoryStore {
	return &MemoryStore{
		tables: tables,
		data:   make(map[string]map[string]Record),
	}
}

func (s *MemoryStore) Tables() TableConfig {
	return s.tables
}

func (s *MemoryStore) Put(_ context.Context, table string, rec Record) error {
	key, _ := rec[KeyAttribute].(string)
	if key == "" {
		return pkgerrors.New("docstore: record missing primary key attribute")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[table] == nil {
		s.data[table] = make(map[string]Record)
	}
	s.data[table][key] = cloneRecord(rec)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, table, key string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[table][key]
	if !ok {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

func (s *MemoryStore) Query(_ context.Context, table, indexName string, partitionValue any, sortCond *SortCondition) ([]Record, error) {
	idx, ok := s.tables.Index(table, indexName)
	if !ok {
		return nil, pkgerrors.Wrapf(ErrIndexNotFound, "table=%s index=%s", table, indexName)
	}
	if sortCond != nil && sortCond.Attribute != idx.SortKey {
		return nil, pkgerrors.Wrapf(ErrIndexNotFound, "table=%s index=%s does not cover sort attribute %s", table, indexName, sortCond.Attribute)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, rec := range s.data[table] {
		if !ValueEquals(rec[idx.PartitionKey], partitionValue) {
			continue
		}
		if sortCond != nil && !ValueEquals(rec[idx.SortKey], sortCond.Value) {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	return out, nil
}

func (s *MemoryStore) Scan(_ context.Context, table string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, rec := range s.data[table] {
		out = append(out, cloneRecord(rec))
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, table, key string, set Record, inc map[string]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[table][key]
	if !ok {
		return pkgerrors.Wrapf(ErrRecordNotFound, "table=%s key=%s", table, key)
	}
	for k, v := range set {
		rec[k] = v
	}
	for k, delta := range inc {
		cur, _ := NumberValue(rec[k])
		rec[k] = int64(cur) + delta
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, table, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[table], key)
	return nil
}

func cloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
