package datagw

import (
	"Aidol/internal/pkg/docstore"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureTables() docstore.TableConfig {
	return docstore.TableConfig{
		"Posts": {
			{Name: "idolName-index", PartitionKey: "idolName"},
		},
		"Comments": {
			{Name: "postId-index", PartitionKey: "postId", SortKey: "createdAt"},
		},
	}
}

func fixtureStore(t *testing.T) *docstore.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore(fixtureTables())

	posts := []docstore.Record{
		{"id": "p1", "idolName": "aya", "postType": "text", "likes": int64(3), "createdAt": "2026-01-01T00:00:00.000Z"},
		{"id": "p2", "idolName": "aya", "postType": "image", "likes": int64(1), "createdAt": "2026-01-03T00:00:00.000Z"},
		{"id": "p3", "idolName": "rin", "postType": "text", "likes": int64(7), "createdAt": "2026-01-02T00:00:00.000Z"},
	}
	for _, rec := range posts {
		require.NoError(t, store.Put(ctx, "Posts", rec))
	}
	return store
}

func recordIDs(records []docstore.Record) map[string]bool {
	ids := make(map[string]bool, len(records))
	for _, rec := range records {
		ids[docstore.StringValue(rec["id"])] = true
	}
	return ids
}

// 索引路径与全表扫描过滤必须返回同一结果集
func TestFindIndexRoutingMatchesScan(t *testing.T) {
	ctx := context.Background()
	store := fixtureStore(t)

	indexed := New(store, fixtureTables())
	// 空表配置使所有查询退化为扫描过滤
	scanOnly := New(store, docstore.TableConfig{})

	q := Query{
		Table:      "Posts",
		Conditions: []Condition{{Attribute: "idolName", Value: "aya"}},
	}

	fromIndex, err := indexed.Find(ctx, q)
	require.NoError(t, err)
	fromScan, err := scanOnly.Find(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, recordIDs(fromScan), recordIDs(fromIndex))
	assert.Equal(t, map[string]bool{"p1": true, "p2": true}, recordIDs(fromIndex))
}

func TestFindResidualFilter(t *testing.T) {
	ctx := context.Background()
	gateway := New(fixtureStore(t), fixtureTables())

	records, err := gateway.Find(ctx, Query{
		Table: "Posts",
		Conditions: []Condition{
			{Attribute: "idolName", Value: "aya"},
			{Attribute: "postType", Value: "image"},
		},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "p2", records[0]["id"])
}

func TestFindOrderByDesc(t *testing.T) {
	ctx := context.Background()
	gateway := New(fixtureStore(t), fixtureTables())

	records, err := gateway.Find(ctx, Query{
		Table:   "Posts",
		OrderBy: &OrderBy{Attribute: "createdAt", Direction: DirectionDesc},
	})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "p2", records[0]["id"])
	assert.Equal(t, "p3", records[1]["id"])
	assert.Equal(t, "p1", records[2]["id"])
}

func TestFindOrderByNumeric(t *testing.T) {
	ctx := context.Background()
	gateway := New(fixtureStore(t), fixtureTables())

	records, err := gateway.Find(ctx, Query{
		Table:   "Posts",
		OrderBy: &OrderBy{Attribute: "likes", Direction: DirectionAsc},
	})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "p2", records[0]["id"])
	assert.Equal(t, "p1", records[1]["id"])
	assert.Equal(t, "p3", records[2]["id"])
}

func TestFindLimitAfterOrdering(t *testing.T) {
	ctx := context.Background()
	gateway := New(fixtureStore(t), fixtureTables())

	records, err := gateway.Find(ctx, Query{
		Table:   "Posts",
		OrderBy: &OrderBy{Attribute: "createdAt", Direction: DirectionDesc},
		Limit:   1,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "p2", records[0]["id"])
}

// 命中索引排序键的第二个条件要下推，而不是留在内存过滤
func TestFindSortKeyPushdown(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore(fixtureTables())
	require.NoError(t, store.Put(ctx, "Comments", docstore.Record{"id": "c1", "postId": "p1", "createdAt": "2026-01-01T00:00:00.000Z"}))
	require.NoError(t, store.Put(ctx, "Comments", docstore.Record{"id": "c2", "postId": "p1", "createdAt": "2026-01-02T00:00:00.000Z"}))

	gateway := New(store, fixtureTables())
	records, err := gateway.Find(ctx, Query{
		Table: "Comments",
		Conditions: []Condition{
			{Attribute: "postId", Value: "p1"},
			{Attribute: "createdAt", Value: "2026-01-02T00:00:00.000Z"},
		},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c2", records[0]["id"])
}
