package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables() TableConfig {
	return TableConfig{
		"Posts": {
			{Name: "idolName-index", PartitionKey: "idolName"},
		},
		"Comments": {
			{Name: "postId-index", PartitionKey: "postId", SortKey: "createdAt"},
		},
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testTables())

	err := store.Put(ctx, "Posts", Record{"id": "p1", "idolName": "aya", "likes": int64(0)})
	require.NoError(t, err)

	rec, err := store.Get(ctx, "Posts", "p1")
	require.NoError(t, err)
	assert.Equal(t, "aya", rec["idolName"])

	// 未找到不是错误
	rec, err = store.Get(ctx, "Posts", "nope")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testTables())

	require.NoError(t, store.Put(ctx, "Posts", Record{"id": "p1", "content": "hi", "likes": int64(1)}))

	err := store.Update(ctx, "Posts", "p1", Record{"content": "hello"}, map[string]int64{"likes": 2})
	require.NoError(t, err)

	rec, err := store.Get(ctx, "Posts", "p1")
	require.NoError(t, err)
	assert.Equal(t, "hello", rec["content"])
	likes, ok := NumberValue(rec["likes"])
	require.True(t, ok)
	assert.Equal(t, float64(3), likes)

	err = store.Update(ctx, "Posts", "missing", Record{"content": "x"}, nil)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testTables())

	require.NoError(t, store.Put(ctx, "Posts", Record{"id": "p1"}))
	require.NoError(t, store.Delete(ctx, "Posts", "p1"))
	require.NoError(t, store.Delete(ctx, "Posts", "p1"))

	rec, err := store.Get(ctx, "Posts", "p1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMemoryStoreQueryUnknownIndex(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testTables())

	_, err := store.Query(ctx, "Posts", "no-such-index", "aya", nil)
	assert.ErrorIs(t, err, ErrIndexNotFound)
}

func TestMemoryStoreQuerySortCondition(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testTables())

	require.NoError(t, store.Put(ctx, "Comments", Record{"id": "c1", "postId": "p1", "createdAt": "2026-01-01T00:00:00.000Z"}))
	require.NoError(t, store.Put(ctx, "Comments", Record{"id": "c2", "postId": "p1", "createdAt": "2026-01-02T00:00:00.000Z"}))
	require.NoError(t, store.Put(ctx, "Comments", Record{"id": "c3", "postId": "p2", "createdAt": "2026-01-01T00:00:00.000Z"}))

	records, err := store.Query(ctx, "Comments", "postId-index", "p1", nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = store.Query(ctx, "Comments", "postId-index", "p1",
		&SortCondition{Attribute: "createdAt", Value: "2026-01-02T00:00:00.000Z"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c2", records[0]["id"])
}
