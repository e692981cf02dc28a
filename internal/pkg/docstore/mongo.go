package docstore

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore 基于 MongoDB 的文档库实现，一张表对应一个 collection
// 主键属性 id 同步写入 _id，保证 Put 的整条覆盖语义
type MongoStore struct {
	db     *mongo.Database
	tables TableConfig
	retry  RetryConfig
}

func NewMongoStore(db *mongo.Database, tables TableConfig) *MongoStore {
	return &MongoStore{
		db:     db,
		tables: tables,
		retry:  DefaultRetryConfig(),
	}
}

// Tables 返回注入的索引声明，供查询网关做路由决策
func (s *MongoStore) Tables() TableConfig {
	return s.tables
}

func (s *MongoStore) Put(ctx context.Context, table string, rec Record) error {
	key, _ := rec[KeyAttribute].(string)
	if key == "" {
		return pkgerrors.New("docstore: record missing primary key attribute")
	}

	doc := bson.M{"_id": key}
	for k, v := range rec {
		doc[k] = v
	}

	return withRetry(ctx, s.retry, "put "+table, func() error {
		opts := options.Replace().SetUpsert(true)
		_, err := s.db.Collection(table).ReplaceOne(ctx, bson.M{"_id": key}, doc, opts)
		return err
	})
}

func (s *MongoStore) Get(ctx context.Context, table, key string) (Record, error) {
	var rec Record
	err := withRetry(ctx, s.retry, "get "+table, func() error {
		res := s.db.Collection(table).FindOne(ctx, bson.M{"_id": key})
		return res.Decode(&rec)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	delete(rec, "_id")
	return rec, nil
}

func (s *MongoStore) Query(ctx context.Context, table, indexName string, partitionValue any, sortCond *SortCondition) ([]Record, error) {
	idx, ok := s.tables.Index(table, indexName)
	if !ok {
		return nil, pkgerrors.Wrapf(ErrIndexNotFound, "table=%s index=%s", table, indexName)
	}

	filter := bson.M{idx.PartitionKey: partitionValue}
	if sortCond != nil {
		if sortCond.Attribute != idx.SortKey {
			return nil, pkgerrors.Wrapf(ErrIndexNotFound, "table=%s index=%s does not cover sort attribute %s", table, indexName, sortCond.Attribute)
		}
		filter[idx.SortKey] = sortCond.Value
	}

	return s.find(ctx, table, filter, "query "+table)
}

func (s *MongoStore) Scan(ctx context.Context, table string) ([]Record, error) {
	return s.find(ctx, table, bson.M{}, "scan "+table)
}

func (s *MongoStore) Update(ctx context.Context, table, key string, set Record, inc map[string]int64) error {
	update := bson.M{}
	if len(set) > 0 {
		fields := bson.M{}
		for k, v := range set {
			fields[k] = v
		}
		update["$set"] = fields
	}
	if len(inc) > 0 {
		deltas := bson.M{}
		for k, v := range inc {
			deltas[k] = v
		}
		update["$inc"] = deltas
	}
	if len(update) == 0 {
		return nil
	}

	return withRetry(ctx, s.retry, "update "+table, func() error {
		res, err := s.db.Collection(table).UpdateOne(ctx, bson.M{"_id": key}, update)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return pkgerrors.Wrapf(ErrRecordNotFound, "table=%s key=%s", table, key)
		}
		return nil
	})
}

func (s *MongoStore) Delete(ctx context.Context, table, key string) error {
	return withRetry(ctx, s.retry, "delete "+table, func() error {
		_, err := s.db.Collection(table).DeleteOne(ctx, bson.M{"_id": key})
		return err
	})
}

func (s *MongoStore) find(ctx context.Context, table string, filter bson.M, op string) ([]Record, error) {
	var records []Record
	err := withRetry(ctx, s.retry, op, func() error {
		cursor, err := s.db.Collection(table).Find(ctx, filter)
		if err != nil {
			return err
		}
		defer func() {
			_ = cursor.Close(ctx)
		}()

		records = records[:0]
		for cursor.Next(ctx) {
			var rec Record
			if err := cursor.Decode(&rec); err != nil {
				return err
			}
			delete(rec, "_id")
			records = append(records, rec)
		}
		return cursor.Err()
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
