package datagw

import (
	"Aidol/internal/pkg/docstore"
	"context"
	"sort"
)

const (
	DirectionAsc  = "ASC"
	DirectionDesc = "DESC"
)

// Condition 属性等值条件
type Condition struct {
	Attribute string
	Value     any
}

// OrderBy 内存排序要求，Direction 取 ASC / DESC
type OrderBy struct {
	Attribute string
	Direction string
}

// Query 一次逻辑读请求
type Query struct {
	Table      string
	Conditions []Condition
	OrderBy    *OrderBy
	Limit      int
}

// Gateway 读路径路由网关
// 底层索引只支持分区键等值（+排序键）查询，任意排序和多字段过滤
// 都必须把数据拉到进程内后再补齐，属于读成本换查询灵活性的取舍
type Gateway struct {
	store  docstore.Store
	tables docstore.TableConfig
}

func New(store docstore.Store, tables docstore.TableConfig) *Gateway {
	return &Gateway{
		store:  store,
		tables: tables,
	}
}

// Find 路由决策：首个条件命中某索引的分区键则走索引查询，否则全表扫描
// 命中索引排序键的第二个条件下推到查询，剩余条件在内存中过滤
func (g *Gateway) Find(ctx context.Context, q Query) ([]docstore.Record, error) {
	records, residual, err := g.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	records = filterRecords(records, residual)

	if q.OrderBy != nil {
		sortRecords(records, q.OrderBy)
	}
	if q.Limit > 0 && len(records) > q.Limit {
		records = records[:q.Limit]
	}
	return records, nil
}

func (g *Gateway) fetch(ctx context.Context, q Query) ([]docstore.Record, []Condition, error) {
	if len(q.Conditions) == 0 {
		records, err := g.store.Scan(ctx, q.Table)
		return records, nil, err
	}

	idx, ok := g.tables.IndexFor(q.Table, q.Conditions[0].Attribute)
	if !ok {
		records, err := g.store.Scan(ctx, q.Table)
		return records, q.Conditions, err
	}

	residual := make([]Condition, 0, len(q.Conditions)-1)
	var sortCond *docstore.SortCondition
	for _, cond := range q.Conditions[1:] {
		if sortCond == nil && idx.SortKey != "" && cond.Attribute == idx.SortKey {
			sortCond = &docstore.SortCondition{Attribute: cond.Attribute, Value: cond.Value}
			continue
		}
		residual = append(residual, cond)
	}

	records, err := g.store.Query(ctx, q.Table, idx.Name, q.Conditions[0].Value, sortCond)
	return records, residual, err
}

func filterRecords(records []docstore.Record, conditions []Condition) []docstore.Record {
	if len(conditions) == 0 {
		return records
	}
	out := records[:0]
	for _, rec := range records {
		matched := true
		for _, cond := range conditions {
			if !docstore.ValueEquals(rec[cond.Attribute], cond.Value) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, rec)
		}
	}
	return out
}

// sortRecords 两值皆为数值时按数值比较，否则按字典序
// 相等元素的先后沿用取回顺序，跨后端不保证稳定，调用方不得依赖
func sortRecords(records []docstore.Record, orderBy *OrderBy) {
	desc := orderBy.Direction == DirectionDesc
	sort.SliceStable(records, func(i, j int) bool {
		less := valueLess(records[i][orderBy.Attribute], records[j][orderBy.Attribute])
		if desc {
			return valueLess(records[j][orderBy.Attribute], records[i][orderBy.Attribute])
		}
		return less
	})
}

func valueLess(a, b any) bool {
	if an, ok := docstore.NumberValue(a); ok {
		if bn, ok := docstore.NumberValue(b); ok {
			return an < bn
		}
	}
	return docstore.StringValue(a) < docstore.StringValue(b)
}
