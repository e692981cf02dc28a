package docstore

import (
	"context"
)

// KeyAttribute 每张表的主键属性名
const KeyAttribute = "id"

// Record 无模式记录，属性名到属性值的映射
// 合法的属性值：string、数值、bool、列表、嵌套 map
type Record map[string]any

// Index 二级索引声明
// 仅支持分区键等值查询，可附带排序键条件，不支持任意谓词
type Index struct {
	Name         string
	PartitionKey string
	SortKey      string
}

// TableConfig 表名到索引声明的映射，启动时注入，之后只读
type TableConfig map[string][]Index

// Index 按索引名查找声明
func (c TableConfig) Index(table, name string) (Index, bool) {
	for _, idx := range c[table] {
		if idx.Name == name {
			return idx, true
		}
	}
	return Index{}, false
}

// IndexFor 查找分区键等于指定属性的索引
func (c TableConfig) IndexFor(table, attribute string) (Index, bool) {
	for _, idx := range c[table] {
		if idx.PartitionKey == attribute {
			return idx, true
		}
	}
	return Index{}, false
}

// SortCondition 排序键等值条件
type SortCondition struct {
	Attribute string
	Value     any
}

// Store 统一的文档库访问接口
type Store interface {
	// Put 按主键整条写入，已存在则完整覆盖
	Put(ctx context.Context, table string, rec Record) error
	// Get 按主键读取，未找到返回 (nil, nil) 而不是错误
	Get(ctx context.Context, table, key string) (Record, error)
	// Query 按索引分区键等值查询，可附带排序键条件
	Query(ctx context.Context, table, indexName string, partitionValue any, sortCond *SortCondition) ([]Record, error)
	// Scan 全表读取，无序。大表上代价为 O(表大小)，仅限无可用索引的查询形态
	Scan(ctx context.Context, table string) ([]Record, error)
	// Update 对单条记录做稀疏属性替换，inc 为计数器增量
	Update(ctx context.Context, table, key string, set Record, inc map[string]int64) error
	// Delete 按主键删除，键不存在不报错
	Delete(ctx context.Context, table, key string) error
}
