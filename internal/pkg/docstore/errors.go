package docstore

import "errors"

var (
	// ErrRecordNotFound 更新目标不存在
	ErrRecordNotFound = errors.New("docstore: record not found")
	// ErrIndexNotFound 索引名未在表上声明，属于部署期配置错误，不重试
	ErrIndexNotFound = errors.New("docstore: index not found")
	// ErrStoreUnavailable 底层连接故障，重试耗尽后抛出
	ErrStoreUnavailable = errors.New("docstore: store unavailable")
)
