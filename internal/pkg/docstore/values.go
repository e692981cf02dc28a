package docstore

import (
	"fmt"
)

// NumberValue 将记录中的数值属性归一化为 float64
// 文档库解码出的数值类型不唯一（int32/int64/float64），比较前必须归一
func NumberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// StringValue 将属性值归一化为字符串
func StringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// ValueEquals 跨数值类型的等值比较
func ValueEquals(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if an, ok := NumberValue(a); ok {
		if bn, ok := NumberValue(b); ok {
			return an == bn
		}
		return false
	}
	return StringValue(a) == StringValue(b)
}
