package dataset

import (
	"math"
	"strconv"
	"time"
)

// TimeLayout 时间值的输出格式
const TimeLayout = "2006-01-02 15:04:05"

// FormatValue 把单元格格式化为字符串，空值与 NaN 输出空串
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return FormatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(TimeLayout)
	}
	return ""
}

// FormatFloat 格式化浮点数，NaN 输出空串
func FormatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
