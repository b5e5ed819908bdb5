// internal/pkg/sequence/identifier.go
package sequence

import (
	"fmt"
	"strings"
	"time"
)

// OrderPrefix 订单号固定使用的前缀。
const OrderPrefix = "ORD"

// Format 拼出 PP-YYYYMMDD-SSS 形式的标识符，例如 VE-20260228-001。
// 日期段取 UTC 自然日，和 CounterKey 使用同一口径。
// 序号补零到 3 位；超过 999 时字段自然变宽，不算错误。
func Format(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, day.UTC().Format("20060102"), seq)
}

// PrefixFromName 从名字推导两位前缀：取前两个字符并大写；
// 不足两位时用字面量 '0' 补齐（例如 "a" -> "A0"）。
func PrefixFromName(name string) string {
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	prefix := strings.ToUpper(string(runes))
	for len(prefix) < 2 {
		prefix += "0"
	}
	return prefix
}
