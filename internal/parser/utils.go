package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	listSepRe    = regexp.MustCompile(`[,;|/]+`)
	nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)
)

// toText 单元格值转字符串
func toText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// isEmptyCell 空单元格（nil 或空串）
func isEmptyCell(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	}
	return false
}

// SplitList 按 , ; | / 拆分，去空白并丢弃空项
func SplitList(s string) []string {
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	parts := listSepRe.Split(s, -1)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// ParseNumber 去除非数字字符后解析为整数，失败返回 false
func ParseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return math.Round(x), !math.IsNaN(x) && !math.IsInf(x, 0)
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	s := nonNumericRe.ReplaceAllString(toText(v), "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return math.Round(f), true
}
