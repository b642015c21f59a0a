package parser

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// serialEpochOffset 表格序列日期 25569 对应 1970-01-01
const serialEpochOffset = 25569

const (
	minDateYear = 1900
	maxSerial   = 2958465 // 9999-12-31
)

// dateLayouts 通用日期格式，按顺序尝试
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 2 2006",
}

// ParseDate 把单元格值解析为日历日期（UTC 零点），失败返回 false
func ParseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() || v.Year() <= minDateYear {
			return time.Time{}, false
		}
		return dateOf(v), true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return ParseDate(*v)
	case float64:
		return fromSerial(v)
	case float32:
		return fromSerial(float64(v))
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	}

	s := strings.TrimSpace(toText(value))
	if s == "" {
		return time.Time{}, false
	}

	// 日/月/年（斜杠分隔、恰好三段），不再尝试其他格式
	if parts := strings.Split(s, "/"); len(parts) == 3 {
		return fromDayMonthYear(parts)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > minDateYear {
				return dateOf(t), true
			}
			break
		}
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(n)
	}
	return time.Time{}, false
}

func fromDayMonthYear(parts []string) (time.Time, bool) {
	d, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errD != nil || errM != nil || errY != nil || y <= minDateYear {
		return time.Time{}, false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// 31/02 之类会被 time.Date 进位，视为无效
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

func fromSerial(n float64) (time.Time, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 || n > maxSerial {
		return time.Time{}, false
	}
	ms := math.Round((n - serialEpochOffset) * 86400 * 1000)
	t := time.UnixMilli(int64(ms)).UTC()
	if t.Year() <= minDateYear {
		return time.Time{}, false
	}
	return dateOf(t), true
}

// dateOf 取字面日期（按值自身时区），归一为 UTC 零点
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey YYYY-MM-DD
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
