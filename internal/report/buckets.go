package report

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

var dayPrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// DayOf 取时间戳开头的字面日期 YYYY-MM-DD（不做时区换算），必须是真实日期
func DayOf(ts string) (string, bool) {
	day := dayPrefixRe.FindString(strings.TrimSpace(ts))
	if day == "" {
		return "", false
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return "", false
	}
	return day, true
}

// BucketByDay 按第一个用户的完成日期聚合数量与分值，按日期升序
func BucketByDay(tasks []model.Task) []model.DailyBucket {
	index := make(map[string]int)
	buckets := make([]model.DailyBucket, 0)
	sums := make([]decimal.Decimal, 0)

	for _, t := range tasks {
		day, ok := DayOf(t.CompletedAt())
		if !ok {
			continue
		}
		i, seen := index[day]
		if !seen {
			i = len(buckets)
			index[day] = i
			buckets = append(buckets, model.DailyBucket{Date: day})
			sums = append(sums, decimal.Zero)
		}
		buckets[i].Qtd++
		sums[i] = sums[i].Add(decimal.NewFromFloat(t.Points()))
	}

	for i := range buckets {
		buckets[i].Pontos, _ = sums[i].Float64()
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})
	return buckets
}
