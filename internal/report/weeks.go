package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// weekGapDays 相邻两天相差至少这么多天时切分为新的一周
const weekGapDays = 2

// SegmentWeeks 把按天数据切分为以间隔分隔的连续“周”，每段取每日分值的平均值
func SegmentWeeks(buckets []model.DailyBucket) []model.WeekSegment {
	segments := make([]model.WeekSegment, 0)
	if len(buckets) == 0 {
		return segments
	}

	sorted := make([]model.DailyBucket, len(buckets))
	copy(sorted, buckets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	var current []model.DailyBucket
	for i, b := range sorted {
		current = append(current, b)
		last := i == len(sorted)-1
		if !last && dayGap(b.Date, sorted[i+1].Date) < weekGapDays {
			continue
		}
		segments = append(segments, model.WeekSegment{
			Semana: fmt.Sprintf("Week %d", len(segments)+1),
			Dias:   current,
			Media:  meanPoints(current),
		})
		current = nil
	}
	return segments
}

// dayGap 两个 YYYY-MM-DD 之间的天数，无法解析时视为 0
func dayGap(from, to string) int {
	a, errA := time.Parse("2006-01-02", from)
	b, errB := time.Parse("2006-01-02", to)
	if errA != nil || errB != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

func meanPoints(days []model.DailyBucket) float64 {
	total := decimal.Zero
	for _, d := range days {
		total = total.Add(decimal.NewFromFloat(d.Pontos))
	}
	return ratio(total, len(days))
}
