package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// DailyAverage 完成任务数 / 活跃天数
func DailyAverage(completed []model.Task) float64 {
	days := make(map[string]struct{})
	total := 0
	for _, t := range completed {
		day, ok := DayOf(t.CompletedAt())
		if !ok {
			continue
		}
		days[day] = struct{}{}
		total++
	}
	return ratio(decimal.NewFromInt(int64(total)), len(days))
}

// MonthlyWeekAverage 完成任务数 / 活跃的“月内周”数
func MonthlyWeekAverage(completed []model.Task) float64 {
	weeks := make(map[string]struct{})
	total := 0
	for _, t := range completed {
		day, ok := DayOf(t.CompletedAt())
		if !ok {
			continue
		}
		d, _ := time.Parse("2006-01-02", day)
		weeks[MonthWeekKey(d)] = struct{}{}
		total++
	}
	return ratio(decimal.NewFromInt(int64(total)), len(weeks))
}

// MonthWeekKey YYYY-M-Wn，n = ceil((日 + 当月 1 日星期几) / 7)
func MonthWeekKey(d time.Time) string {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	week := (d.Day() + int(first.Weekday()) + 6) / 7
	return fmt.Sprintf("%d-%d-W%d", d.Year(), int(d.Month()), week)
}
