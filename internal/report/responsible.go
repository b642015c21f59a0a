package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/parser"
)

// NotInformed 负责人未填写时的占位值
const NotInformed = "Não informado"

var notInformedFolded = parser.FoldText(NotInformed)

// IsNotInformed 空白或“Não informado”（忽略大小写与重音）
func IsNotInformed(name string) bool {
	folded := parser.FoldText(name)
	return folded == "" || folded == notInformedFolded
}

type responsibleAcc struct {
	name  string
	total int
	days  map[string]struct{}
	weeks map[string]struct{}
}

// ResponsibleMetrics 按负责人统计活跃天数、活跃周数与日/周平均量；
// 未填写负责人或没有日期的记录不计入，结果按总数降序
func ResponsibleMetrics[T any](records []T, responsible func(T) string, date func(T) *time.Time) []model.ResponsibleMetric {
	index := make(map[string]int)
	var accs []*responsibleAcc

	for _, rec := range records {
		name := strings.TrimSpace(responsible(rec))
		if IsNotInformed(name) {
			continue
		}
		d := date(rec)
		if d == nil {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(accs)
			index[name] = i
			accs = append(accs, &responsibleAcc{
				name:  name,
				days:  make(map[string]struct{}),
				weeks: make(map[string]struct{}),
			})
		}
		acc := accs[i]
		acc.total++
		acc.days[d.Format("2006-01-02")] = struct{}{}
		acc.weeks[YearWeekKey(*d)] = struct{}{}
	}

	metrics := make([]model.ResponsibleMetric, 0, len(accs))
	for _, acc := range accs {
		total := decimal.NewFromInt(int64(acc.total))
		metrics = append(metrics, model.ResponsibleMetric{
			Responsavel:   acc.name,
			Total:         acc.total,
			DiasAtivos:    len(acc.days),
			SemanasAtivas: len(acc.weeks),
			MediaDiaria:   ratio(total, len(acc.days)),
			MediaSemanal:  ratio(total, len(acc.weeks)),
		})
	}
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].Total > metrics[j].Total
	})
	return metrics
}

// YearWeekKey YYYY-Www，ww = ceil((年内第几天 + 1 月 1 日星期几) / 7)，星期日为 0
func YearWeekKey(d time.Time) string {
	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, d.Location())
	week := (d.YearDay() + int(jan1.Weekday()) + 6) / 7
	return fmt.Sprintf("%d-W%02d", d.Year(), week)
}

// AnalysisMetrics 按“分析负责人”统计
func AnalysisMetrics(filings []model.Filing) []model.ResponsibleMetric {
	return ResponsibleMetrics(filings,
		func(f model.Filing) string { return f.RespAnalise },
		func(f model.Filing) *time.Time { return f.Data },
	)
}

// FilingMetrics 按“起诉负责人”统计
func FilingMetrics(filings []model.Filing) []model.ResponsibleMetric {
	return ResponsibleMetrics(filings,
		func(f model.Filing) string { return f.RespPeticao },
		func(f model.Filing) *time.Time { return f.Data },
	)
}
