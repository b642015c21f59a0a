package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// NoCategory 缺少类别时使用的标签
const NoCategory = "Sem tipo"

// GroupByCategory 按类别统计完成/未完成数量，points 非 nil 时累计完成记录的分值；
// 结果按总数降序，总数相同按首次出现顺序
func GroupByCategory[T any](completed, pending []T, category func(T) string, points func(T) float64) []model.CategorySummary {
	index := make(map[string]int)
	summaries := make([]model.CategorySummary, 0)
	sums := make([]decimal.Decimal, 0)

	slot := func(rec T) int {
		tipo := category(rec)
		if strings.TrimSpace(tipo) == "" {
			tipo = NoCategory
		}
		i, ok := index[tipo]
		if !ok {
			i = len(summaries)
			index[tipo] = i
			summaries = append(summaries, model.CategorySummary{Tipo: tipo})
			sums = append(sums, decimal.Zero)
		}
		return i
	}

	for _, rec := range completed {
		i := slot(rec)
		summaries[i].Completas++
		if points != nil {
			sums[i] = sums[i].Add(decimal.NewFromFloat(points(rec)))
		}
	}
	for _, rec := range pending {
		summaries[slot(rec)].Incompletas++
	}

	if points != nil {
		for i := range summaries {
			p, _ := sums[i].Float64()
			summaries[i].Pontos = &p
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Total() > summaries[j].Total()
	})
	return summaries
}

// SummarizeByType 任务按 task 类别汇总
func SummarizeByType(completed, pending []model.Task) []model.CategorySummary {
	return GroupByCategory(completed, pending,
		func(t model.Task) string { return t.Task },
		func(t model.Task) float64 { return t.Points() },
	)
}
