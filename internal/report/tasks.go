package report

import (
	"github.com/shopspring/decimal"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// TaskTotals 任务合计
type TaskTotals struct {
	Completas int     `json:"completas"`
	Pendentes int     `json:"pendentes"`
	Pontos    float64 `json:"pontos"`
}

// TaskReport 协作者任务报告
type TaskReport struct {
	PorTipo            []model.CategorySummary `json:"porTipo"`
	PorDia             []model.DailyBucket     `json:"porDia"`
	Semanas            []model.WeekSegment     `json:"semanas"`
	MediaDiaria        float64                 `json:"mediaDiaria"`
	MediaSemanalMensal float64                 `json:"mediaSemanalMensal"`
	Totais             TaskTotals              `json:"totais"`
}

// BuildTaskReport 由已完成与未完成任务构建报告
func BuildTaskReport(completed, pending []model.Task) TaskReport {
	daily := BucketByDay(completed)

	points := decimal.Zero
	for _, t := range completed {
		points = points.Add(decimal.NewFromFloat(t.Points()))
	}
	total, _ := points.Float64()

	return TaskReport{
		PorTipo:            SummarizeByType(completed, pending),
		PorDia:             daily,
		Semanas:            SegmentWeeks(daily),
		MediaDiaria:        DailyAverage(completed),
		MediaSemanalMensal: MonthlyWeekAverage(completed),
		Totais: TaskTotals{
			Completas: len(completed),
			Pendentes: len(pending),
			Pontos:    total,
		},
	}
}
