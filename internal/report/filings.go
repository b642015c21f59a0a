package report

import (
	"sort"
	"strings"
	"time"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/parser"
)

// TotalLabel 汇总行名称
const TotalLabel = "TOTAL"

// FilingOptions 起诉状报告选项，From/To 为闭区间（按天）
type FilingOptions struct {
	From *time.Time
	To   *time.Time
}

// MonthCount 按月计数
type MonthCount struct {
	Mes   string `json:"mes"` // YYYY-MM
	Total int    `json:"total"`
}

// FilingReport 起诉状报告
type FilingReport struct {
	Total              int                       `json:"total"`
	DistinctPhases     int                       `json:"distinctPhases"`
	DistinctLocalities int                       `json:"distinctLocalities"`
	ByAnalysis         []model.CountItem         `json:"byAnalysis"`
	ByFiling           []model.CountItem         `json:"byFiling"`
	ByLocality         []model.CountItem         `json:"byLocality"`
	ByAction           []model.CountItem         `json:"byAction"`
	ByMonth            []MonthCount              `json:"byMonth"`
	AnalysisMetrics    []model.ResponsibleMetric `json:"analysisMetrics"`
	FilingMetrics      []model.ResponsibleMetric `json:"filingMetrics"`
}

// FilterFilings 按日期区间过滤；设置了任一边界时没有日期的记录被丢弃
func FilterFilings(filings []model.Filing, opts FilingOptions) []model.Filing {
	if opts.From == nil && opts.To == nil {
		return filings
	}
	var from, to string
	if opts.From != nil {
		from = parser.DayKey(*opts.From)
	}
	if opts.To != nil {
		to = parser.DayKey(*opts.To)
	}

	out := make([]model.Filing, 0, len(filings))
	for _, f := range filings {
		if f.Data == nil {
			continue
		}
		day := parser.DayKey(*f.Data)
		if from != "" && day < from {
			continue
		}
		if to != "" && day > to {
			continue
		}
		out = append(out, f)
	}
	return out
}

// BuildFilingReport 构建起诉状报告
func BuildFilingReport(filings []model.Filing, opts FilingOptions) FilingReport {
	filings = FilterFilings(filings, opts)

	analysis := newCounter()
	filing := newCounter()
	locality := newCounter()
	action := newCounter()
	months := make(map[string]int)
	phases := make(map[string]struct{})
	localities := make(map[string]struct{})

	for _, f := range filings {
		resp := strings.TrimSpace(f.RespAnalise)
		if resp == "" {
			resp = NotInformed
		}
		analysis.add(resp)

		if r := strings.TrimSpace(f.RespPeticao); !IsNotInformed(r) {
			filing.add(r)
		}
		if l := strings.TrimSpace(f.Localidade); l != "" {
			localities[l] = struct{}{}
			if !IsNotInformed(l) && parser.FoldText(l) != "estadual" {
				locality.add(l)
			}
		}
		if a := strings.TrimSpace(f.Acao); !IsNotInformed(a) {
			action.add(a)
		}
		if p := strings.TrimSpace(f.Fase); p != "" {
			phases[p] = struct{}{}
		}
		if f.Data != nil {
			months[f.Data.Format("2006-01")]++
		}
	}

	byAnalysis := analysis.sorted()
	byAnalysis = append(byAnalysis, model.CountItem{Nome: TotalLabel, Total: len(filings)})

	byMonth := make([]MonthCount, 0, len(months))
	for m, n := range months {
		byMonth = append(byMonth, MonthCount{Mes: m, Total: n})
	}
	sort.Slice(byMonth, func(i, j int) bool {
		return byMonth[i].Mes < byMonth[j].Mes
	})

	return FilingReport{
		Total:              len(filings),
		DistinctPhases:     len(phases),
		DistinctLocalities: len(localities),
		ByAnalysis:         byAnalysis,
		ByFiling:           filing.sorted(),
		ByLocality:         locality.sorted(),
		ByAction:           action.sorted(),
		ByMonth:            byMonth,
		AnalysisMetrics:    AnalysisMetrics(filings),
		FilingMetrics:      FilingMetrics(filings),
	}
}
