package model

// CategorySummary 按类别汇总的完成/未完成数量
type CategorySummary struct {
	Tipo        string   `json:"tipo"`
	Completas   int      `json:"completas"`
	Incompletas int      `json:"incompletas"`
	Pontos      *float64 `json:"pontos,omitempty"`
}

// Total 完成与未完成之和
func (s CategorySummary) Total() int {
	return s.Completas + s.Incompletas
}

// DailyBucket 按天聚合的数据
type DailyBucket struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Qtd    int     `json:"qtd"`
	Pontos float64 `json:"pontos"`
}

// WeekSegment 以间隔切分的“周”
type WeekSegment struct {
	Semana string        `json:"semana"`
	Dias   []DailyBucket `json:"dias"`
	Media  float64       `json:"media"`
}

// ResponsibleMetric 负责人生产力指标
type ResponsibleMetric struct {
	Responsavel   string  `json:"responsavel"`
	Total         int     `json:"total"`
	DiasAtivos    int     `json:"diasAtivos"`
	SemanasAtivas int     `json:"semanasAtivas"`
	MediaDiaria   float64 `json:"mediaDiaria"`
	MediaSemanal  float64 `json:"mediaSemanal"`
}

// CountItem 通用计数项
type CountItem struct {
	Nome  string `json:"nome"`
	Total int    `json:"total"`
}
