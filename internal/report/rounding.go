package report

import "github.com/shopspring/decimal"

// round2 保留两位小数（四舍五入，远离零）
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// ratio total/n 保留两位小数，n 为 0 时返回 0
func ratio(total decimal.Decimal, n int) float64 {
	if n == 0 {
		return 0
	}
	f, _ := total.DivRound(decimal.NewFromInt(int64(n)), 2).Float64()
	return f
}
