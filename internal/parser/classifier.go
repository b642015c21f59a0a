package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ClassRule 分类规则：Match 接收已小写的文本
type ClassRule struct {
	Label string
	Match func(lower string) bool
}

// Classifier 按规则顺序把自由文本归入固定分类，先命中者胜出
type Classifier struct {
	Rules []ClassRule
}

// NewClassifier 创建分类器
func NewClassifier(rules []ClassRule) *Classifier {
	return &Classifier{Rules: rules}
}

// Classify 返回第一条命中规则的标签；都不命中时返回首字母大写、其余小写的原文
func (c *Classifier) Classify(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)
	for _, r := range c.Rules {
		if r.Match(lower) {
			return r.Label
		}
	}
	return capitalize(lower)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// anyOf 包含任意一个关键词
func anyOf(keywords ...string) func(string) bool {
	return func(s string) bool {
		for _, kw := range keywords {
			if strings.Contains(s, kw) {
				return true
			}
		}
		return false
	}
}

// allOf 所有条件同时满足
func allOf(preds ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// DefaultActionRules 诉讼类型分类表，更具体的规则必须排在覆盖同一关键词的宽泛规则之前
var DefaultActionRules = []ClassRule{
	{Label: "Retroativo Letra", Match: allOf(anyOf("retroativo"), anyOf("letra"))},
	{Label: "Retroativo Nível", Match: allOf(anyOf("retroativo"), anyOf("nível", "nivel"))},
	{Label: "13° 2018", Match: allOf(anyOf("13"), anyOf("2018"))},
	{Label: "13° 2019", Match: allOf(anyOf("13"), anyOf("2019"))},
	{Label: "Abono de permanência", Match: anyOf("abono", "permanência", "permanencia")},
	{Label: "Nivel", Match: anyOf("nível", "nivel")},
	{Label: "Policard", Match: anyOf("policard", "policar")},
	{Label: "ADTS", Match: anyOf("adts")},
	{Label: "Danos IPERN", Match: allOf(anyOf("danos"), anyOf("ipern"))},
	{Label: "Danos", Match: anyOf("danos")},
	{Label: "Férias", Match: anyOf("terço", "férias", "ferias")},
	{Label: "Letras", Match: anyOf("letras")},
	{Label: "Licença Prêmio", Match: anyOf("prêmio", "premio")},
	{Label: "Piso Salarial", Match: anyOf("piso salarial", "piso")},
	{Label: "Pensão", Match: anyOf("penção", "pensão", "pensao")},
	{Label: "Reajuste Salarial", Match: anyOf("reajuste salarial", "reajsute salarial")},
}

// NewActionClassifier 使用默认诉讼类型分类表
func NewActionClassifier() *Classifier {
	return NewClassifier(DefaultActionRules)
}
