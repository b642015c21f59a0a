package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// stripMarks NFD 分解后去掉组合附加符号（重音）
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// FoldText 小写并去除重音，用于不区分大小写/重音的比较
func FoldText(s string) string {
	return stripMarks(strings.ToLower(strings.TrimSpace(s)))
}

// NormalizeHeader 规范化列名：去首尾空白、小写、去重音、标点替换为空格、压缩空白
// 对已规范化的字符串再次调用结果不变
func NormalizeHeader(header string) string {
	s := FoldText(header)
	if s == "" {
		return ""
	}
	s = nonWordRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
