package model

import (
	"strings"
	"time"
)

// Field 规范字段标识（与原始列名的措辞/重音/标点无关）
type Field string

// ValueKind 字段值类型
type ValueKind int

const (
	KindString ValueKind = iota
	KindDate
	KindNumber
	KindList
)

// Value 规范字段值（按 Kind 取对应载荷，日期/数值为 nil 表示“存在但无法解析”）
type Value struct {
	Kind ValueKind
	Str  string
	Date *time.Time
	Num  *float64
	List []string
}

// StringValue 构造字符串值
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// DateValue 构造日期值，ok=false 时为空日期
func DateValue(t time.Time, ok bool) Value {
	if !ok {
		return Value{Kind: KindDate}
	}
	return Value{Kind: KindDate, Date: &t}
}

// NumberValue 构造数值值，ok=false 时为空数值
func NumberValue(n float64, ok bool) Value {
	if !ok {
		return Value{Kind: KindNumber}
	}
	return Value{Kind: KindNumber, Num: &n}
}

// ListValue 构造列表值
func ListValue(items []string) Value {
	return Value{Kind: KindList, List: items}
}

// Record 一行表格映射后的规范记录
type Record struct {
	SheetName string
	RowNo     int
	Fields    map[Field]Value
}

// NewRecord 创建空记录
func NewRecord(sheetName string, rowNo int) *Record {
	return &Record{
		SheetName: sheetName,
		RowNo:     rowNo,
		Fields:    make(map[Field]Value),
	}
}

// Set 设置字段值
func (r *Record) Set(f Field, v Value) {
	r.Fields[f] = v
}

// Has 字段是否存在
func (r *Record) Has(f Field) bool {
	_, ok := r.Fields[f]
	return ok
}

// String 读取字符串字段，不存在或类型不符时返回空串
func (r *Record) String(f Field) string {
	v, ok := r.Fields[f]
	if !ok || v.Kind != KindString {
		return ""
	}
	return v.Str
}

// Date 读取日期字段
func (r *Record) Date(f Field) *time.Time {
	v, ok := r.Fields[f]
	if !ok || v.Kind != KindDate {
		return nil
	}
	return v.Date
}

// Number 读取数值字段
func (r *Record) Number(f Field) *float64 {
	v, ok := r.Fields[f]
	if !ok || v.Kind != KindNumber {
		return nil
	}
	return v.Num
}

// List 读取列表字段
func (r *Record) List(f Field) []string {
	v, ok := r.Fields[f]
	if !ok || v.Kind != KindList {
		return nil
	}
	return v.List
}

// HasText 字段是否为非空白字符串
func (r *Record) HasText(f Field) bool {
	return strings.TrimSpace(r.String(f)) != ""
}
