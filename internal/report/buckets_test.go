package report

import (
	"testing"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

func TestBucketByDay(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("A", "2024-01-02 10:00:00", ptr(2)),
		task("A", "2024-01-01T23:59:59-03:00", ptr(1)),
		task("B", "2024-01-02 18:30:00", nil),
		task("B", "", ptr(9)),
		task("B", "02/01/2024", ptr(9)),
		task("B", "2024-13-45 00:00:00", ptr(9)),
	}

	got := BucketByDay(tasks)
	if len(got) != 2 {
		t.Fatalf("buckets want=2 got=%d (%v)", len(got), got)
	}
	// 字面日期，不做时区换算
	if got[0].Date != "2024-01-01" || got[0].Qtd != 1 || got[0].Pontos != 1 {
		t.Fatalf("first bucket unexpected: %+v", got[0])
	}
	if got[1].Date != "2024-01-02" || got[1].Qtd != 2 || got[1].Pontos != 2 {
		t.Fatalf("second bucket unexpected: %+v", got[1])
	}
}

func TestDayOf(t *testing.T) {
	t.Parallel()

	if d, ok := DayOf("2024-02-29T08:00:00Z"); !ok || d != "2024-02-29" {
		t.Fatalf("DayOf leap day want=2024-02-29 got=%s ok=%v", d, ok)
	}
	if _, ok := DayOf("2023-02-29"); ok {
		t.Fatalf("DayOf must reject impossible dates")
	}
}
