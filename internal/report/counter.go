package report

import (
	"sort"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// counter 按名称计数，保留首次出现的顺序
type counter struct {
	index map[string]int
	items []model.CountItem
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(name string) {
	i, ok := c.index[name]
	if !ok {
		i = len(c.items)
		c.index[name] = i
		c.items = append(c.items, model.CountItem{Nome: name})
	}
	c.items[i].Total++
}

func (c *counter) get(name string) int {
	if i, ok := c.index[name]; ok {
		return c.items[i].Total
	}
	return 0
}

// sorted 按数量降序，数量相同保持首次出现顺序
func (c *counter) sorted() []model.CountItem {
	out := make([]model.CountItem, len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// top 前 n 项
func (c *counter) top(n int) []model.CountItem {
	out := c.sorted()
	if len(out) > n {
		out = out[:n]
	}
	return out
}
