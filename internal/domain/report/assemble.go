package report

// Summable rows can be folded into subtotals
type Summable[T any] interface {
	Plus(T) T
}

// Group holds the rows of one category and their subtotal
type Group[T Summable[T]] struct {
	Category string `json:"category"`
	Rows     []T    `json:"rows"`
	Subtotal T      `json:"subtotal"`
}

// Assembly is a category-grouped report body
type Assembly[T Summable[T]] struct {
	Groups     []Group[T] `json:"groups"`
	GrandTotal T          `json:"grand_total"`
}

// Assemble groups rows by category in first-seen order. Subtotals and the
// grand total are folded with Plus over the real rows, so rates derived in
// Plus are recomputed from sums rather than averaged.
func Assemble[T Summable[T]](rows []T, categoryOf func(T) string) Assembly[T] {
	var out Assembly[T]
	index := make(map[string]int)
	for _, row := range rows {
		cat := categoryOf(row)
		i, ok := index[cat]
		if !ok {
			i = len(out.Groups)
			index[cat] = i
			out.Groups = append(out.Groups, Group[T]{Category: cat})
		}
		g := &out.Groups[i]
		g.Rows = append(g.Rows, row)
		g.Subtotal = g.Subtotal.Plus(row)
		out.GrandTotal = out.GrandTotal.Plus(row)
	}
	return out
}

// Flatten lays the assembly out as a table: each group's rows followed by
// its subtotal row, then the grand-total row. The label callbacks decorate
// the pseudo-rows.
func (a Assembly[T]) Flatten(subtotal func(category string, sum T) T, total func(sum T) T) []T {
	out := make([]T, 0, a.size())
	for _, g := range a.Groups {
		out = append(out, g.Rows...)
		out = append(out, subtotal(g.Category, g.Subtotal))
	}
	return append(out, total(a.GrandTotal))
}

func (a Assembly[T]) size() int {
	n := 1
	for _, g := range a.Groups {
		n += len(g.Rows) + 1
	}
	return n
}

// SubtotalLabel is the label of a category's subtotal row
func SubtotalLabel(category string) string {
	return category + " 소계"
}

// GrandTotalLabel is the label of the grand-total row
const GrandTotalLabel = "합계"
