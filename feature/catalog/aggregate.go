package catalog

// Aggregate is an ordered collection of rows unique by RowKey.
// A later row with an existing key replaces the earlier one in place.
type Aggregate struct {
	index map[RowKey]int
	rows  []Row
}

// NewAggregate creates an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{index: make(map[RowKey]int)}
}

// Add inserts or replaces a row and reports whether a row was replaced.
func (a *Aggregate) Add(row Row) bool {
	key := row.Key()
	if i, ok := a.index[key]; ok {
		a.rows[i] = row
		return true
	}
	a.index[key] = len(a.rows)
	a.rows = append(a.rows, row)
	return false
}

// AddAll consumes seq and returns the number of rows read from it.
func (a *Aggregate) AddAll(seq RowSeq) int {
	n := 0
	for row := range seq {
		a.Add(row)
		n++
	}
	return n
}

// Rows returns the rows in first-seen order.
func (a *Aggregate) Rows() []Row {
	return append([]Row(nil), a.rows...)
}

// Len returns the number of unique rows.
func (a *Aggregate) Len() int {
	return len(a.rows)
}
