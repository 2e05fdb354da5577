package db

import "fmt"

// SearchQuery builds the dynamic WHERE clauses repositories use for list and
// search endpoints. Predicates are appended with positional placeholders so
// the count and data queries share one argument slice.
type SearchQuery struct {
	table   string
	cols    string
	where   string
	args    []interface{}
	idx     int
	orderBy string
}

func NewSearchQuery(table, cols string) *SearchQuery {
	return &SearchQuery{table: table, cols: cols, idx: 1}
}

// Add appends a raw predicate. The clause must reference placeholders via
// NextIdx before calling, or use Eq/ILike helpers instead.
func (q *SearchQuery) Add(clause string, args ...interface{}) {
	q.where += " AND " + clause
	q.args = append(q.args, args...)
	q.idx += len(args)
}

// Eq appends an exact-match predicate on the column.
func (q *SearchQuery) Eq(column string, value interface{}) {
	q.where += fmt.Sprintf(" AND %s = $%d", column, q.idx)
	q.args = append(q.args, value)
	q.idx++
}

// ILike appends a case-insensitive substring predicate.
func (q *SearchQuery) ILike(column, value string) {
	q.where += fmt.Sprintf(" AND %s ILIKE $%d", column, q.idx)
	q.args = append(q.args, "%"+value+"%")
	q.idx++
}

// Gte appends a >= predicate, used for date range lower bounds.
func (q *SearchQuery) Gte(column string, value interface{}) {
	q.where += fmt.Sprintf(" AND %s >= $%d", column, q.idx)
	q.args = append(q.args, value)
	q.idx++
}

// Lte appends a <= predicate, used for date range upper bounds.
func (q *SearchQuery) Lte(column string, value interface{}) {
	q.where += fmt.Sprintf(" AND %s <= $%d", column, q.idx)
	q.args = append(q.args, value)
	q.idx++
}

// NextIdx returns the next placeholder index for raw Add clauses.
func (q *SearchQuery) NextIdx() int { return q.idx }

// OrderBy sets the ORDER BY clause (without the keyword).
func (q *SearchQuery) OrderBy(orderBy string) { q.orderBy = orderBy }

func (q *SearchQuery) CountSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1%s", q.table, q.where)
}

func (q *SearchQuery) CountArgs() []interface{} { return q.args }

func (q *SearchQuery) DataSQL(limit, offset int) string {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1%s", q.cols, q.table, q.where)
	if q.orderBy != "" {
		sql += " ORDER BY " + q.orderBy
	}
	sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", q.idx, q.idx+1)
	return sql
}

func (q *SearchQuery) DataArgs(limit, offset int) []interface{} {
	result := make([]interface{}, len(q.args)+2)
	copy(result, q.args)
	result[len(q.args)] = limit
	result[len(q.args)+1] = offset
	return result
}
