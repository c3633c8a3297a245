// Package querybuilder renders the small set of Postgres statements the
// repositories need, numbering placeholders as $1..$n.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errNoTable   = errors.New("table is required")
	errNoColumns = errors.New("columns are required")
)

// writer accumulates SQL text and positional args.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) str(s string) { w.sql.WriteString(s) }

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.sql.WriteString("$")
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes a fragment that uses '?' for its own args.
func (w *writer) expr(fragment string, args []any) {
	next := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.sql.WriteByte(fragment[i])
	}
}

func (w *writer) where(conds []Condition) {
	if len(conds) == 0 {
		return
	}
	w.str(" WHERE ")
	for i, c := range conds {
		if i > 0 {
			w.str(" AND ")
		}
		c.render(w)
	}
}

func (w *writer) list(prefix string, parts []string) {
	if len(parts) == 0 {
		return
	}
	w.str(prefix)
	w.str(strings.Join(parts, ", "))
}

func (w *writer) done() (string, []any, error) {
	return w.sql.String(), w.args, nil
}

type Condition interface {
	render(w *writer)
}

type condFunc func(w *writer)

func (f condFunc) render(w *writer) { f(w) }

func Eq(column string, value any) Condition {
	return condFunc(func(w *writer) {
		w.str(column + " = ")
		w.bind(value)
	})
}

// In renders column IN (...). An empty list matches nothing.
func In(column string, values []any) Condition {
	return condFunc(func(w *writer) {
		if len(values) == 0 {
			w.str("1=0")
			return
		}
		w.str(column + " IN (")
		for i, v := range values {
			if i > 0 {
				w.str(", ")
			}
			w.bind(v)
		}
		w.str(")")
	})
}

func IsNull(column string) Condition {
	return condFunc(func(w *writer) { w.str(column + " IS NULL") })
}

func Expr(fragment string, args ...any) Condition {
	return condFunc(func(w *writer) { w.expr(fragment, args) })
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
	offset  int
	lock    bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = n
	return b
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.lock = true
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select: %w", errNoColumns)
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select: %w", errNoTable)
	}

	w := &writer{}
	w.list("SELECT ", b.columns)
	w.str(" FROM " + b.table)
	w.where(b.where)
	w.list(" ORDER BY ", b.orderBy)
	if b.limit > 0 {
		w.str(" LIMIT " + strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		w.str(" OFFSET " + strconv.Itoa(b.offset))
	}
	if b.lock {
		w.str(" FOR UPDATE")
	}
	return w.done()
}

type InsertBuilder struct {
	table    string
	columns  []string
	rows     [][]any
	conflict []string
	update   []string
	nothing  bool
	suffix   string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// OnConflictUpdate turns the insert into an upsert that overwrites the
// given columns from EXCLUDED.
func (b *InsertBuilder) OnConflictUpdate(target []string, columns ...string) *InsertBuilder {
	b.conflict = append([]string(nil), target...)
	b.update = append([]string(nil), columns...)
	b.nothing = false
	return b
}

func (b *InsertBuilder) OnConflictDoNothing(target ...string) *InsertBuilder {
	b.conflict = append([]string(nil), target...)
	b.update = nil
	b.nothing = true
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert: %w", errNoTable)
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert: %w", errNoColumns)
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert: values are required")
	}

	w := &writer{}
	w.str("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert: row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			w.str(", ")
		}
		w.str("(")
		for j, v := range row {
			if j > 0 {
				w.str(", ")
			}
			w.bind(v)
		}
		w.str(")")
	}

	if len(b.conflict) > 0 {
		w.str(" ON CONFLICT (" + strings.Join(b.conflict, ", ") + ")")
		switch {
		case b.nothing || len(b.update) == 0:
			w.str(" DO NOTHING")
		default:
			sets := make([]string, 0, len(b.update))
			for _, col := range b.update {
				sets = append(sets, col+" = EXCLUDED."+col)
			}
			w.list(" DO UPDATE SET ", sets)
		}
	}
	if b.suffix != "" {
		w.str(" " + b.suffix)
	}
	return w.done()
}

type assignment struct {
	column string
	value  any
	expr   string
	args   []any
	isExpr bool
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, args: args, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update: %w", errNoTable)
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update: %w", errNoColumns)
	}

	w := &writer{}
	w.str("UPDATE " + b.table + " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.str(", ")
		}
		w.str(s.column + " = ")
		if s.isExpr {
			w.expr(s.expr, s.args)
			continue
		}
		w.bind(s.value)
	}
	w.where(b.where)
	if b.suffix != "" {
		w.str(" " + b.suffix)
	}
	return w.done()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.where = append(b.where, conds...)
	return b
}

// ToSQL refuses to render an unfiltered delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete: %w", errNoTable)
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete: where clause is required")
	}

	w := &writer{}
	w.str("DELETE FROM " + b.table)
	w.where(b.where)
	return w.done()
}
