package persistence

import (
	"fmt"
	"strings"

	"github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/query"
	sharedUtils "github.com/davicafu/academylab/shared/utils"
)

// Columns traduce nombres públicos de campo a columnas. Es la segunda lista
// blanca: un campo sin columna se descarta sin llegar al SQL.
type Columns map[string]string

// BuildWhere traduce el árbol de criterios a SQL con placeholders '?'.
// Devuelve "" si no queda ninguna condición.
func BuildWhere(c domain.Criteria, cols Columns, d Dialect) (string, []interface{}) {
	if c == nil {
		return "", nil
	}
	var args []interface{}
	where := build(c, cols, d, &args)
	return where, args
}

func build(c domain.Criteria, cols Columns, d Dialect, args *[]interface{}) string {
	switch v := c.(type) {
	case domain.Criterion:
		return buildCriterion(v, cols, d, args)
	case domain.CompositeCriteria:
		return buildComposite(v.Operator, v.Criterias, cols, d, args)
	default:
		// criterio desconocido: AND de sus condiciones planas
		var leaves []domain.Criteria
		for _, cond := range c.ToConditions() {
			leaves = append(leaves, cond)
		}
		return buildComposite(domain.OpAnd, leaves, cols, d, args)
	}
}

func buildComposite(op domain.LogicalOperator, children []domain.Criteria, cols Columns, d Dialect, args *[]interface{}) string {
	var parts []string
	for _, child := range children {
		if child == nil {
			continue
		}
		if s := build(child, cols, d, args); s != "" {
			parts = append(parts, s)
		}
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	sep := sharedUtils.Ternary(op == domain.OpOr, " OR ", " AND ")
	return "(" + strings.Join(parts, sep) + ")"
}

func buildCriterion(c domain.Criterion, cols Columns, d Dialect, args *[]interface{}) string {
	col, ok := cols[c.Field]
	if !ok {
		return ""
	}

	switch c.Op {
	case domain.OpILike:
		*args = append(*args, "%"+EscapeLike(fmt.Sprint(c.Value))+"%")
		return d.ILike(col)
	case domain.OpEq, domain.OpGt, domain.OpGte, domain.OpLt, domain.OpLte:
		*args = append(*args, c.Value)
		return fmt.Sprintf("%s %s ?", col, c.Op)
	default:
		return ""
	}
}

// OrderBy resuelve el campo de orden contra la lista blanca de columnas.
func OrderBy(opts query.Options, cols Columns) string {
	col, ok := cols[opts.SortBy]
	if !ok {
		col = cols[query.DefaultSortBy]
	}
	if col == "" {
		col = "created_at"
	}
	return fmt.Sprintf("%s %s", col, sharedUtils.Ternary(opts.Desc(), "DESC", "ASC"))
}

// SelectPage arma "SELECT cols FROM table [WHERE] ORDER BY ... LIMIT ? OFFSET ?"
// y su COUNT(*) equivalente, ya con los placeholders del dialecto.
func SelectPage(d Dialect, table, selectCols, where string, opts query.Options, cols Columns) (string, string) {
	whereSQL := ""
	if where != "" {
		whereSQL = " WHERE " + where
	}

	list := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s, id ASC LIMIT ? OFFSET ?",
		selectCols, table, whereSQL, OrderBy(opts, cols))
	count := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, whereSQL)

	return d.Rebind(list), d.Rebind(count)
}
