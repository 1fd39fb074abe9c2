package domain

// ---------------- Operadores ----------------

type Operator string

const (
	OpEq  Operator = "="
	OpGt  Operator = ">"
	OpGte Operator = ">="
	OpLt  Operator = "<"
	OpLte Operator = "<="
	// OpILike es un "contiene" sin distinguir mayúsculas. El valor va sin comodines,
	// el adaptador SQL los añade y escapa.
	OpILike Operator = "ILIKE"
)

type LogicalOperator string

const (
	OpAnd LogicalOperator = "AND"
	OpOr  LogicalOperator = "OR"
)

// ---------------- Criterion ----------------

// Criterion describe una condición neutral de filtrado. Field es el nombre
// público del campo (ej. "createdAt"), no la columna.
type Criterion struct {
	Field string
	Op    Operator
	Value interface{}
}

// Un Criterion es también un Criteria hoja.
func (c Criterion) ToConditions() []Criterion {
	return []Criterion{c}
}

// ---------------- Criteria interface ----------------

// Criteria permite transformar filtros a condiciones neutrales
type Criteria interface {
	ToConditions() []Criterion
}

// ---------------- Composite Criteria ----------------

type CompositeCriteria struct {
	Operator  LogicalOperator
	Criterias []Criteria
}

// ToConditions aplana el árbol. Se pierde la semántica OR, así que sólo
// sirve para inspección; los adaptadores recorren el árbol.
func (c CompositeCriteria) ToConditions() []Criterion {
	var all []Criterion
	for _, crit := range c.Criterias {
		all = append(all, crit.ToConditions()...)
	}
	return all
}

// IsEmpty indica si el árbol no contiene ninguna condición.
func (c CompositeCriteria) IsEmpty() bool {
	return len(c.ToConditions()) == 0
}

// ---------------- Helpers ----------------

// And crea un CompositeCriteria con operador AND
func And(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpAnd, Criterias: criterias}
}

// Or crea un CompositeCriteria con operador OR
func Or(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpOr, Criterias: criterias}
}

// Eq atajo para igualdad exacta.
func Eq(field string, value interface{}) Criterion {
	return Criterion{Field: field, Op: OpEq, Value: value}
}
