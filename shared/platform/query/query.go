package query

import (
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/davicafu/academylab/shared/domain"
)

// ---------- Paginación / ordenamiento ----------

const (
	DefaultPage   = 1
	DefaultLimit  = 10
	MaxLimit      = 100
	DefaultSortBy = "createdAt"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Options es la paginación ya resuelta. Skip siempre vale (Page-1)*Limit.
type Options struct {
	Page      int
	Limit     int
	Skip      int
	SortBy    string // nombre público del campo, ej. "createdAt"
	SortOrder SortOrder
}

func (o Options) Desc() bool {
	return o.SortOrder == SortDesc
}

// Meta acompaña a las respuestas paginadas.
type Meta struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	TotalPage int `json:"totalPage"`
}

func NewMeta(o Options, total int) Meta {
	totalPage := 0
	if o.Limit > 0 {
		totalPage = int(math.Ceil(float64(total) / float64(o.Limit)))
	}
	return Meta{Page: o.Page, Limit: o.Limit, Total: total, TotalPage: totalPage}
}

// ---------- Esquema de filtrado ----------

// Kind indica cómo se interpreta el valor crudo de un filtro.
type Kind int

const (
	String Kind = iota
	Bool
	Number
	Date // YYYY-MM-DD o RFC3339, filtra el día completo en UTC
)

// Range mapea un parámetro (ej. "minPrice") a una cota sobre un campo.
type Range struct {
	Param string
	Field string
	Op    domain.Operator
}

// Schema es la lista blanca de una entidad: nada fuera de aquí llega al store.
type Schema struct {
	Searchable []string
	Filterable map[string]Kind
	Sortable   []string
	Ranges     []Range
}

var reserved = map[string]bool{
	"page":       true,
	"limit":      true,
	"sortBy":     true,
	"sortOrder":  true,
	"searchTerm": true,
}

var wrappingQuotesRe = regexp.MustCompile(`^["']|["']$`)

// FromValues se queda con el primer valor de cada parámetro.
func FromValues(values url.Values) map[string]string {
	raw := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	return raw
}

// ResolveOptions nunca falla: lo que no se entiende cae al valor por defecto.
func ResolveOptions(raw map[string]string, sortable []string) Options {
	page := positiveInt(raw["page"], DefaultPage)
	limit := min(positiveInt(raw["limit"], DefaultLimit), MaxLimit)
	if page-1 > math.MaxInt/limit {
		page = DefaultPage
	}

	sortBy := DefaultSortBy
	if v := strings.TrimSpace(raw["sortBy"]); v != "" && contains(sortable, v) {
		sortBy = v
	}

	order := SortDesc
	if strings.EqualFold(strings.TrimSpace(raw["sortOrder"]), string(SortAsc)) {
		order = SortAsc
	}

	return Options{
		Page:      page,
		Limit:     limit,
		Skip:      (page - 1) * limit,
		SortBy:    sortBy,
		SortOrder: order,
	}
}

// Resolve devuelve la paginación y el árbol de predicados para la query cruda.
func (s Schema) Resolve(raw map[string]string) (Options, domain.CompositeCriteria) {
	return ResolveOptions(raw, s.Sortable), s.Criteria(raw)
}

// Criteria construye AND(búsqueda, filtros exactos, rangos).
func (s Schema) Criteria(raw map[string]string) domain.CompositeCriteria {
	var parts []domain.Criteria

	if search, ok := s.search(raw["searchTerm"]); ok {
		parts = append(parts, search)
	}

	rangeParams := make(map[string]bool, len(s.Ranges))
	for _, r := range s.Ranges {
		rangeParams[r.Param] = true
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		if reserved[key] || rangeParams[key] {
			continue
		}
		kind, ok := s.Filterable[key]
		if !ok {
			continue
		}
		if c, ok := typedFilter(key, kind, strings.TrimSpace(value)); ok {
			parts = append(parts, c)
		}
	}

	for _, r := range s.Ranges {
		v, ok := raw[r.Param]
		if !ok {
			continue
		}
		if n, ok := parseNumber(v); ok {
			parts = append(parts, domain.Criterion{Field: r.Field, Op: r.Op, Value: n})
		}
	}

	return domain.And(parts...)
}

// search: cada palabra debe aparecer en al menos un campo buscable.
func (s Schema) search(term string) (domain.Criteria, bool) {
	if len(s.Searchable) == 0 {
		return nil, false
	}

	term = wrappingQuotesRe.ReplaceAllString(strings.TrimSpace(term), "")
	words := strings.Fields(term)
	if len(words) == 0 {
		return nil, false
	}

	groups := make([]domain.Criteria, 0, len(words))
	for _, w := range words {
		fields := make([]domain.Criteria, 0, len(s.Searchable))
		for _, f := range s.Searchable {
			fields = append(fields, domain.Criterion{Field: f, Op: domain.OpILike, Value: w})
		}
		groups = append(groups, domain.Or(fields...))
	}
	return domain.And(groups...), true
}

func typedFilter(field string, kind Kind, value string) (domain.Criteria, bool) {
	if value == "" {
		return nil, false
	}

	switch kind {
	case Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, false
		}
		return domain.Eq(field, b), true
	case Number:
		n, ok := parseNumber(value)
		if !ok {
			return nil, false
		}
		return domain.Eq(field, n), true
	case Date:
		day, ok := parseDay(value)
		if !ok {
			return nil, false
		}
		return domain.And(
			domain.Criterion{Field: field, Op: domain.OpGte, Value: day},
			domain.Criterion{Field: field, Op: domain.OpLt, Value: day.AddDate(0, 0, 1)},
		), true
	default:
		return domain.Eq(field, value), true
	}
}

func positiveInt(v string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func parseNumber(v string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func parseDay(v string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
