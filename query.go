package sqf

/*
Zero-configured query. Convenient entry point for chains:

	sqf.Sq.From(`person`).GroupBy(`age`)

Because `Query` is immutable, sharing this value is safe.
*/
var Sq Query

// Starts a query with the given configuration.
func New(conf Config) Query { return Query{conf: conf} }

// Shortcut for `Sq.From(vals...)`.
func From(vals ...any) Query { return Sq.From(vals...) }

// Shortcut for `Sq.Select(vals...)`.
func Select(vals ...any) Query { return Sq.Select(vals...) }

/*
Immutable query builder. Each clause method returns a new query whose clause
list is the receiver's list extended with the new normalized entries; the
receiver is never modified, and other clauses are shared between the two.
This makes it safe to branch several queries from one base:

	base := sqf.From(`person`)
	one := base.GroupBy(`age`)
	two := base.GroupBy(sqf.Rollup(`last_name`))
	// base: select * from person
	// one:  select * from person group by age
	// two:  select * from person group by rollup (last_name)

Clause methods validate every argument before returning. On invalid input they
panic with `Err` at the offending call, never producing a degraded query. Use
`Catch` to convert such panics into errors.

Rendering happens only in `Query.AppendExpr` and its shortcuts such as
`Query.Frag` and `Query.Reify`. A query is itself an `Expr`; when used as a
clause argument or template value, it's inlined as a parenthesized sub-query.
*/
type Query struct {
	conf     Config
	distinct bool
	sel      []Expression
	from     []Expression
	joins    []join
	where    []Expression
	groupBy  []Expression
	having   []Expression
	orderBy  []Expr
	limit    optional
	offset   optional
}

type optional struct {
	val any
	ok  bool
}

// Returns the configuration the query renders with.
func (self Query) Config() Config { return self.conf }

// Returns a copy with the given configuration.
func (self Query) With(conf Config) Query {
	self.conf = conf
	return self
}

/*
Adds entries to the select list. Without any entries, the query selects "*".
Entries are normalized like `GroupBy` arguments.
*/
func (self Query) Select(vals ...any) Query {
	self.sel = extend(self.sel, normalizeArgs(`Select`, vals))
	return self
}

// Returns a copy that renders "select distinct".
func (self Query) Distinct() Query {
	self.distinct = true
	return self
}

/*
Adds entries to the "from" list. Entries are normalized like `GroupBy`
arguments. A `Query` becomes a parenthesized sub-query; use `Txt` or `Sql` to
add an alias.
*/
func (self Query) From(vals ...any) Query {
	self.from = extend(self.from, normalizeArgs(`From`, vals))
	return self
}

// Adds an inner join. Conditions are handled like `Where` arguments and are
// optional.
func (self Query) Join(target any, conds ...any) Query {
	return self.join(joinInner, `Join`, target, conds)
}

// Adds a left join. See `Query.Join`.
func (self Query) LeftJoin(target any, conds ...any) Query {
	return self.join(joinLeft, `LeftJoin`, target, conds)
}

// Adds a right join. See `Query.Join`.
func (self Query) RightJoin(target any, conds ...any) Query {
	return self.join(joinRight, `RightJoin`, target, conds)
}

// Adds a full join. See `Query.Join`.
func (self Query) FullJoin(target any, conds ...any) Query {
	return self.join(joinFull, `FullJoin`, target, conds)
}

// Adds a cross join, which has no conditions.
func (self Query) CrossJoin(target any) Query {
	return self.join(joinCross, `CrossJoin`, target, nil)
}

func (self Query) join(kind joinKind, while string, target any, conds []any) Query {
	val := join{
		kind:   kind,
		target: normalizeOne(while, 0, target),
		on:     normalizeConds(while, 1, conds),
	}
	self.joins = extend(self.joins, []join{val})
	return self
}

/*
Adds filter conditions, joined with "and". Besides the usual expression shapes,
each argument may be a map with string keys or a struct with "db" tags, which
expands into "col = $N" conditions:

	sqf.From(`person`).Where(map[string]any{`age`: 20, `name`: nil})
	// select * from person where age = $1 and name is null
*/
func (self Query) Where(vals ...any) Query {
	self.where = extend(self.where, normalizeConds(`Where`, 0, vals))
	return self
}

/*
Adds entries to the "group by" list. Accepts:

	* strings, rendered verbatim as column names
	* fragments from `Txt`, `T`, `Sql` or `Verbatim`, inlined with their args
	* slices and arrays, rendered as parenthesized tuples, "()" when empty
	* `Rollup`, `Cube`, `GroupingSets`, arbitrarily nested
	* sub-queries

Several arguments in one call are separate entries, exactly like several calls
with one argument each:

	sqf.From(`person`).GroupBy(`age`, sqf.Rollup(`last_name`), []string{})
	// select * from person group by age, rollup (last_name), ()
*/
func (self Query) GroupBy(vals ...any) Query {
	self.groupBy = extend(self.groupBy, normalizeArgs(`GroupBy`, vals))
	return self
}

// Adds "having" conditions. See `Query.Where`.
func (self Query) Having(vals ...any) Query {
	self.having = extend(self.having, normalizeConds(`Having`, 0, vals))
	return self
}

/*
Adds entries to the "order by" list. Entries may be `Ord` values created by
`Asc`, `Desc` or `ParseOrd`; other values are normalized like `GroupBy`
arguments.
*/
func (self Query) OrderBy(vals ...any) Query {
	self.orderBy = extend(self.orderBy, normalizeOrds(vals))
	return self
}

/*
Sets the "limit" clause, replacing any previous limit. The value becomes a bound
parameter unless it's an `Expr` such as a fragment.
*/
func (self Query) Limit(val any) Query {
	self.limit = optional{val, true}
	return self
}

// Sets the "offset" clause, replacing any previous offset. See `Query.Limit`.
func (self Query) Offset(val any) Query {
	self.offset = optional{val, true}
	return self
}

/*
Concatenates the clauses of the other queries after the clauses of the
receiver, in argument order. "distinct" is set if any query has it. The last
limit and offset among the queries win. The configuration of the receiver is
kept.
*/
func (self Query) Extend(others ...Query) Query {
	for _, val := range others {
		self.distinct = self.distinct || val.distinct
		self.sel = extend(self.sel, val.sel)
		self.from = extend(self.from, val.from)
		self.joins = extend(self.joins, val.joins)
		self.where = extend(self.where, val.where)
		self.groupBy = extend(self.groupBy, val.groupBy)
		self.having = extend(self.having, val.having)
		self.orderBy = extend(self.orderBy, val.orderBy)
		if val.limit.ok {
			self.limit = val.limit
		}
		if val.offset.ok {
			self.offset = val.offset
		}
	}
	return self
}

/*
Copy-on-write append. The result never shares writable capacity with the
input, so extending the same list twice yields two independent lists.
*/
func extend[A any](prev, next []A) []A {
	if len(next) == 0 {
		return prev
	}
	return append(clip(prev), next...)
}

func normalizeOrds(vals []any) []Expr {
	if len(vals) == 0 {
		return nil
	}
	out := make([]Expr, len(vals))
	for ind, val := range vals {
		switch val := val.(type) {
		case Ord:
			out[ind] = val
		default:
			out[ind] = normalizeOne(`OrderBy`, ind, val)
		}
	}
	return out
}

type joinKind byte

const (
	joinInner joinKind = iota
	joinLeft
	joinRight
	joinFull
	joinCross
)

func (self joinKind) keyword() string {
	switch self {
	case joinLeft:
		return `left join`
	case joinRight:
		return `right join`
	case joinFull:
		return `full join`
	case joinCross:
		return `cross join`
	default:
		return `join`
	}
}

type join struct {
	kind   joinKind
	target Expression
	on     []Expression
}

func (self join) appendTo(bui *Bui) {
	bui.Keyword(self.kind.keyword())
	bui.Expression(self.target)
	appendConds(bui, `on`, self.on)
}
