/*
SQL fragment composition: an immutable query builder that renders plain SQL
text together with an ordered list of bound parameters. Oriented towards
writing PLAIN SQL in small pieces and letting the library take care of
parameter numbering and argument order.

Key Features

• Fragments: `Txt`, `T` and `Sql` produce `Frag` values. Nested fragments are
inlined, their ordinal parameters such as $1 automatically renumerated, and
their arguments spliced in order.

• Immutable builder: every clause method of `Query` returns a new query and
leaves the receiver untouched, so one base query can be branched freely.

• Uniform expressions: clause arguments are normalized into a small closed
union (`Column`, `Raw`, `Tuple`, `Wrapper`): strings are column names, slices
are parenthesized tuples, fragments and sub-queries are inlined.

• Grouping: `Rollup`, `Cube` and `GroupingSets` nest arbitrarily, such as
"grouping sets (grouping sets (()), rollup ((age)))".

• Fail-fast errors: invalid arguments panic with `Err` at the offending call;
`Catch` converts such panics into errors.

• Dialects: rendering is always in the canonical Postgres form $N;
`Dialect.Reify` converts to "?" placeholders for MySQL and SQLite. See the
"db" sub-package for executing queries.

Examples

	query := sqf.From(`person`).
		Where(sqf.T(`age > {}`, 20)).
		GroupBy(`age`, sqf.Rollup([]string{`last_name`, `first_name`}))

	text, args := query.Reify()
	// text: select * from person where age > $1 group by age, rollup ((last_name, first_name))
	// args: []any{20}
*/
package sqf
