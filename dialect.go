package sqf

import (
	"strings"

	"github.com/mitranim/sqlp"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DialectPostgres Dialect = `postgres`
	DialectMySQL    Dialect = `mysql`
	DialectSQLite   Dialect = `sqlite`
)

/*
SQL dialect, which decides the placeholder style of reified queries. Rendering
always produces the canonical Postgres form "$N"; `Dialect.Reify` converts it
at the boundary. The zero value behaves like `DialectPostgres`.
*/
type Dialect string

/*
Parses a dialect name. Supported values include:

	* "", "postgres", "postgresql", "pg", "pgx"
	* "mysql", "mariadb"
	* "sqlite", "sqlite3"

Other values produce `ErrUnsupportedDialect`.
*/
func ParseDialect(src string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(src)) {
	case ``, string(DialectPostgres), `postgresql`, `pg`, `pgx`:
		return DialectPostgres, nil
	case string(DialectMySQL), `mariadb`:
		return DialectMySQL, nil
	case string(DialectSQLite), `sqlite3`:
		return DialectSQLite, nil
	default:
		return ``, ErrUnsupportedDialect.while(`parsing dialect`).becausef(
			`unrecognized dialect %q`, src,
		)
	}
}

// Implement `yaml.Unmarshaler`.
func (self *Dialect) UnmarshalYAML(node *yaml.Node) error {
	var src string
	if err := node.Decode(&src); err != nil {
		return errors.WithStack(err)
	}
	val, err := ParseDialect(src)
	if err != nil {
		return err
	}
	*self = val
	return nil
}

// True if the dialect uses "?" placeholders rather than "$N".
func (self Dialect) Positional() bool {
	switch self {
	case ``, DialectPostgres:
		return false
	case DialectMySQL, DialectSQLite:
		return true
	default:
		panic(ErrUnsupportedDialect.while(`choosing placeholder style`).becausef(
			`unrecognized dialect %q`, string(self),
		))
	}
}

/*
Renders the expression and converts it to the placeholder style of the dialect.
For Postgres, the canonical "$N" text is returned as-is. For MySQL and SQLite,
each "$N" becomes "?" and the args are re-emitted in the order of placeholder
appearance, duplicating repeated ones:

	sqf.DialectMySQL.Reify(sqf.Sql(`a = $1 or b = $1 and c = $2`, 10, 20))
	// text: `a = ? or b = ? and c = ?`
	// args: []any{10, 10, 20}

Quoted strings and comments are left alone.
*/
func (self Dialect) Reify(val Expr) (string, []any) {
	var bui Bui
	bui.Expr(val)
	if !self.Positional() {
		return bui.Reify()
	}
	return rebindPositional(bui.String(), bui.Args)
}

func rebindPositional(src string, args []any) (string, []any) {
	if strings.IndexByte(src, ordinalParamPrefix) < 0 {
		return src, args
	}

	text := make([]byte, 0, len(src))
	var out []any
	if len(args) > 0 {
		out = make([]any, 0, len(args))
	}
	walkNodes(`converting placeholders`, src, func(node sqlp.Node) {
		ord, ok := node.(sqlp.NodeOrdinalParam)
		if !ok {
			text = appendNode(text, node)
			return
		}
		text = append(text, '?')
		out = append(out, args[ordinalIn(`converting placeholders`, ord, len(args)).Index()])
	})

	return bytesToMutableString(text), out
}
