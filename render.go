package sqf

/*
Implement the `Expr` interface, making this a sub-expression. Renders every
clause in order, omitting empty ones along with their keywords:

	select [distinct] <list|*> from <list> <joins> where <conds>
	group by <list> having <conds> order by <list> limit <n> offset <n>

Placeholders are always in the canonical "$N" form; see `Query.Reify` for
dialect conversion.
*/
func (self Query) AppendExpr(text []byte, args []any) ([]byte, []any) {
	bui := Bui{Text: text, Args: args, Case: self.conf.KeywordCase}
	self.appendTo(&bui)
	return bui.Get()
}

// Implement the `Appender` interface, sometimes allowing more efficient text
// encoding.
func (self Query) Append(text []byte) []byte { return exprAppend(self, text) }

// Implement the `fmt.Stringer` interface for debug purposes.
func (self Query) String() string { return exprString(self) }

// Renders the query into a `Frag` with canonical "$N" placeholders.
func (self Query) Frag() Frag {
	bui := Bui{Case: self.conf.KeywordCase}
	self.appendTo(&bui)
	return bui.Frag()
}

/*
Renders the query into text and args for the configured dialect, ready to be
passed to a database driver. Panics with `ErrUnsupportedDialect` if the
configured dialect is invalid.
*/
func (self Query) Reify() (string, []any) {
	return self.conf.Dialect.Reify(self)
}

// Same as `Query.Reify` but returns panics as errors.
func (self Query) TryReify() (text string, args []any, err error) {
	defer rec(&err)
	text, args = self.Reify()
	return
}

func (self Query) subFrag() Frag {
	bui := Bui{Case: self.conf.KeywordCase}
	bui.Str(`(`)
	self.appendTo(&bui)
	bui.Str(`)`)
	return bui.Frag()
}

func (self Query) appendTo(bui *Bui) {
	bui.Keyword(`select`)
	if self.distinct {
		bui.Keyword(`distinct`)
	}
	if len(self.sel) > 0 {
		bui.Expressions(self.sel)
	} else {
		bui.Str(`*`)
	}

	appendList(bui, `from`, self.from)
	for _, val := range self.joins {
		val.appendTo(bui)
	}
	appendConds(bui, `where`, self.where)
	appendList(bui, `group by`, self.groupBy)
	appendConds(bui, `having`, self.having)

	if len(self.orderBy) > 0 {
		bui.Keyword(`order by`)
		bui.Join(`,`, self.orderBy...)
	}

	if self.limit.ok {
		bui.Keyword(`limit`)
		bui.Any(self.limit.val)
	}
	if self.offset.ok {
		bui.Keyword(`offset`)
		bui.Any(self.offset.val)
	}
}

func appendList(bui *Bui, keyword string, vals []Expression) {
	if len(vals) == 0 {
		return
	}
	bui.Keyword(keyword)
	bui.Expressions(vals)
}

/*
A single condition is appended as-is. Multiple conditions are parenthesized and
joined with "and", so that conditions containing "or" keep their meaning.
*/
func appendConds(bui *Bui, keyword string, vals []Expression) {
	if len(vals) == 0 {
		return
	}
	bui.Keyword(keyword)

	if len(vals) == 1 {
		bui.Expression(vals[0])
		return
	}

	for ind, val := range vals {
		if ind > 0 {
			bui.Keyword(`and`)
		}
		bui.Str(`(`)
		bui.Expression(val)
		bui.Str(`)`)
	}
}
