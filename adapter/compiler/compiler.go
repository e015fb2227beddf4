// Package compiler contains the default [domain.Compiler] implementation. It
// dispatches once on expression shape - externally supplied function, string
// or primitive whole-item search, or object expression - and builds a typed,
// reusable [Program]. The operator-map versus nested-object decision is made
// here, at compile time, never re-sniffed per item.
package compiler

import (
	"regexp"
	"strings"
	"time"

	"github.com/mcabreradev/filter-sub003/adapter/fieldnavigator"
	"github.com/mcabreradev/filter-sub003/adapter/operator"
	"github.com/mcabreradev/filter-sub003/adapter/pattern"
	"github.com/mcabreradev/filter-sub003/domain"
	"github.com/mcabreradev/filter-sub003/pkg/structure"
)

// recognized lists the operator keys that make a map an operator expression.
// Dollar keys outside this set alongside recognized ones are ignored for
// forward compatibility.
var recognized = map[string]struct{}{
	"$eq": {}, "$ne": {}, "$gt": {}, "$gte": {}, "$lt": {}, "$lte": {},
	"$between": {},
	"$in":      {}, "$nin": {}, "$contains": {}, "$size": {}, "$exists": {},
	"$startsWith": {}, "$endsWith": {}, "$regex": {}, "$match": {},
	"$near": {}, "$geoBox": {}, "$geoPolygon": {},
	"$recent": {}, "$upcoming": {}, "$dayOfWeek": {}, "$timeOfDay": {},
	"$age": {}, "$isWeekday": {}, "$isWeekend": {}, "$isBefore": {}, "$isAfter": {},
}

// Compiler implements [domain.Compiler].
type Compiler struct {
	nav  domain.FieldNavigator
	eval *operator.Evaluator
	deep domain.DeepComparer
}

// NewCompiler returns a new implementation of [domain.Compiler].
func NewCompiler(options ...Option) *Compiler {
	c := &Compiler{
		nav: fieldnavigator.NewFieldNavigator(),
	}
	for _, option := range options {
		option(c)
	}
	if c.eval == nil {
		c.eval = operator.NewEvaluator()
	}
	if c.deep == nil {
		c.deep = c.eval.Deep()
	}
	return c
}

// Compile implements [domain.Compiler].
func (c *Compiler) Compile(expr any, cfg domain.Config) (domain.Predicate, error) {
	p, err := c.Program(expr, cfg)
	if err != nil {
		return nil, err
	}
	return p.Predicate(), nil
}

// Program compiles an expression into its typed form. The program owns a copy
// of cfg.
func (c *Compiler) Program(expr any, cfg domain.Config) (*Program, error) {
	p := &Program{
		cfg:  cfg,
		deps: &deps{nav: c.nav, deep: c.deep, eval: c.eval},
	}

	if fn, ok := asPredicate(expr); ok {
		p.kind = kindFunc
		p.fn = fn
		return p, nil
	}

	i, l, err := structure.Seq2(expr)
	if err != nil {
		// Primitive or nil: whole-item search.
		p.kind = kindSearch
		p.search = expr
		return p, nil
	}

	p.kind = kindObject
	mapping := make(map[string]any, l)
	for k, v := range i {
		mapping[k] = v
	}

	for key, value := range mapping {
		switch key {
		case "$and":
			lo, err := c.makeLogicOp(And, key, value, cfg)
			if err != nil {
				return nil, err
			}
			p.logic = append(p.logic, lo)
		case "$or":
			lo, err := c.makeLogicOp(Or, key, value, cfg)
			if err != nil {
				return nil, err
			}
			p.logic = append(p.logic, lo)
		case "$not":
			sub, err := c.Program(value, cfg)
			if err != nil {
				return nil, err
			}
			p.logic = append(p.logic, LogicOp{Type: Not, Sub: []*Program{sub}})
		default:
			if strings.HasPrefix(key, "$") {
				return nil, domain.ErrUnknownOperator{Operator: key}
			}
			rules, err := c.makeFieldRules(nil, key, value, cfg)
			if err != nil {
				return nil, err
			}
			p.rules = append(p.rules, rules...)
		}
	}
	return p, nil
}

func (c *Compiler) makeLogicOp(typ uint8, name string, value any, cfg domain.Config) (LogicOp, error) {
	lo := LogicOp{Type: typ}
	items, ok := structure.Items(value)
	if !ok {
		return lo, domain.ErrOperatorArgument{Operator: name, Want: "list", Actual: value}
	}
	lo.Sub = make([]*Program, 0, len(items))
	for _, item := range items {
		sub, err := c.Program(item, cfg)
		if err != nil {
			return lo, err
		}
		lo.Sub = append(lo.Sub, sub)
	}
	return lo, nil
}

func (c *Compiler) makeFieldRules(prefix []string, field string, value any, cfg domain.Config) ([]FieldRule, error) {
	tail, err := c.nav.GetAddress(field)
	if err != nil {
		return nil, err
	}
	addr := append(append([]string{}, prefix...), tail...)

	switch t := value.(type) {
	case *regexp.Regexp:
		return []FieldRule{{Addr: addr, Conds: []Cond{{Op: Match, Arg: pattern.FromRegexp(t)}}}}, nil
	case time.Time:
		return []FieldRule{{Addr: addr, Conds: []Cond{{Op: Eq, Arg: t}}}}, nil
	}
	if _, ok := asPredicate(value); ok {
		// A function value signals "don't constrain this field".
		return nil, nil
	}

	if _, isStr := value.(string); !isStr {
		if items, ok := structure.Items(value); ok {
			// Array sugar: value is one of.
			return []FieldRule{{Addr: addr, Conds: []Cond{{Op: In, Arg: items}}}}, nil
		}
	}

	i, l, err := structure.Seq2(value)
	if err != nil {
		return []FieldRule{{Addr: addr, Conds: []Cond{{Op: DeepEq, Arg: value}}}}, nil
	}

	mapping := make(map[string]any, l)
	var recognizedKeys, plainKeys int
	for k, v := range i {
		mapping[k] = v
		if _, ok := recognized[k]; ok {
			recognizedKeys++
		} else if !strings.HasPrefix(k, "$") {
			plainKeys++
		}
	}

	if recognizedKeys == 0 {
		// Nested object match: recurse with an extended address.
		var rules []FieldRule
		for k, v := range mapping {
			sub, err := c.makeFieldRules(addr, k, v, cfg)
			if err != nil {
				return nil, err
			}
			rules = append(rules, sub...)
		}
		return rules, nil
	}

	if plainKeys > 0 {
		return nil, domain.ErrMixedOperators
	}

	rule := FieldRule{Addr: addr, Conds: make([]Cond, 0, recognizedKeys)}
	for k, v := range mapping {
		if _, ok := recognized[k]; !ok {
			continue
		}
		cond, err := c.makeCond(k, v, cfg)
		if err != nil {
			return nil, err
		}
		rule.Conds = append(rule.Conds, cond)
	}
	return []FieldRule{rule}, nil
}

func (c *Compiler) makeCond(op string, arg any, cfg domain.Config) (Cond, error) {
	switch op {
	case "$eq":
		return Cond{Op: Eq, Arg: arg}, nil
	case "$ne":
		return Cond{Op: Ne, Arg: arg}, nil
	case "$gt":
		return Cond{Op: Gt, Arg: arg}, nil
	case "$gte":
		return Cond{Op: Gte, Arg: arg}, nil
	case "$lt":
		return Cond{Op: Lt, Arg: arg}, nil
	case "$lte":
		return Cond{Op: Lte, Arg: arg}, nil
	case "$between":
		items, ok := structure.Items(arg)
		if !ok || len(items) != 2 {
			return Cond{}, domain.ErrOperatorArgument{Operator: op, Want: "[lo, hi]", Actual: arg}
		}
		return Cond{Op: Between, Arg: BetweenArg{Lo: items[0], Hi: items[1]}}, nil
	case "$in", "$nin":
		items, ok := structure.Items(arg)
		if !ok {
			return Cond{}, domain.ErrOperatorArgument{Operator: op, Want: "list", Actual: arg}
		}
		if op == "$in" {
			return Cond{Op: In, Arg: items}, nil
		}
		return Cond{Op: Nin, Arg: items}, nil
	case "$contains":
		return Cond{Op: Contains, Arg: arg}, nil
	case "$size":
		n, ok := structure.AsInteger(arg)
		if !ok {
			return Cond{}, domain.ErrOperatorArgument{Operator: op, Want: "integer", Actual: arg}
		}
		return Cond{Op: Size, Arg: n}, nil
	case "$exists":
		want, err := operator.ParseBool(op, arg)
		if err != nil {
			return Cond{}, err
		}
		return Cond{Op: Exists, Arg: want}, nil
	case "$startsWith", "$endsWith":
		s, ok := arg.(string)
		if !ok {
			return Cond{}, domain.ErrOperatorArgument{Operator: op, Want: "string", Actual: arg}
		}
		kind := StartsWith
		if op == "$endsWith" {
			kind = EndsWith
		}
		return Cond{Op: kind, Arg: StringArg{S: s, CaseSensitive: cfg.CaseSensitive}}, nil
	case "$regex", "$match":
		return c.makeTextCond(op, arg, cfg)
	case "$near":
		q, err := operator.ParseNear(arg)
		if err != nil {
			return Cond{}, err
		}
		return Cond{Op: Near, Arg: q}, nil
	case "$geoBox":
		b, err := operator.ParseGeoBox(arg)
		if err != nil {
			return Cond{}, err
		}
		return Cond{Op: GeoBox, Arg: b}, nil
	case "$geoPolygon":
		p, err := operator.ParseGeoPolygon(arg)
		if err != nil {
			return Cond{}, err
		}
		return Cond{Op: GeoPolygon, Arg: p}, nil
	case "$recent", "$upcoming":
		w, err := operator.ParseWindow(op, arg)
		if err != nil {
			return Cond{}, err
		}
		if op == "$recent" {
			return Cond{Op: Recent, Arg: w}, nil
		}
		return Cond{Op: Upcoming, Arg: w}, nil
	case "$dayOfWeek":
		days, err := operator.ParseWeekdays(arg)
		if err != nil {
			return Cond{}, err
		}
		return Cond{Op: DayOfWeek, Arg: days}, nil
	case "$timeOfDay":
		r, err := operator.ParseHourRange(arg)
		if err != nil {
			return Cond{}, err
		}
		return Cond{Op: TimeOfDay, Arg: r}, nil
	case "$age":
		r, err := operator.ParseAgeRange(arg)
		if err != nil {
			return Cond{}, err
		}
		return Cond{Op: Age, Arg: r}, nil
	case "$isWeekday", "$isWeekend":
		want, err := operator.ParseBool(op, arg)
		if err != nil {
			return Cond{}, err
		}
		if op == "$isWeekday" {
			return Cond{Op: IsWeekday, Arg: want}, nil
		}
		return Cond{Op: IsWeekend, Arg: want}, nil
	case "$isBefore", "$isAfter":
		t, err := operator.ParseTime(op, arg)
		if err != nil {
			return Cond{}, err
		}
		if op == "$isBefore" {
			return Cond{Op: IsBefore, Arg: t}, nil
		}
		return Cond{Op: IsAfter, Arg: t}, nil
	default:
		return Cond{}, domain.ErrUnknownOperator{Operator: op}
	}
}

// makeTextCond compiles $regex and $match arguments. $regex takes a raw
// regular expression (or a prepared [*regexp.Regexp]); $match takes a
// wildcard pattern with whole-string equality as its degenerate form.
func (c *Compiler) makeTextCond(op string, arg any, cfg domain.Config) (Cond, error) {
	if re, ok := arg.(*regexp.Regexp); ok {
		return Cond{Op: Match, Arg: pattern.FromRegexp(re)}, nil
	}
	s, ok := arg.(string)
	if !ok {
		return Cond{}, domain.ErrOperatorArgument{Operator: op, Want: "string or regexp", Actual: arg}
	}

	var m domain.TextMatcher
	var err error
	if op == "$regex" {
		m, err = c.eval.Patterns().CompileRegex(s, cfg.CaseSensitive)
	} else {
		m, err = c.eval.Patterns().Compile(s, domain.PatternOptions{CaseSensitive: cfg.CaseSensitive})
	}
	if err != nil {
		return Cond{}, err
	}
	return Cond{Op: Match, Arg: m}, nil
}

func asPredicate(v any) (domain.Predicate, bool) {
	switch fn := v.(type) {
	case domain.Predicate:
		return fn, true
	case func(item any, index int, collection []any) bool:
		return fn, true
	case func(any) bool:
		return func(item any, _ int, _ []any) bool { return fn(item) }, true
	case func(any) (bool, error):
		return func(item any, _ int, _ []any) bool {
			ok, err := fn(item)
			return err == nil && ok
		}, true
	default:
		return nil, false
	}
}
