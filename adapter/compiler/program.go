package compiler

import (
	"time"

	"github.com/mcabreradev/filter-sub003/adapter/operator"
	"github.com/mcabreradev/filter-sub003/domain"
)

// Numeric representations of supported logic operators.
const (
	And uint8 = iota
	Or
	Not
)

// Numeric representations of supported field conditions.
const (
	DeepEq uint8 = iota
	Eq
	Ne
	Gt
	Gte
	Lt
	Lte
	Between
	In
	Nin
	Contains
	Size
	Exists
	StartsWith
	EndsWith
	Match
	Near
	GeoBox
	GeoPolygon
	Recent
	Upcoming
	DayOfWeek
	TimeOfDay
	Age
	IsWeekday
	IsWeekend
	IsBefore
	IsAfter
)

// Program kinds, decided once at compile time per expression shape.
const (
	kindFunc uint8 = iota
	kindSearch
	kindObject
)

// Program is a compiled expression. It owns a copy of its config, so it stays
// valid independent of the compiler's later state, and is safe to reuse
// across unrelated calls.
type Program struct {
	cfg  domain.Config
	kind uint8

	fn     domain.Predicate
	search any
	rules  []FieldRule
	logic  []LogicOp

	deps *deps
}

// LogicOp stores a logic operator ($and, $or, $not) and its compiled
// sub-programs, evaluated against the whole enclosing item.
type LogicOp struct {
	Type uint8
	Sub  []*Program
}

// FieldRule stores a set of conditions used to match a given item field.
type FieldRule struct {
	Addr  []string
	Conds []Cond
}

// Cond stores a single operation on an item field. Arg carries the
// compile-time parsed argument; its concrete type depends on Op.
type Cond struct {
	Op  uint8
	Arg any
}

// BetweenArg is the parsed argument of $between.
type BetweenArg struct {
	Lo any
	Hi any
}

// StringArg is the parsed argument of case-configurable string operators.
type StringArg struct {
	S             string
	CaseSensitive bool
}

type deps struct {
	nav  domain.FieldNavigator
	deep domain.DeepComparer
	eval *operator.Evaluator
}

// Config returns the program's owned config copy.
func (p *Program) Config() domain.Config { return p.cfg }

// Predicate returns the compiled matcher as a plain [domain.Predicate].
func (p *Program) Predicate() domain.Predicate {
	return func(item any, index int, collection []any) bool {
		return p.Match(item, index, collection)
	}
}

// Match evaluates the program against one item. Evaluation is fail-closed and
// never mutates the item.
func (p *Program) Match(item any, index int, collection []any) bool {
	switch p.kind {
	case kindFunc:
		return p.fn(item, index, collection)
	case kindSearch:
		return p.deps.deep.Search(item, p.search, p.cfg, 0)
	default:
		for _, lo := range p.logic {
			if !p.matchLogicOp(item, index, collection, lo) {
				return false
			}
		}
		for _, rule := range p.rules {
			if !p.matchRule(item, rule) {
				return false
			}
		}
		return true
	}
}

func (p *Program) matchLogicOp(item any, index int, collection []any, lo LogicOp) bool {
	switch lo.Type {
	case And:
		for _, sub := range lo.Sub {
			if !sub.Match(item, index, collection) {
				return false
			}
		}
		return true
	case Or:
		for _, sub := range lo.Sub {
			if sub.Match(item, index, collection) {
				return true
			}
		}
		return false
	case Not:
		for _, sub := range lo.Sub {
			if sub.Match(item, index, collection) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (p *Program) matchRule(item any, rule FieldRule) bool {
	// Each address segment beyond the first is one level of nested
	// descent; MaxDepth bounds it the same way it bounds data recursion.
	if len(rule.Addr)-1 >= p.cfg.MaxDepth {
		return false
	}

	values, expanded := p.deps.nav.GetField(item, rule.Addr...)
	for _, cond := range rule.Conds {
		if !p.matchCond(values, expanded, len(rule.Addr)-1, cond) {
			return false
		}
	}
	return true
}

// matchCond evaluates one condition over the resolved field values. Positive
// conditions pass when any resolved value satisfies them; negative conditions
// ($ne, $nin) require at least one resolved value and all of them to satisfy;
// $exists and $size look at the resolution itself.
func (p *Program) matchCond(values []domain.Getter, expanded bool, depth int, cond Cond) bool {
	switch cond.Op {
	case Exists:
		return p.exists(values) == cond.Arg.(bool)
	case Size:
		return p.size(values, expanded, cond.Arg.(int))
	case Ne, Nin:
		return p.matchAll(values, depth, cond)
	default:
		return p.matchAny(values, depth, cond)
	}
}

func (p *Program) matchAny(values []domain.Getter, depth int, cond Cond) bool {
	for _, g := range values {
		v, defined := g.Get()
		if !defined {
			continue
		}
		if p.evalCond(v, depth, cond) {
			return true
		}
	}
	return false
}

func (p *Program) matchAll(values []domain.Getter, depth int, cond Cond) bool {
	// A field that resolves to nothing fails even negative conditions;
	// missing data never matches.
	defined := 0
	for _, g := range values {
		v, ok := g.Get()
		if !ok {
			continue
		}
		defined++
		if !p.evalCond(v, depth, cond) {
			return false
		}
	}
	return defined > 0
}

func (p *Program) evalCond(v any, depth int, cond Cond) bool {
	e := p.deps.eval
	switch cond.Op {
	case DeepEq:
		return p.deps.deep.Match(v, cond.Arg, p.cfg, depth)
	case Eq:
		return e.Eq(v, cond.Arg)
	case Ne:
		return e.Ne(v, cond.Arg)
	case Gt:
		return e.Gt(v, cond.Arg)
	case Gte:
		return e.Gte(v, cond.Arg)
	case Lt:
		return e.Lt(v, cond.Arg)
	case Lte:
		return e.Lte(v, cond.Arg)
	case Between:
		arg := cond.Arg.(BetweenArg)
		return e.Between(v, arg.Lo, arg.Hi)
	case In:
		return e.In(v, cond.Arg.([]any))
	case Nin:
		return e.Nin(v, cond.Arg.([]any))
	case Contains:
		// Dual-purpose: substring on string values, membership on
		// sequences.
		if s, ok := v.(string); ok {
			if sub, ok := cond.Arg.(string); ok {
				return e.ContainsStr(s, sub, p.cfg.CaseSensitive)
			}
			return false
		}
		return e.ContainsElem(v, cond.Arg)
	case StartsWith:
		arg := cond.Arg.(StringArg)
		return e.StartsWith(v, arg.S, arg.CaseSensitive)
	case EndsWith:
		arg := cond.Arg.(StringArg)
		return e.EndsWith(v, arg.S, arg.CaseSensitive)
	case Match:
		return e.MatchText(v, cond.Arg.(domain.TextMatcher))
	case Near:
		return e.Near(v, cond.Arg.(domain.NearQuery))
	case GeoBox:
		return e.GeoBox(v, cond.Arg.(domain.BoundingBox))
	case GeoPolygon:
		return e.GeoPolygon(v, cond.Arg.(domain.PolygonQuery))
	case Recent:
		return e.Recent(v, cond.Arg.(operator.Window))
	case Upcoming:
		return e.Upcoming(v, cond.Arg.(operator.Window))
	case DayOfWeek:
		return e.DayOfWeek(v, cond.Arg.(map[int]bool))
	case TimeOfDay:
		return e.TimeOfDay(v, cond.Arg.(operator.HourRange))
	case Age:
		return e.Age(v, cond.Arg.(operator.AgeRange))
	case IsWeekday:
		return e.IsWeekday(v, cond.Arg.(bool))
	case IsWeekend:
		return e.IsWeekend(v, cond.Arg.(bool))
	case IsBefore:
		return e.IsBefore(v, cond.Arg.(time.Time))
	case IsAfter:
		return e.IsAfter(v, cond.Arg.(time.Time))
	default:
		return false
	}
}

func (p *Program) exists(values []domain.Getter) bool {
	for _, g := range values {
		if _, defined := g.Get(); defined {
			return true
		}
	}
	return false
}

func (p *Program) size(values []domain.Getter, expanded bool, n int) bool {
	if expanded {
		defined := 0
		for _, g := range values {
			if _, ok := g.Get(); ok {
				defined++
			}
		}
		return defined == n
	}
	for _, g := range values {
		v, ok := g.Get()
		if !ok {
			continue
		}
		if p.deps.eval.Size(v, n) {
			return true
		}
	}
	return false
}
