package operator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type OperatorTestSuite struct {
	suite.Suite
	e *Evaluator
}

func (s *OperatorTestSuite) SetupTest() {
	s.e = NewEvaluator()
}

func (s *OperatorTestSuite) TestEq() {
	s.True(s.e.Eq(1, 1.0))
	s.True(s.e.Eq("a", "a"))
	s.False(s.e.Eq("a", "A"))
	s.False(s.e.Eq(1, "1"))
}

func (s *OperatorTestSuite) TestEqOnArraysIsExistential() {
	s.True(s.e.Eq([]any{1, 2, 3}, 2))
	s.False(s.e.Eq([]any{1, 2, 3}, 4))
}

func (s *OperatorTestSuite) TestNeFailsClosedOnTypeMismatch() {
	s.True(s.e.Ne(1, 2))
	s.False(s.e.Ne(1, 1))
	// Apples-to-oranges: neither Eq nor Ne matches.
	s.False(s.e.Eq(1, "x"))
	s.False(s.e.Ne(1, "x"))
}

func (s *OperatorTestSuite) TestNeOnArraysIsUniversal() {
	s.True(s.e.Ne([]any{1, 2}, 3))
	s.False(s.e.Ne([]any{1, 2}, 2))
}

func (s *OperatorTestSuite) TestOrdering() {
	s.True(s.e.Gt(2, 1))
	s.False(s.e.Gt(2, 2))
	s.True(s.e.Gte(2, 2))
	s.True(s.e.Lt(1, 2))
	s.True(s.e.Lte(2, 2))
	s.False(s.e.Lt("2", 10)) // strings never order against numbers
}

func (s *OperatorTestSuite) TestBetweenIsInclusive() {
	s.True(s.e.Between(5, 1, 10))
	s.True(s.e.Between(1, 1, 10))
	s.True(s.e.Between(10, 1, 10))
	s.False(s.e.Between(0, 1, 10))
	s.False(s.e.Between(11, 1, 10))
}

func (s *OperatorTestSuite) TestIn() {
	s.True(s.e.In(2, []any{1, 2, 3}))
	s.True(s.e.In(2.0, []any{1, 2, 3}))
	s.False(s.e.In(4, []any{1, 2, 3}))
}

func (s *OperatorTestSuite) TestNin() {
	s.True(s.e.Nin(4, []any{1, 2, 3}))
	s.False(s.e.Nin(2, []any{1, 2, 3}))
}

func (s *OperatorTestSuite) TestContainsElem() {
	s.True(s.e.ContainsElem([]any{"a", "b"}, "a"))
	s.False(s.e.ContainsElem([]any{"a", "b"}, "c"))
	s.False(s.e.ContainsElem("not-a-list", "a"))
}

func (s *OperatorTestSuite) TestSize() {
	s.True(s.e.Size([]any{1, 2, 3}, 3))
	s.False(s.e.Size([]any{1, 2, 3}, 2))
	s.False(s.e.Size("abc", 3))
}

func (s *OperatorTestSuite) TestStringOperatorsFoldByDefault() {
	s.True(s.e.StartsWith("Berlin", "ber", false))
	s.False(s.e.StartsWith("Berlin", "ber", true))
	s.True(s.e.EndsWith("Berlin", "LIN", false))
	s.False(s.e.EndsWith("Berlin", "LIN", true))
	s.True(s.e.ContainsStr("Berlin", "ERL", false))
	s.False(s.e.ContainsStr("Berlin", "ERL", true))
}

func (s *OperatorTestSuite) TestStringOperatorsFailClosedOnNonStrings() {
	s.False(s.e.StartsWith(42, "4", false))
	s.False(s.e.EndsWith(nil, "x", false))
	s.False(s.e.ContainsStr([]any{"a"}, "a", false))
}

func TestOperatorTestSuite(t *testing.T) {
	suite.Run(t, new(OperatorTestSuite))
}
