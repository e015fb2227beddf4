package fieldnavigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcabreradev/filter-sub003/domain"
)

func values(t *testing.T, getters []domain.Getter) []any {
	t.Helper()
	res := make([]any, 0, len(getters))
	for _, g := range getters {
		if v, ok := g.Get(); ok {
			res = append(res, v)
		}
	}
	return res
}

func TestGetAddress(t *testing.T) {
	f := NewFieldNavigator()

	addr, err := f.GetAddress("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, addr)

	addr, err = f.GetAddress("name")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, addr)

	_, err = f.GetAddress("")
	assert.ErrorIs(t, err, domain.ErrNoFieldName)
	_, err = f.GetAddress("a..b")
	assert.ErrorIs(t, err, domain.ErrNoFieldName)
	_, err = f.GetAddress(".a")
	assert.ErrorIs(t, err, domain.ErrNoFieldName)
}

func TestGetFieldSimple(t *testing.T) {
	f := NewFieldNavigator()
	item := domain.M{"name": "Berlin"}

	getters, expanded := f.GetField(item, "name")
	assert.False(t, expanded)
	assert.Equal(t, []any{"Berlin"}, values(t, getters))
}

func TestGetFieldNested(t *testing.T) {
	f := NewFieldNavigator()
	item := domain.M{"addr": domain.M{"city": "Berlin"}}

	getters, _ := f.GetField(item, "addr", "city")
	assert.Equal(t, []any{"Berlin"}, values(t, getters))
}

func TestGetFieldStruct(t *testing.T) {
	type address struct {
		City string `filter:"city"`
	}
	type city struct {
		Name string
		Addr address `filter:"addr"`
	}
	f := NewFieldNavigator()
	item := city{Name: "x", Addr: address{City: "Berlin"}}

	getters, _ := f.GetField(item, "addr", "city")
	assert.Equal(t, []any{"Berlin"}, values(t, getters))
}

func TestGetFieldArrayExpansion(t *testing.T) {
	f := NewFieldNavigator()
	item := domain.M{"stops": []any{
		domain.M{"city": "Berlin"},
		domain.M{"city": "Prague"},
	}}

	getters, expanded := f.GetField(item, "stops", "city")
	assert.True(t, expanded)
	assert.Equal(t, []any{"Berlin", "Prague"}, values(t, getters))
}

func TestGetFieldNumericIndex(t *testing.T) {
	f := NewFieldNavigator()
	item := domain.M{"stops": []any{"Berlin", "Prague"}}

	getters, expanded := f.GetField(item, "stops", "1")
	assert.False(t, expanded)
	assert.Equal(t, []any{"Prague"}, values(t, getters))

	getters, _ = f.GetField(item, "stops", "9")
	assert.Empty(t, values(t, getters))
}

func TestGetFieldUndefinedVersusNil(t *testing.T) {
	f := NewFieldNavigator()
	item := domain.M{"a": nil}

	getters, _ := f.GetField(item, "a")
	require.Len(t, getters, 1)
	v, defined := getters[0].Get()
	assert.True(t, defined, "explicit nil counts as defined")
	assert.Nil(t, v)

	getters, _ = f.GetField(item, "missing")
	require.Len(t, getters, 1)
	_, defined = getters[0].Get()
	assert.False(t, defined)
}

func TestGetFieldThroughPrimitive(t *testing.T) {
	f := NewFieldNavigator()
	getters, _ := f.GetField(domain.M{"a": 42}, "a", "b")
	assert.Empty(t, values(t, getters))
}
