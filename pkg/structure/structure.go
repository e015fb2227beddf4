// Package structure contains type-related operations, such as iterating over a
// value of type any and converting numbers and date-like values.
package structure

import (
	"errors"
	"iter"
	"math"
	"regexp"
	"time"

	"github.com/goccy/go-reflect"
)

var (
	// ErrNilObj may be returned by [Seq] or [Seq2] when a nil value is
	// passed as argument.
	ErrNilObj = errors.New("nil object")
)

// ErrorNonObject is returned by [Seq2] when a value that is neither a struct
// nor a map is passed as argument.
type ErrorNonObject struct {
	Type reflect.Type
}

func (e ErrorNonObject) Error() string {
	return "not an object"
}

// ErrorNonList is returned by [Seq] when a value that is neither a slice nor
// an array is passed as argument.
type ErrorNonList struct {
	Type reflect.Type
}

func (e ErrorNonList) Error() string {
	return "not a list"
}

// Seq2 returns a key-value iterator over the passed value. It works for maps
// with string keys and for structs, where exported field names (or their
// "filter" tag) become keys.
func Seq2(obj any) (iter.Seq2[string, any], int, error) {
	if obj == nil {
		return nil, 0, ErrNilObj
	}
	if i, length, err := fastPathObject(obj); err != nil || i != nil {
		return i, length, err
	}
	return iterReflect(obj)
}

func fastPathObject(obj any) (iter.Seq2[string, any], int, error) {
	if err := checkPrimitive(obj); err != nil {
		return nil, 0, err
	}
	return checkMaps(obj)
}

func checkPrimitive(obj any) error {
	switch obj.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time, *regexp.Regexp, []byte:
		return ErrorNonObject{Type: reflect.TypeOf(obj)}
	default:
		return nil
	}
}

func checkMaps(obj any) (iter.Seq2[string, any], int, error) {
	switch t := obj.(type) {
	case map[string]any:
		return iterMap(t), len(t), nil
	case map[string]string:
		return iterMap(t), len(t), nil
	case map[string]bool:
		return iterMap(t), len(t), nil
	case map[string]int:
		return iterMap(t), len(t), nil
	case map[string]int64:
		return iterMap(t), len(t), nil
	case map[string]float64:
		return iterMap(t), len(t), nil
	case map[string]time.Time:
		return iterMap(t), len(t), nil
	case map[string][]any:
		return iterMap(t), len(t), nil
	case map[string][]string:
		return iterMap(t), len(t), nil
	}
	return nil, 0, nil
}

func iterReflect(obj any) (iter.Seq2[string, any], int, error) {
	v := reflect.ValueNoEscapeOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, 0, ErrNilObj
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, 0, ErrorNonObject{Type: v.Type()}
		}
		return iterReflectMap(v), v.Len(), nil
	case reflect.Struct:
		i, l := iterReflectStruct(v)
		return i, l, nil
	}
	return nil, 0, ErrorNonObject{Type: v.Type()}
}

func iterReflectMap(v reflect.Value) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range v.MapKeys() {
			if !yield(key.String(), v.MapIndex(key).Interface()) {
				return
			}
		}
	}
}

func iterReflectStruct(v reflect.Value) (iter.Seq2[string, any], int) {
	fields := make([]struct {
		Key   string
		Value any
	}, 0, v.NumField())
	for k, fv := range listStructFields(v) {
		fields = append(fields, struct {
			Key   string
			Value any
		}{Key: k, Value: fv})
	}
	return func(yield func(string, any) bool) {
		for _, field := range fields {
			if !yield(field.Key, field.Value) {
				return
			}
		}
	}, len(fields)
}

func listStructFields(v reflect.Value) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		typ := v.Type()
		for n := range typ.NumField() {
			field := typ.Field(n)
			if field.PkgPath != "" {
				continue
			}
			name := field.Name
			if tag, ok := field.Tag.Lookup("filter"); ok {
				if tag == "-" {
					continue
				}
				if tag != "" {
					name = tag
				}
			}
			if !yield(name, v.Field(n).Interface()) {
				return
			}
		}
	}
}

func iterMap[T any](m map[string]T) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Seq returns an iterator over a slice or array of any element type.
func Seq(obj any) (iter.Seq[any], int, error) {
	if obj == nil {
		return nil, 0, ErrNilObj
	}
	if i, length, err := fastPathList(obj); err != nil || i != nil {
		return i, length, err
	}
	return iterReflectList(obj)
}

func fastPathList(obj any) (iter.Seq[any], int, error) {
	switch obj.(type) {
	case string, []byte:
		return nil, 0, ErrorNonList{Type: reflect.TypeOf(obj)}
	}
	switch t := obj.(type) {
	case []any:
		return iterSlice(t), len(t), nil
	case []string:
		return iterSlice(t), len(t), nil
	case []bool:
		return iterSlice(t), len(t), nil
	case []int:
		return iterSlice(t), len(t), nil
	case []int64:
		return iterSlice(t), len(t), nil
	case []float64:
		return iterSlice(t), len(t), nil
	case []time.Time:
		return iterSlice(t), len(t), nil
	case []map[string]any:
		return iterSlice(t), len(t), nil
	}
	return nil, 0, nil
}

func iterReflectList(obj any) (iter.Seq[any], int, error) {
	v := reflect.ValueNoEscapeOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, 0, ErrNilObj
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		l := v.Len()
		return func(yield func(any) bool) {
			for n := range l {
				if !yield(v.Index(n).Interface()) {
					return
				}
			}
		}, l, nil
	}
	return nil, 0, ErrorNonList{Type: v.Type()}
}

func iterSlice[T any](m []T) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range m {
			if !yield(v) {
				return
			}
		}
	}
}

// Items collects a list value into a []any, returning false for non-lists.
func Items(obj any) ([]any, bool) {
	if arr, ok := obj.([]any); ok {
		return arr, true
	}
	i, l, err := Seq(obj)
	if err != nil {
		return nil, false
	}
	res := make([]any, 0, l)
	for v := range i {
		res = append(res, v)
	}
	return res, true
}

// AsInteger converts any built-in number to int and returns a flag that
// informs if the argument is a valid integer.
func AsInteger(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float32:
		if trunc := math.Trunc(float64(t)); trunc == float64(t) {
			return int(trunc), true
		}
		return 0, false
	case float64:
		if trunc := math.Trunc(t); trunc == t {
			return int(trunc), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// AsFloat64 converts any built-in number to float64.
func AsFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

// AsTime coerces date-like values: [time.Time], *[time.Time], RFC3339 or
// RFC3339Nano strings, and integer or float Unix seconds. Everything else
// reports false.
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
		return time.Time{}, false
	}
	if f, ok := AsFloat64(v); ok {
		sec, frac := math.Modf(f)
		return time.Unix(int64(sec), int64(frac*float64(time.Second))), true
	}
	return time.Time{}, false
}

// Contains checks if the given value is present in the slice.
func Contains[T any, S ~[]T](s S, t T, fn func(a T, b T) (bool, error)) (bool, error) {
	var ok bool
	var err error
	for _, i := range s {
		if ok, err = fn(i, t); err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}
