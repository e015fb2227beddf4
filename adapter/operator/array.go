package operator

// In reports whether the value equals any element of the argument list.
func (e *Evaluator) In(value any, list []any) bool {
	for _, item := range list {
		if e.equal(value, item) {
			return true
		}
	}
	return false
}

// Nin is the complement of In.
func (e *Evaluator) Nin(value any, list []any) bool {
	return !e.In(value, list)
}

// ContainsElem requires the value itself to be a sequence and checks element
// membership of the argument. Non-sequence values fail closed; string values
// are handled by the string $contains instead.
func (e *Evaluator) ContainsElem(value, arg any) bool {
	items, ok := listItems(value)
	if !ok {
		return false
	}
	for _, item := range items {
		if e.equal(item, arg) {
			return true
		}
	}
	return false
}

// Size requires the value to be a sequence of exactly the given length.
func (e *Evaluator) Size(value any, n int) bool {
	items, ok := listItems(value)
	if !ok {
		return false
	}
	return len(items) == n
}
