package odoo

// Odoo encodes absent values as the boolean false and relational fields as
// [id, display name] pairs. The helpers below turn those into Go values
// without sprinkling type switches through callers.

// Many2One is the decoded form of an Odoo relational field.
type Many2One struct {
	ID   int64
	Name string
}

// AsMany2One decodes an [id, name] pair. The second return is false for
// absent relations (boolean false) or malformed values.
func AsMany2One(v any) (Many2One, bool) {
	pair, ok := v.([]any)
	if !ok || len(pair) < 2 {
		return Many2One{}, false
	}
	id, ok := asInt(pair[0])
	if !ok {
		return Many2One{}, false
	}
	name, _ := pair[1].(string)
	return Many2One{ID: id, Name: name}, true
}

// AsString decodes a char/text field, mapping absent values to "".
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsFloat decodes a numeric field, mapping absent values to 0.
func AsFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}
