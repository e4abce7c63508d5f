package testutils

// TestingT is the subset of testing.T used by the helpers in this package
type TestingT interface {
	Errorf(format string, args ...any)
}

// FieldsToMap converts alternating key/value log fields into a map.
// Malformed entries (dangling key, non-string key) are reported through t and skipped.
func FieldsToMap(t TestingT, fields []any) map[string]any {
	fieldsMap := make(map[string]any, len(fields)/2)

	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			t.Errorf("Malformed fields slice: missing value for key at index %d", i)
			continue
		}

		key, ok := fields[i].(string)
		if !ok {
			t.Errorf("Malformed fields slice: key at index %d is not a string, got %T", i, fields[i])
			continue
		}

		fieldsMap[key] = fields[i+1]
	}

	return fieldsMap
}

// HasField reports whether fields contains key with exactly the given value
func HasField(t TestingT, fields []any, key string, value any) bool {
	got, ok := FieldsToMap(t, fields)[key]
	return ok && got == value
}
