package sqlite

// Row is a materialised query result row: an unordered mapping from column
// name to value. Rows are created once per result during a Fetch, are not
// modified afterwards, and are owned by the caller once returned.
//
// NULL columns are absent from the map. Map iteration order carries no
// meaning.
type Row map[string]Value

// Integer extracts a 64-bit signed integer column.
//
// Returns:
//   - int64: the stored value, or 0 when absent
//   - bool: false when the column is absent or not Integer-kinded
func (r Row) Integer(name string) (int64, bool) {
	v, ok := r[name]
	if !ok || v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

// Real extracts a 64-bit floating point column.
func (r Row) Real(name string) (float64, bool) {
	v, ok := r[name]
	if !ok || v.kind != KindReal {
		return 0, false
	}
	return v.r, true
}

// Text extracts a UTF-8 string column. Text is never parsed into other
// kinds; a stored integer yields no value here.
func (r Row) Text(name string) (string, bool) {
	v, ok := r[name]
	if !ok || v.kind != KindText {
		return "", false
	}
	return v.s, true
}

// Blob extracts a byte sequence column.
func (r Row) Blob(name string) ([]byte, bool) {
	v, ok := r[name]
	if !ok || v.kind != KindBlob {
		return nil, false
	}
	return v.b, true
}

// Bool derives a boolean from an Integer column by nonzero test. This is
// the only cross-kind coercion the row performs; SQLite has no boolean
// storage class, so booleans round-trip through integers.
func (r Row) Bool(name string) (bool, bool) {
	v, ok := r[name]
	if !ok || v.kind != KindInteger {
		return false, false
	}
	return v.i != 0, true
}

// Has reports whether the row carries a value for the named column.
// NULL columns report false.
func (r Row) Has(name string) bool {
	_, ok := r[name]
	return ok
}
