package config

// Field is the decode result of one optional configuration key: absent,
// present with a value, or present but malformed.
type Field[T any] struct {
	Value T
	Set   bool
	Err   error
}

// Ok returns a present field.
func Ok[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Failed returns a present but malformed field.
func Failed[T any](err error) Field[T] {
	return Field[T]{Set: true, Err: err}
}

// Or returns the value when the field decoded cleanly, def otherwise.
func (f Field[T]) Or(def T) T {
	if f.Set && f.Err == nil {
		return f.Value
	}
	return def
}
