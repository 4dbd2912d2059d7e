package model

import "unicode/utf8"

// TruncateString cuts s down to at most maxLength characters, never
// splitting a multibyte rune.
func TruncateString(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	n := 0
	for i := range s {
		if n == maxLength {
			return s[:i]
		}
		n++
	}
	return s
}

// TruncatePtr is TruncateString for optional values; nil stays nil.
func TruncatePtr(s *string, maxLength int) *string {
	if s == nil {
		return nil
	}
	v := TruncateString(*s, maxLength)
	return &v
}

func Ptr[T any](v T) *T {
	return &v
}
