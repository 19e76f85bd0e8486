package models

import (
	"fmt"
)

type itemSetter interface {
	set(field, value string) error
}

func setItem[T any, P interface {
	*T
	itemSetter
}](list []T, ref FieldRef, value string) error {
	if ref.Index < 0 || ref.Index >= len(list) {
		return fmt.Errorf("%w: %s", ErrIndexOutOfRange, ref)
	}

	if err := P(&list[ref.Index]).set(ref.Field, value); err != nil {
		return fmt.Errorf("%w: %s", err, ref)
	}

	return nil
}

func setString(list []string, ref FieldRef, value string) error {
	if ref.Field != "" {
		return unknownField(ref)
	}

	if ref.Index < 0 || ref.Index >= len(list) {
		return fmt.Errorf("%w: %s", ErrIndexOutOfRange, ref)
	}

	list[ref.Index] = value

	return nil
}

// appendBlank adds a zero-valued entry at the end.
func appendBlank[T any](list []T) []T {
	var zero T
	return append(list, zero)
}

// removeAt drops exactly one entry and keeps the order of the rest.
func removeAt[T any](list []T, index int) ([]T, error) {
	if index < 0 || index >= len(list) {
		return list, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(list))
	}

	out := make([]T, 0, len(list)-1)
	out = append(out, list[:index]...)

	return append(out, list[index+1:]...), nil
}

func emptyIfNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}

	return list
}

func unknownField(ref FieldRef) error {
	return fmt.Errorf("%w: %s", ErrUnknownField, ref)
}

func unknownList(list string) error {
	return fmt.Errorf("%w: %q", ErrUnknownList, list)
}
