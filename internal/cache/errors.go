package cache

import "github.com/jmgilman/go/errors"

// IsNotFound reports whether err means the provider could not resolve a key.
//
// Providers signal this with any error carrying errors.CodeNotFound.
func IsNotFound(err error) bool {
	return err != nil && errors.GetCode(err) == errors.CodeNotFound
}

// NotFound builds the error a provider returns for an unresolvable key.
func NotFound(key any) error {
	return errors.WithContext(
		errors.Newf(errors.CodeNotFound, "key %v not found", key),
		"key", key,
	)
}
