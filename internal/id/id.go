// Package id generates prefixed unique identifiers for persisted entities.
package id

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate creates a new ID with the given entity prefix, for example
// "list-V1StGXR8_Z5jdHi6B-myT". The random part is a 21 character nanoid.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	return prefix + "-" + id, nil
}
