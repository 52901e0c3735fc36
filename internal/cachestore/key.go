package cachestore

import (
	"encoding/json"
	"fmt"
)

// Key identifies one cached query: a resource name plus the serialized
// call arguments. Identical arguments always serialize identically
// (encoding/json sorts map keys and struct fields keep declaration
// order), so a Key is usable as a map key directly.
type Key struct {
	resource string
	args     string
}

func NewKey(resource string, args any) (Key, error) {
	if resource == "" {
		return Key{}, fmt.Errorf("cachestore: empty resource name")
	}

	serialized, err := json.Marshal(args)
	if err != nil {
		return Key{}, fmt.Errorf("cachestore: failed to serialize args for %s: %w", resource, err)
	}

	return Key{
		resource: resource,
		args:     string(serialized),
	}, nil
}

func (k Key) Resource() string {
	return k.resource
}

func (k Key) String() string {
	return fmt.Sprintf("%s(%s)", k.resource, k.args)
}
