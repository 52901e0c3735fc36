package cachestore

import "fmt"

// Tag is an invalidation-matching label. A tag is either a bare resource
// name, matching every entry of that resource, or a (resource, id) pair
// matching a single row.
type Tag struct {
	resource string
	id       string
}

func ResourceTag(resource string) Tag {
	return Tag{resource: resource}
}

func IDTag(resource string, id string) Tag {
	return Tag{resource: resource, id: id}
}

func (t Tag) Resource() string {
	return t.resource
}

func (t Tag) String() string {
	if t.id == "" {
		return t.resource
	}
	return fmt.Sprintf("%s:%s", t.resource, t.id)
}

// matches reports whether an invalidation of t should hit an entry
// providing provided. A bare resource tag on either side matches any id
// within the same resource.
func (t Tag) matches(provided Tag) bool {
	if t.resource != provided.resource {
		return false
	}
	return t.id == "" || provided.id == "" || t.id == provided.id
}
