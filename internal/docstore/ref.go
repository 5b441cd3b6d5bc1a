package docstore

import (
	"fmt"
	"strings"
)

// CollectionRef addresses a collection.
type CollectionRef struct {
	path string
	err  error
}

// DocRef addresses a document.
type DocRef struct {
	path string
	err  error
}

// Collection builds a reference from alternating collection/document segments.
// The number of segments must be odd.
func Collection(segments ...string) CollectionRef {
	if len(segments)%2 == 0 {
		return CollectionRef{err: fmt.Errorf("%w: collection needs an odd number of segments", ErrInvalidPath)}
	}
	p, err := join(segments)
	return CollectionRef{path: p, err: err}
}

// Doc builds a document reference. The number of segments must be even.
func Doc(segments ...string) DocRef {
	if len(segments) == 0 || len(segments)%2 != 0 {
		return DocRef{err: fmt.Errorf("%w: document needs an even number of segments", ErrInvalidPath)}
	}
	p, err := join(segments)
	return DocRef{path: p, err: err}
}

// Path returns the slash-separated path.
func (c CollectionRef) Path() string { return c.path }

// Err reports whether the reference is malformed.
func (c CollectionRef) Err() error { return c.err }

// Doc returns a reference to the document with the given ID in c.
func (c CollectionRef) Doc(id string) DocRef {
	if c.err != nil {
		return DocRef{err: c.err}
	}
	if err := ValidateID(id); err != nil {
		return DocRef{err: err}
	}
	return DocRef{path: c.path + "/" + id}
}

// Query starts a query over c.
func (c CollectionRef) Query() Query {
	return Query{Collection: c}
}

// Path returns the slash-separated path.
func (d DocRef) Path() string { return d.path }

// Err reports whether the reference is malformed.
func (d DocRef) Err() error { return d.err }

// ID returns the last path segment.
func (d DocRef) ID() string {
	return d.path[strings.LastIndexByte(d.path, '/')+1:]
}

// Parent returns the collection containing d.
func (d DocRef) Parent() CollectionRef {
	if d.err != nil {
		return CollectionRef{err: d.err}
	}
	return CollectionRef{path: d.path[:strings.LastIndexByte(d.path, '/')]}
}

// Collection returns a subcollection of d.
func (d DocRef) Collection(name string) CollectionRef {
	if d.err != nil {
		return CollectionRef{err: d.err}
	}
	if err := ValidateID(name); err != nil {
		return CollectionRef{err: err}
	}
	return CollectionRef{path: d.path + "/" + name}
}

// ValidateID checks that id can be used as a single path segment.
func ValidateID(id string) error {
	switch {
	case id == "", id == ".", id == "..":
		return fmt.Errorf("%w: empty or reserved segment %q", ErrInvalidPath, id)
	case strings.ContainsAny(id, "/\\#?|"):
		return fmt.Errorf("%w: segment %q contains a reserved character", ErrInvalidPath, id)
	case len(id) > 512:
		return fmt.Errorf("%w: segment too long", ErrInvalidPath)
	}
	return nil
}

func join(segments []string) (string, error) {
	for _, s := range segments {
		if err := ValidateID(s); err != nil {
			return "", err
		}
	}
	return strings.Join(segments, "/"), nil
}
