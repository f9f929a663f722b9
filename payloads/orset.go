package payloads

import (
	"github.com/go-pluto/lattice/crdt"
	"github.com/satori/go.uuid"
)

// Structs

// Kind distinguishes the two ORSet updates.
type Kind string

const (
	// Add inserts an element under a fresh unique tag.
	Add Kind = "add"

	// Remove deletes all observed tags of an element.
	Remove Kind = "rmv"
)

// ORSet conforms to the specification of an observed-
// removed set defined by Shapiro, Preguiça, Baquero
// and Zawirski. It maps unique tags to elements and
// remembers removed tags so that concurrent removes
// of the same element can all be applied.
//
// ORSet values are never modified in place. Every
// applied operation returns a new set.
type ORSet[E comparable] struct {
	elements map[string]E
	removed  map[string]struct{}
}

// ORSetArgs seed an update at the source replica.
type ORSetArgs[E comparable] struct {
	Kind    Kind
	Element E
}

// ORSetOp is the operation broadcast to all replicas.
// An add carries the one fresh tag, a remove the set of
// tags observed at the source.
type ORSetOp[E comparable] struct {
	Kind    Kind     `msgpack:"kind"`
	Element E        `msgpack:"element"`
	Tags    []string `msgpack:"tags"`
}

// Functions

// InitORSet returns an empty initialized new
// observed-removed set.
func InitORSet[E comparable]() ORSet[E] {

	return ORSet[E]{
		elements: make(map[string]E),
		removed:  make(map[string]struct{}),
	}
}

// InitORSetPayload returns a replica container
// holding an empty ORSet.
func InitORSetPayload[E comparable]() *crdt.OpPayload[ORSet[E], ORSetArgs[E], ORSetOp[E]] {
	return crdt.InitOpPayload[ORSet[E], ORSetArgs[E], ORSetOp[E]](InitORSet[E]())
}

// AddArgs returns the arguments of an add update.
func AddArgs[E comparable](e E) ORSetArgs[E] {
	return ORSetArgs[E]{Kind: Add, Element: e}
}

// RemoveArgs returns the arguments of a remove update.
func RemoveArgs[E comparable](e E) ORSetArgs[E] {
	return ORSetArgs[E]{Kind: Remove, Element: e}
}

// Lookup cycles through elements in ORSet and
// returns true if element e is present and
// false otherwise.
func (s ORSet[E]) Lookup(e E) bool {

	for _, value := range s.elements {

		if value == e {
			return true
		}
	}

	return false
}

// Elements returns all distinct elements in the set
// in no particular order.
func (s ORSet[E]) Elements() []E {

	seen := make(map[E]struct{}, len(s.elements))
	elements := make([]E, 0, len(s.elements))

	for _, value := range s.elements {

		if _, found := seen[value]; !found {
			seen[value] = struct{}{}
			elements = append(elements, value)
		}
	}

	return elements
}

// Equal reports whether s and other hold the same tagged
// elements and know about the same removed tags.
func (s ORSet[E]) Equal(other ORSet[E]) bool {

	if len(s.elements) != len(other.elements) || len(s.removed) != len(other.removed) {
		return false
	}

	for tag, value := range s.elements {

		if v, found := other.elements[tag]; !found || v != value {
			return false
		}
	}

	for tag := range s.removed {

		if _, found := other.removed[tag]; !found {
			return false
		}
	}

	return true
}

// observed reports whether tag was added at this
// replica, whether or not it was removed since.
func (s ORSet[E]) observed(tag string) bool {

	if _, found := s.elements[tag]; found {
		return true
	}

	_, found := s.removed[tag]

	return found
}

// tagsOf returns all tags element e is stored under.
func (s ORSet[E]) tagsOf(e E) []string {

	tags := make([]string, 0, 1)

	for tag, value := range s.elements {

		if value == e {
			tags = append(tags, tag)
		}
	}

	return tags
}

// clone returns a deep copy of s.
func (s ORSet[E]) clone() ORSet[E] {

	c := ORSet[E]{
		elements: make(map[string]E, len(s.elements)),
		removed:  make(map[string]struct{}, len(s.removed)),
	}

	for tag, value := range s.elements {
		c.elements[tag] = value
	}

	for tag := range s.removed {
		c.removed[tag] = struct{}{}
	}

	return c
}

// AtSource is the prepare part of an add or remove
// update. An add creates a new unique tag for the
// element. A remove collects all tags of the element
// observed at this replica and requires at least one.
func (s ORSet[E]) AtSource(args ORSetArgs[E]) (ORSetOp[E], bool, error) {

	switch args.Kind {
	case Add:

		// Create a new unique tag.
		tag := uuid.NewV4().String()

		return ORSetOp[E]{
			Kind:    Add,
			Element: args.Element,
			Tags:    []string{tag},
		}, true, nil

	case Remove:

		// Removing an element not in the set is not
		// applicable at this replica.
		tags := s.tagsOf(args.Element)
		if len(tags) == 0 {
			return ORSetOp[E]{}, false, nil
		}

		return ORSetOp[E]{
			Kind:    Remove,
			Element: args.Element,
			Tags:    tags,
		}, true, nil
	}

	return ORSetOp[E]{}, false, ErrUnknownKind
}

// Downstream is the effect part of an add or remove
// update, executed by all replicas of the set including
// the source. A remove is only applicable once all of
// its tags have been observed here.
func (s ORSet[E]) Downstream(op ORSetOp[E]) (ORSet[E], bool, error) {

	if len(op.Tags) == 0 {
		return s, false, ErrMalformedOp
	}

	switch op.Kind {
	case Add:

		next := s.clone()

		// A tag that was already removed here stays removed.
		for _, tag := range op.Tags {

			if _, found := next.removed[tag]; !found {
				next.elements[tag] = op.Element
			}
		}

		return next, true, nil

	case Remove:

		// Causal precondition: every add this remove
		// observed has to be observed here as well.
		for _, tag := range op.Tags {

			if !s.observed(tag) {
				return s, false, nil
			}
		}

		next := s.clone()

		for _, tag := range op.Tags {
			delete(next.elements, tag)
			next.removed[tag] = struct{}{}
		}

		return next, true, nil
	}

	return s, false, ErrUnknownKind
}
