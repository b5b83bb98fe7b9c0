package champ

import "errors"


//============================================= Errors


// ErrOutOfRange is returned by index-based accessors (ElementAt) when the
// requested index falls outside [0, length).
var ErrOutOfRange = errors.New("champ: index out of range")

// ErrEmptyCollection is returned by First, Last, Single, and Reduce when
// called on an empty map.
var ErrEmptyCollection = errors.New("champ: collection is empty")

// ErrAmbiguousSingle is returned by Single/SingleWhere when more than one
// entry satisfies the predicate.
var ErrAmbiguousSingle = errors.New("champ: more than one matching element")

// ErrInvalidIteratorState is returned by Iterator.Current when called
// before the first successful Next or after Next has returned false.
var ErrInvalidIteratorState = errors.New("champ: iterator has no current entry")

// ErrInternalInvariant marks an assertion failure in a layout invariant
// (e.g. a branching node's content length mismatching
// 2*popcount(dataMap)+popcount(nodeMap)). It is only ever raised when
// built with the champdebug build tag; release builds never pay the
// assertion's cost and never raise it.
var ErrInternalInvariant = errors.New("champ: internal invariant violated")
