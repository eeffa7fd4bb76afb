package idea

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is matched by [DuplicateIDError] via errors.Is.
	ErrDuplicateID = errors.New("duplicate idea id")

	// ErrLinkEndpointNotFound is matched by [LinkEndpointNotFoundError] via errors.Is.
	ErrLinkEndpointNotFound = errors.New("link endpoint not found")

	// ErrMeasurementParse is matched by [MeasurementParseError] via errors.Is.
	ErrMeasurementParse = errors.New("malformed measurements")

	// ErrNilNode is returned when a nil node is passed to a structural operation.
	ErrNilNode = errors.New("nil idea")

	// ErrNotInTree is returned when an operation references a node that is
	// not reachable from the tree's root.
	ErrNotInTree = errors.New("idea is not part of the tree")

	// ErrAlreadyAttached is returned when appending a node that already has
	// an owner. Every idea belongs to exactly one parent.
	ErrAlreadyAttached = errors.New("idea already has a parent")

	// ErrRemoveRoot is returned by [Tree.Remove] for the root idea.
	ErrRemoveRoot = errors.New("cannot remove the root idea")

	// ErrCycle is returned by [Node.Append] when the child is the node itself
	// or one of its ancestors within the detached subtree.
	ErrCycle = errors.New("idea cannot own itself")
)

// DuplicateIDError reports an id seen twice during strict id assignment.
type DuplicateIDError struct {
	ID int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate idea id %d", e.ID)
}

// Is makes errors.Is(err, ErrDuplicateID) match.
func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }

// LinkEndpointNotFoundError reports a link endpoint missing from the id table.
// On export the endpoint is known by its node (Title set); on import by its
// wire id (ID set).
type LinkEndpointNotFoundError struct {
	ID    int
	Title string
}

func (e *LinkEndpointNotFoundError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("link endpoint %q not found in tree", e.Title)
	}
	return fmt.Sprintf("link endpoint id %d not found in tree", e.ID)
}

// Is makes errors.Is(err, ErrLinkEndpointNotFound) match.
func (e *LinkEndpointNotFoundError) Is(target error) bool { return target == ErrLinkEndpointNotFound }

// MeasurementParseError reports a measurements value that is not a flat
// object of scalar values.
type MeasurementParseError struct {
	Field  string
	Reason string
}

func (e *MeasurementParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("measurement %q: %s", e.Field, e.Reason)
	}
	return "measurements: " + e.Reason
}

// Is makes errors.Is(err, ErrMeasurementParse) match.
func (e *MeasurementParseError) Is(target error) bool { return target == ErrMeasurementParse }
