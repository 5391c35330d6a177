package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ReferenceKind names what an ambiguous reference was resolving to.
type ReferenceKind string

const (
	ReferenceBlock ReferenceKind = "block"
	ReferenceTime  ReferenceKind = "time"
)

// AmbiguousReferenceError reports a block or time reference that resolved
// to more than one target.
type AmbiguousReferenceError struct {
	Kind    ReferenceKind
	Text    string
	Matches []string
}

// Error implements the error interface.
func (e *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("ambiguous %s reference %q matches %s",
		e.Kind, e.Text, strings.Join(e.Matches, ", "))
}

// IsAmbiguousReference returns true if err is an AmbiguousReferenceError.
func IsAmbiguousReference(err error) bool {
	var ae *AmbiguousReferenceError
	return errors.As(err, &ae)
}

// LinkageError reports a multipart card whose sibling part cannot be found
// exactly once in one of its sets. It aborts a build.
type LinkageError struct {
	Card    string
	Sibling string
	SetCode string
	Found   int
}

// Error implements the error interface.
func (e *LinkageError) Error() string {
	if e.SetCode == "" {
		return fmt.Sprintf("card %q names part %q which is not in the corpus", e.Card, e.Sibling)
	}
	return fmt.Sprintf("card %q expects exactly one printing of part %q in set %s, found %d",
		e.Card, e.Sibling, e.SetCode, e.Found)
}

// IsLinkageError returns true if err is a LinkageError.
func IsLinkageError(err error) bool {
	var le *LinkageError
	return errors.As(err, &le)
}

// SlugCollision records two artist spellings that fold to the same slug.
// It is a warning, not an error: the first spelling seen stays canonical.
type SlugCollision struct {
	Slug      string
	Canonical string
	Other     string
}

func (c SlugCollision) String() string {
	return fmt.Sprintf("artist slug %s: %q also spelled %q", c.Slug, c.Canonical, c.Other)
}
