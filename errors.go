/*
Copyright © 2019 the regions authors.
This file is part of regions.

regions is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

regions is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with regions.  If not, see <http://www.gnu.org/licenses/>.
*/

package regions

import (
	"errors"
	"fmt"
	"strings"
)

// RejectionError is returned by samplers that could not produce a point,
// for example because a randomly chosen candidate fell outside the
// region. Callers typically retry with a fresh draw.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return "regions: sample rejected: " + e.Reason
}

func reject(format string, a ...interface{}) error {
	return &RejectionError{Reason: fmt.Sprintf(format, a...)}
}

// IsRejection reports whether err is, or wraps, a *RejectionError.
func IsRejection(err error) bool {
	var r *RejectionError
	return errors.As(err, &r)
}

// NotImplementedError is returned when an operation is not defined for the
// regions it was called on.
type NotImplementedError struct {
	Op      string
	Regions []Region
}

func (e *NotImplementedError) Error() string {
	names := make([]string, len(e.Regions))
	for i, r := range e.Regions {
		names[i] = r.String()
	}
	return fmt.Sprintf("regions: %s is not implemented for %s", e.Op, strings.Join(names, ", "))
}

func notImplemented(op string, rs ...Region) error {
	return &NotImplementedError{Op: op, Regions: rs}
}

// TypeError is returned when a value of the wrong kind is passed to an
// operation.
type TypeError struct {
	Op    string
	Value interface{}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("regions: %s: unsupported value of type %T", e.Op, e.Value)
}
