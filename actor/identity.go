// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package actor

import (
	"github.com/google/uuid"

	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/internal/validation"
)

// ID is the opaque, immutable identity of one actor instance. It is unique
// for all time: a name may be reused after its holder terminates, an ID
// never is.
type ID string

// NewID generates a fresh actor identity.
func NewID() ID {
	return ID(uuid.NewString())
}

// String implements fmt.Stringer
func (id ID) String() string {
	return string(id)
}

// namePattern is the rule actor and runtime names must satisfy.
const namePattern = "^[a-zA-Z0-9][a-zA-Z0-9-_]*$"

// validateActorName checks the optional actor name against namePattern.
func validateActorName(name string) error {
	return validation.
		New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("name", name)).
		AddValidator(validation.NewPatternValidator(namePattern, name, gerrors.ErrInvalidActorName)).
		Validate()
}

// validateRuntimeName checks the runtime name given at construction time.
func validateRuntimeName(name string) error {
	return validation.
		New(validation.FailFast()).
		AddAssertion(name != "", gerrors.ErrNameRequired.Error()).
		AddValidator(validation.NewPatternValidator(namePattern, name, gerrors.ErrInvalidRuntimeName)).
		Validate()
}
