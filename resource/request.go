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

package resource

import (
	"sort"
	"strings"

	"go.uber.org/multierr"

	gerrors "github.com/tochemey/hive/errors"
)

// Request maps resource kinds to the amounts an actor needs for its whole
// lifetime. A missing kind means zero. Requests are plain values; mutating
// one never affects the ledger.
type Request map[Kind]Quantity

// NewRequest builds a Request from kind/amount pairs given as parseable
// quantity strings. It panics on invalid quantities, so it is meant for
// static initialization and tests.
func NewRequest(kindsAndAmounts ...string) Request {
	if len(kindsAndAmounts)%2 != 0 {
		panic("resource: NewRequest requires kind/amount pairs")
	}
	request := make(Request, len(kindsAndAmounts)/2)
	for i := 0; i < len(kindsAndAmounts); i += 2 {
		request[Kind(kindsAndAmounts[i])] = MustParse(kindsAndAmounts[i+1])
	}
	return request
}

// Validate returns an error when any quantity of the request is negative.
// An empty request is valid: such an actor only consumes a process slot.
func (r Request) Validate() error {
	var violations error
	for kind, quantity := range r {
		if quantity.Sign() < 0 {
			violations = multierr.Append(violations, gerrors.NewErrInvalidQuantity(string(kind)))
		}
	}
	return violations
}

// Clone returns a deep copy of the request.
func (r Request) Clone() Request {
	if r == nil {
		return nil
	}
	clone := make(Request, len(r))
	for kind, quantity := range r {
		clone[kind] = quantity.DeepCopy()
	}
	return clone
}

// IsZero reports whether the request asks for nothing.
func (r Request) IsZero() bool {
	for _, quantity := range r {
		if !quantity.IsZero() {
			return false
		}
	}
	return true
}

// Kinds returns the resource kinds of the request in lexical order.
func (r Request) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r))
	for kind := range r {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// String renders the request in a stable, log-friendly form.
func (r Request) String() string {
	if len(r) == 0 {
		return "none"
	}
	var builder strings.Builder
	for i, kind := range r.Kinds() {
		if i > 0 {
			builder.WriteString(", ")
		}
		quantity := r[kind]
		builder.WriteString(string(kind))
		builder.WriteString("=")
		builder.WriteString(quantity.String())
	}
	return builder.String()
}
