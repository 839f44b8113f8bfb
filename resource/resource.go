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

// Package resource implements the capacity accounting of the runtime: typed
// resource quantities, per-actor resource requests and the cluster-wide
// reservation ledger placement decisions are charged against.
package resource

import (
	k8sresource "k8s.io/apimachinery/pkg/api/resource"
)

// Kind identifies a resource dimension. CPU, GPU and Memory are predefined;
// any other string names a custom resource (accelerators, licenses, slots).
type Kind string

const (
	// CPU is the processing capacity of a node, usually in cores.
	// Fractional values such as 500m (half a core) are valid.
	CPU Kind = "cpu"
	// GPU is the number of graphics accelerators of a node.
	GPU Kind = "gpu"
	// Memory is the main memory of a node, usually in bytes with binary
	// suffixes (512Mi, 4Gi).
	Memory Kind = "memory"
)

// Quantity is a fixed-point representation of a resource amount. It supports
// exact decimal arithmetic so that repeated reserve/release cycles never
// drift, and parses canonical suffixed forms such as "500m", "2", "4Gi".
type Quantity = k8sresource.Quantity

// MustParse turns the given string into a Quantity or panics, so it is meant
// for static initialization.
func MustParse(str string) Quantity {
	return k8sresource.MustParse(str)
}

// ParseQuantity parses the given string into a Quantity.
func ParseQuantity(str string) (Quantity, error) {
	return k8sresource.ParseQuantity(str)
}

// NewQuantity returns a whole-unit Quantity, e.g. NewQuantity(8) for 8 cores.
func NewQuantity(value int64) Quantity {
	return *k8sresource.NewQuantity(value, k8sresource.DecimalSI)
}

// NewMilliQuantity returns a Quantity in thousandths of a unit,
// e.g. NewMilliQuantity(500) for half a core.
func NewMilliQuantity(value int64) Quantity {
	return *k8sresource.NewMilliQuantity(value, k8sresource.DecimalSI)
}
