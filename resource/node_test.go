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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode(t *testing.T) {
	t.Run("With clone isolation", func(t *testing.T) {
		node := Node{
			ID:       "node-1",
			Capacity: NewRequest("cpu", "4"),
		}

		cloned := node.Clone()
		assert.Equal(t, node.ID, cloned.ID)
		copied := cloned.Capacity[CPU]
		assert.Zero(t, copied.Cmp(NewQuantity(4)))

		// mutating the clone must not reach the source
		cloned.Capacity[CPU] = NewQuantity(8)
		original := node.Capacity[CPU]
		assert.Zero(t, original.Cmp(NewQuantity(4)))
	})
	t.Run("With capacity clone isolation", func(t *testing.T) {
		capacity := NodeCapacity{
			Total:    NewRequest("cpu", "4"),
			Reserved: NewRequest("cpu", "1"),
		}

		cloned := capacity.Clone()
		cloned.Reserved[CPU] = NewQuantity(4)
		reserved := capacity.Reserved[CPU]
		assert.Zero(t, reserved.Cmp(NewQuantity(1)))
	})
}
