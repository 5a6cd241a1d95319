// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/flowd"
)

func TestInportsRemoveTakesFirstInOrder(t *testing.T) {
	ports := flowd.Inports{}
	flowd.Wire(flowd.Outports{}, "OUT", ports, "IN", "sink", 4)
	flowd.Wire(flowd.Outports{}, "OUT", ports, "IN", "sink", 4)

	require.Len(t, ports["IN"], 2)

	first, ok := ports.Remove("IN")
	require.True(t, ok)
	require.NotNil(t, first)
	assert.Len(t, ports["IN"], 1, "removing the first endpoint leaves the rest in order")

	second, ok := ports.Remove("IN")
	require.True(t, ok)
	require.NotNil(t, second)
	assert.Empty(t, ports["IN"])

	_, ok = ports.Remove("IN")
	assert.False(t, ok)
}

func TestInportsRemoveAllDrainsArrayPort(t *testing.T) {
	ports := flowd.Inports{}
	for i := 0; i < 3; i++ {
		flowd.Wire(flowd.Outports{}, "OUT", ports, "IN", "sink", 4)
	}

	all := ports.RemoveAll("IN")
	assert.Len(t, all, 3)
	assert.Empty(t, ports["IN"])
}

func TestOutportsRemove(t *testing.T) {
	outports := flowd.Outports{}
	flowd.Wire(outports, "OUT", flowd.Inports{}, "IN", "sink", 4)

	p, ok := outports.Remove("OUT")
	require.True(t, ok)
	require.NotNil(t, p)
	assert.Empty(t, outports["OUT"])
}
