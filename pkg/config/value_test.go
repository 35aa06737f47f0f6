// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	assert.Equal(t, "foo", NewValue("foo").String())
	assert.True(t, NewValue("true").Bool())
	assert.False(t, NewValue("false").Bool())
	assert.Equal(t, 1, NewValue("1").Int())
	assert.Equal(t, int64(1), NewValue("1").Int64())
	assert.Equal(t, float64(1), NewValue("1.0").Float64())
	assert.Equal(t, 2*time.Second, NewValue(2).Duration())
	assert.Equal(t, 500*time.Millisecond, NewValue("500ms").Duration())
	assert.Equal(t, []string{"a", "b"}, NewValue([]any{"a", "b"}).StringSlice())
	assert.Equal(t, []int{64, 128}, NewValue([]any{64, 128}).IntSlice())
	assert.Equal(t, "bar", NewValue(map[string]any{"foo": "bar"}).Map()["foo"])
}

func TestValueUnset(t *testing.T) {
	var value Value
	assert.False(t, value.IsSet())
	assert.Equal(t, "", value.String())
	assert.False(t, value.Bool())
	assert.Equal(t, 0, value.Int())
	assert.Nil(t, value.StringSlice())
	assert.Nil(t, value.Map())
}
