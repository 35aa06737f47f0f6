// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strconv"
	"time"
)

// NewValue creates a new value
func NewValue(value any) Value {
	return Value{
		value: value,
	}
}

// Value is a single configuration setting. Accessors panic when the
// underlying value cannot be converted to the requested type; a
// mistyped setting is a programming or configuration-file error, not a
// runtime condition to recover from.
type Value struct {
	value any
}

// IsSet returns whether the value is non-nil
func (v Value) IsSet() bool {
	return v.value != nil
}

// Interface returns the raw value
func (v Value) Interface() any {
	return v.value
}

// String returns the value as a string
func (v Value) String() string {
	if v.value == nil {
		return ""
	}
	return fmt.Sprint(v.value)
}

// Bool returns the value as a boolean
func (v Value) Bool() bool {
	if v.value == nil {
		return false
	}
	b, err := strconv.ParseBool(fmt.Sprint(v.value))
	if err != nil {
		panic(err)
	}
	return b
}

// Int returns the value as an int
func (v Value) Int() int {
	return int(v.Int64())
}

// Int64 returns the value as an int64
func (v Value) Int64() int64 {
	if v.value == nil {
		return 0
	}
	i, err := strconv.ParseInt(fmt.Sprint(v.value), 10, 64)
	if err != nil {
		panic(err)
	}
	return i
}

// Float64 returns the value as a float64
func (v Value) Float64() float64 {
	if v.value == nil {
		return 0
	}
	f, err := strconv.ParseFloat(fmt.Sprint(v.value), 64)
	if err != nil {
		panic(err)
	}
	return f
}

// Duration returns the value as a time.Duration. Bare numbers are
// interpreted as seconds, which is how durations appear in conf files.
func (v Value) Duration() time.Duration {
	if v.value == nil {
		return 0
	}
	s := fmt.Sprint(v.value)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(i) * time.Second
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}

// StringSlice returns the value as a slice of strings
func (v Value) StringSlice() []string {
	if v.value == nil {
		return nil
	}
	switch value := v.value.(type) {
	case []string:
		return value
	case []any:
		strings := make([]string, 0, len(value))
		for _, element := range value {
			strings = append(strings, fmt.Sprint(element))
		}
		return strings
	default:
		panic(fmt.Sprintf("cannot convert %T to []string", v.value))
	}
}

// IntSlice returns the value as a slice of ints
func (v Value) IntSlice() []int {
	if v.value == nil {
		return nil
	}
	switch value := v.value.(type) {
	case []int:
		return value
	case []any:
		ints := make([]int, 0, len(value))
		for _, element := range value {
			i, err := strconv.Atoi(fmt.Sprint(element))
			if err != nil {
				panic(err)
			}
			ints = append(ints, i)
		}
		return ints
	default:
		panic(fmt.Sprintf("cannot convert %T to []int", v.value))
	}
}

// Map returns the value as a string-keyed map
func (v Value) Map() map[string]any {
	if v.value == nil {
		return nil
	}
	m, ok := v.value.(map[string]any)
	if !ok {
		panic(fmt.Sprintf("cannot convert %T to map[string]any", v.value))
	}
	return m
}
