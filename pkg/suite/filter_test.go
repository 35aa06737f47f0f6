// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterCatalog() []Descriptor {
	return []Descriptor{
		{Name: "RFC2544_p2p", Description: "p2p throughput"},
		{Name: "RFC2544_b2b", Description: "back to back"},
		{Name: "soak_test", Description: "soak"},
	}
}

func names(descriptors []Descriptor) []string {
	var names []string
	for _, descriptor := range descriptors {
		names = append(names, descriptor.Name)
	}
	return names
}

func TestFilterInclusive(t *testing.T) {
	matched := Filter(filterCatalog(), "RFC")
	assert.Equal(t, []string{"RFC2544_p2p", "RFC2544_b2b"}, names(matched))
}

func TestFilterExclusion(t *testing.T) {
	matched := Filter(filterCatalog(), "RFC,!p2p")
	assert.Equal(t, []string{"RFC2544_b2b"}, names(matched))
}

func TestFilterLeadingNegative(t *testing.T) {
	// A leading negative term starts from the full catalog, not the
	// empty set.
	matched := Filter(filterCatalog(), "!p2p")
	assert.Equal(t, []string{"RFC2544_b2b", "soak_test"}, names(matched))
}

func TestFilterEmptySelectsAll(t *testing.T) {
	assert.Len(t, Filter(filterCatalog(), ""), 3)
	assert.Len(t, Filter(filterCatalog(), " , "), 3)
}

func TestFilterTermsORed(t *testing.T) {
	matched := Filter(filterCatalog(), "soak,b2b")
	assert.Equal(t, []string{"RFC2544_b2b", "soak_test"}, names(matched))
}

func TestFilterCaseInsensitive(t *testing.T) {
	matched := Filter(filterCatalog(), "rfc2544_P2P")
	assert.Equal(t, []string{"RFC2544_p2p"}, names(matched))
}

func TestSelectNames(t *testing.T) {
	matched, err := SelectNames(filterCatalog(), []string{"soak_test", "RFC2544_p2p"})
	require.NoError(t, err)
	// Catalog order is preserved regardless of argument order.
	assert.Equal(t, []string{"RFC2544_p2p", "soak_test"}, names(matched))

	_, err = SelectNames(filterCatalog(), []string{"nonexistent"})
	assert.Error(t, err)
}
