package vault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/pwvault/internal/models"
	"github.com/TheMichaelB/pwvault/internal/vault"
)

func viewFixture(t *testing.T) (*vault.Store, *models.Vault) {
	t.Helper()
	s := testStore(t, testConfig())
	v := emptyVault()

	_, err := s.AddEntry(v, vault.EntryFields{Title: "zebra", Username: "zoe"})
	require.NoError(t, err)
	_, err = s.AddEntry(v, vault.EntryFields{Title: "apple", Tags: []string{"fruit"}})
	require.NoError(t, err)
	_, err = s.AddEntry(v, vault.EntryFields{Title: "Mango", Pinned: true, Tags: []string{"fruit"}})
	require.NoError(t, err)
	_, err = s.AddNote(v, "banana", "yellow")
	require.NoError(t, err)

	return s, v
}

func TestListEntriesOrdering(t *testing.T) {
	_, v := viewFixture(t)

	entries := vault.ListEntries(v, vault.ViewOptions{})
	require.Len(t, entries, 4)

	// Pinned first, then case-insensitive title order.
	assert.Equal(t, "Mango", entries[0].Title)
	assert.Equal(t, "apple", entries[1].Title)
	assert.Equal(t, "banana", entries[2].Title)
	assert.Equal(t, "zebra", entries[3].Title)
}

func TestListEntriesDoesNotMutateVault(t *testing.T) {
	_, v := viewFixture(t)

	var storedOrder []string
	for _, e := range v.Entries {
		storedOrder = append(storedOrder, e.Title)
	}

	view := vault.ListEntries(v, vault.ViewOptions{})

	// The stored sequence keeps insertion order.
	for i, e := range v.Entries {
		assert.Equal(t, storedOrder[i], e.Title)
	}

	// The view holds copies, not aliases.
	view[0].Title = "changed"
	assert.NotEqual(t, "changed", v.FindEntry(view[0].ID).Title)
}

func TestListEntriesFilters(t *testing.T) {
	_, v := viewFixture(t)

	t.Run("by tag", func(t *testing.T) {
		entries := vault.ListEntries(v, vault.ViewOptions{Tag: "fruit"})
		require.Len(t, entries, 2)
		assert.Equal(t, "Mango", entries[0].Title)
		assert.Equal(t, "apple", entries[1].Title)
	})

	t.Run("by type", func(t *testing.T) {
		entries := vault.ListEntries(v, vault.ViewOptions{Type: models.TypeNote})
		require.Len(t, entries, 1)
		assert.Equal(t, "banana", entries[0].Title)
	})

	t.Run("by query", func(t *testing.T) {
		entries := vault.ListEntries(v, vault.ViewOptions{Query: "ZeB"})
		require.Len(t, entries, 1)
		assert.Equal(t, "zebra", entries[0].Title)
	})

	t.Run("query matches username", func(t *testing.T) {
		entries := vault.ListEntries(v, vault.ViewOptions{Query: "zoe"})
		require.Len(t, entries, 1)
		assert.Equal(t, "zebra", entries[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, vault.ListEntries(v, vault.ViewOptions{Query: "nothing"}))
	})
}
