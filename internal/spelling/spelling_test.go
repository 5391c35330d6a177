package spelling

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titles = []string{
	"Lightning Bolt",
	"Serra Angel",
	"Counterspell",
	"Sphinx's Revelation",
	"Island",
	"Inland",
	"Plains",
}

func TestSuggest(t *testing.T) {
	s := New(titles)

	tests := []struct {
		word string
		want string
	}{
		{"lightnig bolt", "Lightning Bolt"},
		{"Sera Angel", "Serra Angel"},
		{"counterspel", "Counterspell"},
		{"sphinx revelation", "Sphinx's Revelation"},
		{"plians", "Plains"},
		{"LIGHTNING BOLT", "Lightning Bolt"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			i, ok := s.Suggest(tt.word)
			require.True(t, ok)
			assert.Equal(t, tt.want, titles[i])
		})
	}
}

func TestSuggest_TiesGoToEarliestTitle(t *testing.T) {
	s := New(titles)

	// One insertion away from both Island and Inland.
	i, ok := s.Suggest("iland")
	require.True(t, ok)
	assert.Equal(t, "Island", titles[i])
}

func TestSuggest_NothingClose(t *testing.T) {
	s := New(titles)

	for _, word := range []string{"", "zzzzzz", "dragon's maze"} {
		_, ok := s.Suggest(word)
		assert.False(t, ok, word)
	}
}

func TestSuggest_ConcurrentReaders(t *testing.T) {
	s := New(titles)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx, ok := s.Suggest("serra angle")
			assert.True(t, ok)
			assert.Equal(t, 1, idx)
		}()
	}
	wg.Wait()
}
