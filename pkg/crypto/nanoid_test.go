package crypto

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNanoID(t *testing.T) {
	tests := []struct {
		name         string
		alphabet     string
		wantErr      error
		wantAlphabet string
	}{
		{name: "empty uses default", alphabet: "", wantAlphabet: DefaultAlphabet},
		{name: "custom alphabet", alphabet: "ABCDEFGH", wantAlphabet: "ABCDEFGH"},
		{name: "too short", alphabet: "ABC", wantErr: ErrAlphabetTooShort},
		{name: "too long", alphabet: strings.Repeat("a", 256), wantErr: ErrAlphabetTooLong},
		{name: "max size", alphabet: strings.Repeat("a", 255), wantAlphabet: strings.Repeat("a", 255)},
		{name: "non ascii", alphabet: "abcdefgé", wantErr: ErrAlphabetNotASCII},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Act
			g, err := NewNanoID(test.alphabet)

			// Assert
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.wantAlphabet, g.alphabet)
		})
	}
}

func TestMaskFor(t *testing.T) {
	tests := []struct {
		n    int
		want byte
	}{
		{n: 8, want: 7},
		{n: 9, want: 15},
		{n: 16, want: 15},
		{n: 64, want: 63},
		{n: 65, want: 127},
		{n: 255, want: 255},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, maskFor(test.n), "maskFor(%d)", test.n)
	}
}

func TestNanoIDGenerate_LengthAndAlphabet(t *testing.T) {
	g, err := NewNanoID("abcdefgh")
	require.NoError(t, err)

	for _, size := range []int{1, 8, 21, 64} {
		id, err := g.Generate(size)
		require.NoError(t, err)
		assert.Len(t, id, size)
		for _, c := range id {
			assert.Contains(t, "abcdefgh", string(c))
		}
	}
}

func TestNanoIDGenerate_InvalidSize(t *testing.T) {
	g, err := NewNanoID("")
	require.NoError(t, err)

	_, err = g.Generate(0)
	assert.ErrorIs(t, err, ErrInvalidIDSize)
}

func TestNewID_UniqueUnderConcurrency(t *testing.T) {
	const goroutines = 100

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := NewID()
			assert.NoError(t, err)
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines)
}
