package grid

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGolden(t *testing.T) {
	g := Generate([]string{"CAT", "DOG"}, 5, "golden")
	require.False(t, g.IsSentinel())
	assert.Equal(t, []string{
		"ROILL",
		"BRXJK",
		"CATXN",
		"GRGOD",
		"LAAEA",
	}, g.Rows())
}

func TestGenerateDeterministic(t *testing.T) {
	words := []string{"PADDLE", "QUIVER", "ELK", "CHERRY", "IGLOO", "CAMEL", "HONEY", "LOBSTER"}
	a := Generate(words, 10, "2026-10-19:0")
	b := Generate(words, 10, "2026-10-19:0")
	assert.Equal(t, a.Rows(), b.Rows())
	assert.Equal(t, []string{
		"EGGNQIPGRH",
		"YIIRELDDAP",
		"EGCETLPBBL",
		"NLHVTITIBO",
		"OOEIQCCDOB",
		"HORUJSGDSS",
		"FERQSPZWLT",
		"UHYELEMACE",
		"JJEZLISEUR",
		"TKKLWKAXTV",
	}, a.Rows())
}

func TestGenerateFindability(t *testing.T) {
	words := []string{"OTTER", "RAVEN", "MAPLE", "COMET", "FERN", "QUARTZ"}
	for i := 0; i < 25; i++ {
		seed := fmt.Sprintf("find-%d", i)
		g := Generate(words, 9, seed)
		if g.IsSentinel() {
			continue
		}
		for _, w := range words {
			_, ok := g.Find(w)
			assert.True(t, ok, "seed %s word %s", seed, w)
		}
		for _, row := range g.Rows() {
			assert.Equal(t, strings.ToUpper(row), row)
			assert.NotContains(t, row, "\x00")
		}
	}
}

func TestGenerateTooLongWordReturnsSentinel(t *testing.T) {
	g := Generate([]string{"CAT", "ABCDEF"}, 5, "x")
	assert.True(t, g.IsSentinel())
	assert.Equal(t, 5, g.Size())
	for _, row := range g.Rows() {
		assert.Equal(t, "XXXXX", row)
	}

	_, err := GenerateChecked([]string{"ABCDEF"}, 5, "x")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerateCheckedOK(t *testing.T) {
	g, err := GenerateChecked([]string{"CAT", "DOG"}, 5, "golden")
	require.NoError(t, err)
	assert.NoError(t, g.Verify([]string{"CAT", "DOG"}))
}

func TestGenerateNoWords(t *testing.T) {
	g := Generate(nil, 4, "empty")
	require.False(t, g.IsSentinel())
	assert.Len(t, g.Rows(), 4)
}

func TestGenerateNonPositiveSize(t *testing.T) {
	assert.True(t, Generate([]string{"A"}, 0, "s").IsSentinel())
}
