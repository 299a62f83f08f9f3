package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDelimited_Basic(t *testing.T) {
	t.Parallel()
	rows, err := ReadDelimited(strings.NewReader("a,b,c\n1,2,3\n"), DelimitedOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, rows[1])
}

func TestReadDelimited_PipeTrimAndBlankLines(t *testing.T) {
	t.Parallel()
	input := "Ward 1 | HCM | 12 Le Loi | Ben Thanh | HCM\n\n  \nWard 2|HN|3 \"Hang\" Bac|Hoan Kiem|HN\n"
	rows, err := ReadDelimited(strings.NewReader(input), DelimitedOptions{
		Delimiter: '|',
		TrimSpace: true,
		MinFields: 5,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Ward 1", "HCM", "12 Le Loi", "Ben Thanh", "HCM"}, rows[0])
	assert.Equal(t, `3 "Hang" Bac`, rows[1][2])
}

func TestReadDelimited_MinFields(t *testing.T) {
	t.Parallel()
	rows, err := ReadDelimited(strings.NewReader("a|b\na|b|c\n"), DelimitedOptions{
		Delimiter: '|',
		MinFields: 3,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
}

func TestReadDelimited_HashLinesAreData(t *testing.T) {
	t.Parallel()
	rows, err := ReadDelimited(strings.NewReader("#12|HCM|#12 Le Loi|Ben Thanh|HCM\n"), DelimitedOptions{Delimiter: '|'})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "#12 Le Loi", rows[0][2])
}
