package fileio

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCoNLL(t *testing.T) {
	input := "ሰላም\tO\nአዲስ\tB-LOC\nአበባ\tI-LOC\n\nዋጋ\tO\n500\tB-PRICE\n"

	sentences, err := decodeCoNLL(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, sentences, 2)

	assert.Equal(t, []string{"ሰላም", "አዲስ", "አበባ"}, sentences[0].Tokens)
	assert.Equal(t, []string{"O", "B-LOC", "I-LOC"}, sentences[0].Labels)
	assert.Equal(t, []string{"ዋጋ", "500"}, sentences[1].Tokens)
}

func TestDecodeCoNLL_NoTrailingBlankLine(t *testing.T) {
	sentences, err := decodeCoNLL(strings.NewReader("ሰላም\tO"))
	require.NoError(t, err)
	require.Len(t, sentences, 1)
	assert.Equal(t, []string{"ሰላም"}, sentences[0].Tokens)
}

func TestDecodeCoNLL_MalformedLine(t *testing.T) {
	_, err := decodeCoNLL(strings.NewReader("no-tab-here\n"))
	assert.Error(t, err)
}

func TestCoNLL_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.conll")

	in := []Sentence{
		{Tokens: []string{"ሰላም", "ዓለም"}, Labels: []string{"O", "O"}},
		{Tokens: []string{"ብር"}, Labels: []string{"B-PRICE"}},
	}

	require.NoError(t, SaveCoNLL(path, in))

	out, err := LoadCoNLL(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveCoNLL_MismatchedLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.conll")
	err := SaveCoNLL(path, []Sentence{{Tokens: []string{"a", "b"}, Labels: []string{"O"}}})
	assert.Error(t, err)
}
