package fileio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentence is one tagged token sequence from a CoNLL file.
type Sentence struct {
	Tokens []string
	Labels []string
}

// LoadCoNLL reads tab-separated token/label pairs, sentences separated
// by blank lines.
func LoadCoNLL(path string) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return decodeCoNLL(f)
}

func decodeCoNLL(r io.Reader) ([]Sentence, error) {
	var (
		sentences []Sentence
		current   Sentence
	)

	flush := func() {
		if len(current.Tokens) > 0 {
			sentences = append(sentences, current)
			current = Sentence{}
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}

		token, label, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("malformed conll line: %q", line)
		}
		current.Tokens = append(current.Tokens, token)
		current.Labels = append(current.Labels, label)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read conll: %w", err)
	}

	// the file may not end with a blank line
	flush()

	return sentences, nil
}

// SaveCoNLL writes sentences as tab-separated token/label pairs with a
// blank line after each sentence.
func SaveCoNLL(path string, sentences []Sentence) error {
	return writeFile(path, func(w io.Writer) error {
		for _, s := range sentences {
			if len(s.Tokens) != len(s.Labels) {
				return fmt.Errorf("sentence has %d tokens but %d labels", len(s.Tokens), len(s.Labels))
			}
			for i, token := range s.Tokens {
				if _, err := fmt.Fprintf(w, "%s\t%s\n", token, s.Labels[i]); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		return nil
	})
}
