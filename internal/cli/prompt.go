package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errCancelled means the operator backed out of a selection.
var errCancelled = errors.New("cancelled")

// prompter reads operator answers a line at a time. One prompter is shared
// by every flow in a session so buffered input is never lost between them.
type prompter struct {
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(in), out: out}
}

// ask prints question and returns the trimmed answer. io.EOF is returned
// once input is exhausted; a final line without a newline is still an
// answer.
func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			fmt.Fprintln(p.out)
			return strings.TrimSpace(line), nil
		}
		fmt.Fprintln(p.out)
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// choose asks for a 1-based number in [1, n]. A blank answer, end of input,
// or anything out of range is errCancelled.
func (p *prompter) choose(question string, n int) (int, error) {
	answer, err := p.ask(question)
	if errors.Is(err, io.EOF) {
		return 0, errCancelled
	}
	if err != nil {
		return 0, err
	}
	i, convErr := strconv.Atoi(answer)
	if convErr != nil || i < 1 || i > n {
		return 0, errCancelled
	}
	return i, nil
}
