package input

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Reader implements ports.LineReader over stdin. The prompt is only
// printed when stdin is a terminal, so piped command lists stay clean.
type Reader struct {
	reader   *bufio.Reader
	terminal bool
}

func NewReader() *Reader {
	return &Reader{
		reader:   bufio.NewReader(os.Stdin),
		terminal: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// ReadLine reads one line of input. It returns io.EOF when the input
// stream is exhausted or the user closes it.
func (r *Reader) ReadLine(prompt string) (string, error) {
	if r.terminal {
		fmt.Print(prompt)
	}
	line, err := r.reader.ReadString('\n')
	if err != nil {
		// A final unterminated line still counts as input; EOF is
		// reported on the next call.
		if len(line) > 0 {
			return trimNewline(line), nil
		}
		return "", err
	}
	return trimNewline(line), nil
}

func trimNewline(line string) string {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
