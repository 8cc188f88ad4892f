package client

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type terminalPasswordReader struct {
	in    *os.File
	out   io.Writer
	lines *bufio.Reader
}

// NewTerminalPasswordReader reads passwords from stdin with echo disabled.
// When stdin is not a terminal it reads one line per call instead, so
// passwords can be piped in scripts.
func NewTerminalPasswordReader() PasswordReader {
	return &terminalPasswordReader{in: os.Stdin, out: os.Stderr}
}

func (r *terminalPasswordReader) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)

	fd := int(r.in.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(r.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	if r.lines == nil {
		r.lines = bufio.NewReader(r.in)
	}
	line, err := r.lines.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
