package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrAPIKeyRequired = errors.New("a TMDb API key is required to continue")
	ErrQuit           = errors.New("quit")
)

// PromptAPIKey asks for the TMDb API key on out and reads one line from in.
func PromptAPIKey(in *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter your TMDb API key: ")

	line, err := readLine(in)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading API key: %w", err)
	}
	if line == "" {
		return "", ErrAPIKeyRequired
	}
	return line, nil
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line != "" && errors.Is(err, io.EOF) {
		return line, nil
	}
	return line, err
}
