package menu

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// errEndOfInput reports that the operator's input stream is exhausted.
var errEndOfInput = errors.New("end of input")

// readLine prints prompt and returns the next line without its line ending.
// A final line with no trailing newline is still returned; after that the
// reader reports errEndOfInput.
func (m *Menu) readLine(prompt string) (string, error) {
	m.print(prompt)

	line, err := m.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", errEndOfInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (m *Menu) readChoice() (string, error) {
	line, err := m.readLine(promptChoice)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readInt prompts until the operator enters a base-10 integer.
func (m *Menu) readInt(prompt string) (int, error) {
	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, nil
		}
		m.logger.Debug("rejected numeric input", "input", line)
		m.println(msgNotANumber)
	}
}

func (m *Menu) readID(prompt string) (int64, error) {
	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return 0, err
		}
		id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err == nil {
			return id, nil
		}
		m.logger.Debug("rejected id input", "input", line)
		m.println(msgNotANumber)
	}
}
