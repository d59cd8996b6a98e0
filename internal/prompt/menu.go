// Package prompt implements the numbered-menu fact selection used by
// the interactive mode.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrhapile/skindx/pkg/types"
)

// DefaultSentinel selects the preset fact set instead of indices.
const DefaultSentinel = "default"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmptySelection = errors.New("no valid facts selected")
)

// Menu lists labels numbered from 1 and turns answers into fact sets.
type Menu struct {
	labels []string
	preset types.FactSet
}

// NewMenu builds a menu over labels (expected sorted) with preset as
// the answer to DefaultSentinel.
func NewMenu(labels []string, preset types.FactSet) *Menu {
	return &Menu{
		labels: append([]string(nil), labels...),
		preset: preset.Clone(),
	}
}

// Labels returns the labels in menu order.
func (m *Menu) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Render writes the numbered menu and the input instructions.
func (m *Menu) Render(w io.Writer) {
	fmt.Fprintln(w, "Available symptoms and treatments:")
	for i, l := range m.labels {
		fmt.Fprintf(w, "  %d. %s\n", i+1, l)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Enter the numbers of the symptoms/treatments that apply, separated by commas.")
	fmt.Fprintln(w, "Example: 1,3,5")
	fmt.Fprintf(w, "Or type '%s' to use the example case.\n", DefaultSentinel)
}

// Parse converts an answer into facts. Out-of-range indices are ignored;
// any token that is not a number makes the whole answer invalid.
func (m *Menu) Parse(input string) (types.FactSet, error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, DefaultSentinel) {
		if m.preset.Len() == 0 {
			return nil, ErrEmptySelection
		}
		return m.preset.Clone(), nil
	}

	facts := types.NewFactSet()
	for _, tok := range strings.Split(input, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, strings.TrimSpace(tok))
		}
		if n >= 1 && n <= len(m.labels) {
			facts.Add(m.labels[n-1])
		}
	}

	if facts.Len() == 0 {
		return nil, ErrEmptySelection
	}
	return facts, nil
}

// Ask shows the menu, reads one line and parses it.
func (m *Menu) Ask(r *bufio.Reader, w io.Writer) (types.FactSet, error) {
	m.Render(w)
	fmt.Fprint(w, "\nYour choice: ")

	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	return m.Parse(line)
}

// Confirm asks a yes/no question. Only "y" and "yes" count as yes.
func Confirm(r *bufio.Reader, w io.Writer, question string) (bool, error) {
	fmt.Fprintf(w, "%s (y/n): ", question)

	line, err := readLine(r)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine returns the next line; a final line without a newline is
// still returned, and EOF with nothing read is reported as io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}
