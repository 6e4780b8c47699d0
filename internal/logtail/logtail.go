package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path.
// A maxLines of zero or less returns every line. A missing file yields nil.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Palette styles the parts of a log line.
type Palette struct {
	Timestamp lipgloss.Style
	Failure   lipgloss.Style
	Message   lipgloss.Style
}

// DefaultPalette is tuned for dark terminals.
func DefaultPalette() Palette {
	return Palette{
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
		Failure:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Message:   lipgloss.NewStyle(),
	}
}

// Matches the standard log package header: an optional "prefix " followed
// by "2006/01/02 15:04:05 ".
var timestampPattern = regexp.MustCompile(`^(\S+ )?(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)?) (.*)$`)

var failureWords = []string{"error", "failed", "fail:", "panic"}

// ColorizeLine styles a single log line. Lines without a timestamp are
// returned unchanged.
func (p Palette) ColorizeLine(line string) string {
	m := timestampPattern.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	msgStyle := p.Message
	if isFailure(m[3]) {
		msgStyle = p.Failure
	}
	return m[1] + p.Timestamp.Render(m[2]) + " " + msgStyle.Render(m[3])
}

// ColorizeLines styles each line.
func (p Palette) ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = p.ColorizeLine(line)
	}
	return out
}

func isFailure(msg string) bool {
	lower := strings.ToLower(msg)
	for _, word := range failureWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
