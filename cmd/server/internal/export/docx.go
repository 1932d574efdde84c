// Package export renders Markdown minutes as a Word document.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Yu Gothic"
	fontSize  = 11
	textColor = "000000"

	// DefaultTitle is used when the caller gives none.
	DefaultTitle = "議事録"
)

// ErrEmptyMinutes is returned for blank input.
var ErrEmptyMinutes = errors.New("minutes are empty")

var (
	reHeading   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet    = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reTableRule = regexp.MustCompile(`^\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)*\|?$`)
)

// WriteFile renders markdown into a .docx at path.
func WriteFile(title, markdown, path string) error {
	if strings.TrimSpace(markdown) == "" {
		return ErrEmptyMinutes
	}
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 18)

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		// The model usually opens with "# 議事録", which would repeat the title.
		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			if len(m[1]) == 1 && cleanInline(m[2]) == title {
				continue
			}
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if strings.HasPrefix(trimmed, "|") {
			if reTableRule.MatchString(trimmed) {
				continue
			}
			addRichText(doc.AddParagraph(""), strings.Join(tableCells(trimmed), " ／ "))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Render returns the document bytes. godocx writes to a path, so the file goes
// through a private temp directory that is removed afterwards.
func Render(title, markdown string) ([]byte, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, ErrEmptyMinutes
	}

	dir, err := os.MkdirTemp("", "minutes-docx-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "minutes.docx")
	if err := WriteFile(title, markdown, path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func tableCells(row string) []string {
	row = strings.Trim(row, "|")
	parts := strings.Split(row, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 12
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanInline(text)).Font(fontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanInline(part)).Font(fontName).Size(fontSize).Color(textColor)
		}
		if i < len(matches) {
			p.AddText(cleanInline(matches[i][1])).Font(fontName).Size(fontSize).Color(textColor).Bold(true)
		}
	}
}

func cleanInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
