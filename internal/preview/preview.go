// Package preview loads file contents for the file view and applies
// syntax highlighting. Loading is synchronous and bounded by a size
// cap so a stray multi-gigabyte file cannot stall the event loop or
// blow up highlighting latency.
package preview

import (
	"errors"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/okabe-dev/peruse/internal/apperr"
)

// DefaultMaxSize caps how large a file the viewer will load.
const DefaultMaxSize int64 = 10 << 20 // 10 MiB

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "base16-snazzy"

const unreadablePlaceholder = "Unable to read..."

var errTooLarge = errors.New("file exceeds size cap")

// Span is a run of text sharing one display style.
type Span struct {
	Text  string
	Style tcell.Style
}

// Line is one display row of styled spans.
type Line struct {
	Spans []Span
}

// FileText is a loaded file ready for rendering: styled lines plus the
// metrics that bound scrolling.
type FileText struct {
	Lines []Line
	Rows  int
	Width int
}

// RowCount returns the number of display rows.
func (ft *FileText) RowCount() int { return ft.Rows }

// MaxLineWidth returns the display width of the longest line.
func (ft *FileText) MaxLineWidth() int { return ft.Width }

// Loader turns file paths into highlighted FileText.
type Loader struct {
	MaxSize int64
	style   *chroma.Style
}

// NewLoader builds a Loader with the given chroma style name; unknown
// names fall back to chroma's default.
func NewLoader(styleName string) *Loader {
	if styleName == "" {
		styleName = DefaultStyle
	}
	return &Loader{
		MaxSize: DefaultMaxSize,
		style:   styles.Get(styleName),
	}
}

// Load reads and highlights path. Files over MaxSize are rejected with
// a Path error before any content is read. An unreadable file degrades
// to a placeholder body rather than failing the whole view.
func (l *Loader) Load(path string) (*FileText, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperr.Path("open file", path, err)
	}
	maxSize := l.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if info.Size() > maxSize {
		return nil, apperr.Path("open file", path, errTooLarge)
	}

	content := unreadablePlaceholder
	if raw, err := os.ReadFile(path); err == nil {
		content = string(raw)
	}

	rows, width := textDimensions(content)
	lines, err := l.highlight(content, path)
	if err != nil {
		return nil, err
	}

	return &FileText{Lines: lines, Rows: rows, Width: width}, nil
}

func textDimensions(content string) (rows, width int) {
	split := strings.Split(content, "\n")
	for _, line := range split {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	return len(split), width
}

// highlight tokenizes the content with a lexer picked by filename and
// maps token colours onto tcell styles, one Line per display row.
func (l *Loader) highlight(content, path string) ([]Line, error) {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return nil, apperr.Parse("highlight", err)
	}

	lines := []Line{{}}
	appendSpan := func(text string, style tcell.Style) {
		if text == "" {
			return
		}
		last := len(lines) - 1
		lines[last].Spans = append(lines[last].Spans, Span{Text: text, Style: style})
	}

	for token := iterator(); token != chroma.EOF; token = iterator() {
		style := l.tokenStyle(token.Type)
		value := token.Value
		for {
			nl := strings.IndexByte(value, '\n')
			if nl < 0 {
				appendSpan(value, style)
				break
			}
			appendSpan(value[:nl], style)
			lines = append(lines, Line{})
			value = value[nl+1:]
		}
	}
	return lines, nil
}

func (l *Loader) tokenStyle(tt chroma.TokenType) tcell.Style {
	entry := l.style.Get(tt)
	style := tcell.StyleDefault
	if entry.Colour.IsSet() {
		style = style.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}
