package mrt

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/readme.tmpl templates/mrt.tmpl templates/bytebybyte.tmpl
var templateFS embed.FS

var readMeTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// CatalogTable is what the document assembler needs from a table: both
// [Table] and [MRTFile] implement it.
type CatalogTable interface {
	TableName() string
	TableDescription() string
	LineWidth() int
	NRows() int
	ByteByByte(w io.Writer) error
	WriteData(w io.Writer) error
}

// SelfDescribing marks catalog tables whose byte-by-byte text already
// carries the header and separator rules, i.e. blocks recovered from a
// legacy file.
type SelfDescribing interface {
	SelfDescribed() bool
}

// SelfDescribed implements [SelfDescribing].
func (f *MRTFile) SelfDescribed() bool { return true }

// Reference is one "See also" entry.
type Reference struct {
	Catalogue string `yaml:"catalogue"`
	Title     string `yaml:"title"`
}

// ReadMeMaker assembles the ReadMe document and MRT headers for a set
// of standardized tables.
type ReadMeMaker struct {
	Catalogue string
	Title     string
	Author    string
	Authors   string
	Date      string
	Abstract  string
	Keywords  string
	Bibcode   string

	tables []CatalogTable
	refs   []Reference
}

// NewReadMeMaker returns a maker with the placeholder metadata expected
// by the CDS submission workflow.
func NewReadMeMaker() *ReadMeMaker {
	return &ReadMeMaker{
		Title:    "Title ?",
		Author:   "1st author ?",
		Authors:  "Authors ?",
		Date:     "Date ?",
		Abstract: "Abstract ?",
		Bibcode:  "ref ?",
	}
}

// AddTable registers a table for the ReadMe.
func (m *ReadMeMaker) AddTable(t CatalogTable) { m.tables = append(m.tables, t) }

// Tables returns the registered tables.
func (m *ReadMeMaker) Tables() []CatalogTable { return m.tables }

// AddReference adds a "See also" entry.
func (m *ReadMeMaker) AddReference(catalogue, title string) error {
	if catalogue == "" {
		return fmt.Errorf("%w: reference needs a catalogue name", ErrFormat)
	}
	m.refs = append(m.refs, Reference{Catalogue: catalogue, Title: title})
	return nil
}

// TablesIndex renders the File Summary block: one line per table with
// its record length, row count and description, preceded by the ReadMe
// line itself.
func (m *ReadMeMaker) TablesIndex() string {
	nameW, lreclW := 14, 0
	for _, t := range m.tables {
		if n := len(t.TableName()); n > nameW {
			nameW = n
		}
		if n := len(strconv.Itoa(t.LineWidth())); n > lreclW {
			lreclW = n
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-*s %*d %8s  %s\n", nameW, "ReadMe", lreclW, maxReadMeLine, ".", "this file")
	for _, t := range m.tables {
		fmt.Fprintf(&sb, "%-*s %*d %8s  %s\n",
			nameW, t.TableName(), lreclW, t.LineWidth(), strconv.Itoa(t.NRows()), t.TableDescription())
	}
	return sb.String()
}

// SeeAlso renders the references block, one wrapped line per entry.
func (m *ReadMeMaker) SeeAlso() string {
	if len(m.refs) == 0 {
		return ""
	}
	catW := 0
	for _, r := range m.refs {
		if len(r.Catalogue) > catW {
			catW = len(r.Catalogue)
		}
	}
	var sb strings.Builder
	for _, r := range m.refs {
		sb.WriteString(splitLine(fmt.Sprintf(" %-*s : %s", catW, r.Catalogue, r.Title), 0))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteReadMe assembles and writes the full ReadMe document.
func (m *ReadMeMaker) WriteReadMe(w io.Writer) error {
	var bbb strings.Builder
	for _, t := range m.tables {
		section, err := m.byteByByteSection(t)
		if err != nil {
			return err
		}
		bbb.WriteString(section)
		bbb.WriteByte('\n')
	}

	return readMeTemplates.ExecuteTemplate(w, "readme.tmpl", map[string]string{
		"Catalogue":   m.Catalogue,
		"Title":       splitLine(m.Title, 0),
		"Author":      m.Author,
		"Date":        m.Date,
		"Abstract":    splitLine(m.Abstract, 2),
		"Authors":     m.formatAuthors(4),
		"Bibcode":     "=" + m.Bibcode,
		"Keywords":    m.formatKeywords(len("Keywords: ")),
		"TablesIndex": m.TablesIndex(),
		"SeeAlso":     m.SeeAlso(),
		"ByteByByte":  bbb.String(),
		"Today":       time.Now().Format("02-Jan-2006"),
	})
}

// WriteMRT writes one table as a machine-readable table: title and
// author header, byte-by-byte description, then the data rows.
func (m *ReadMeMaker) WriteMRT(w io.Writer, t CatalogTable) error {
	section, err := m.byteByByteSection(t)
	if err != nil {
		return err
	}
	err = readMeTemplates.ExecuteTemplate(w, "mrt.tmpl", map[string]string{
		"Title":      splitLine(m.Title, 0),
		"Authors":    m.formatAuthors(4),
		"Table":      t.TableDescription(),
		"ByteByByte": section,
	})
	if err != nil {
		return err
	}
	return t.WriteData(w)
}

func (m *ReadMeMaker) byteByByteSection(t CatalogTable) (string, error) {
	var buf bytes.Buffer
	if err := t.ByteByByte(&buf); err != nil {
		return "", err
	}
	if sd, ok := t.(SelfDescribing); ok && sd.SelfDescribed() {
		return "Byte-by-byte Description of file: " + t.TableName() + "\n" + buf.String(), nil
	}
	var out bytes.Buffer
	err := readMeTemplates.ExecuteTemplate(&out, "bytebybyte.tmpl", map[string]string{
		"File":       t.TableName(),
		"ByteByByte": buf.String(),
	})
	return out.String(), err
}

var reAuthorInitials = regexp.MustCompile(` (?:[A-Z]\.-?)+`)

// formatAuthors wraps the author list without ever separating a surname
// from its initials: the spaces in front of initials are pinned before
// wrapping and restored afterwards.
func (m *ReadMeMaker) formatAuthors(shift int) string {
	line := m.Authors
	for _, pin := range reAuthorInitials.FindAllString(line, -1) {
		line = strings.ReplaceAll(line, pin, "!"+strings.TrimSpace(pin))
	}
	wrapped := strings.ReplaceAll(fill(line, shift), "!", " ")

	if m.Author != "" {
		if len(wrapped) > 0 {
			return m.Author + ", " + wrapped
		}
		return m.Author
	}
	return wrapped
}

// formatKeywords wraps the keyword list without breaking between two
// semicolon-separated terms.
func (m *ReadMeMaker) formatKeywords(shift int) string {
	line := []rune(m.Keywords)
	for i := 1; i < len(line); i++ {
		if line[i] == ' ' && line[i-1] != ';' {
			line[i] = '!'
		}
	}
	return strings.ReplaceAll(fill(string(line), shift), "!", " ")
}
