package mrt

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// parseState drives the forward pass over a legacy MRT header.
//
// Transitions:
//
//	preamble  --"Byte-by-byte Description"-->  seekSpec
//	seekSpec  --first column-spec line----->   spec
//	spec      --dash separator------------->   notes
//	notes     --no note ever opened-------->   data (current line)
//	notes     --dash separator------------->   notesEnd
//	notesEnd  --any line------------------->   data (that line)
type parseState int

const (
	statePreamble parseState = iota
	stateSeekSpec
	stateSpec
	stateNotes
	stateNotesEnd
	stateData
)

const (
	bbbMarker   = "Byte-by-byte Description "
	bytesHeader = "Bytes Format"
)

var (
	reSpecLine  = regexp.MustCompile(`^\s*[0-9]*[ -]+([0-9]*)\s+[A-Z][0-9.]+\s+.*$`)
	reSeparator = regexp.MustCompile(`^-+$`)
	reNoteLine  = regexp.MustCompile(`^\s*Note *\([0-9]+\).*`)
	reTitleLine = regexp.MustCompile(`^\s*(?:Table|Title)\s*:\s*(.*?)\s*$`)
	reSpecParts = regexp.MustCompile(`^(\s*[\d \-]*\d\s+[A-Z][0-9.]*\s+\S+\s+\S+\s+)(.*)$`)
	reSpecField = regexp.MustCompile(`^\s*(?:(\d+)\s*-\s*)?(\d+)\s+([A-Z])([0-9.]*)\s+(\S+)\s+(\S+)\s+(.*)$`)
)

// MRTFile is the header metadata recovered from a legacy
// machine-readable-table file: its free-text description, the raw
// byte-by-byte block, the trailing notes, and where the data rows begin.
type MRTFile struct {
	Name        string
	Description string
	Notes       []string

	bbb       string
	lines     []string
	beginData int // 1-based line number of the first data row
	lineWidth int
	nLines    int
}

// OpenMRT parses the header of the MRT file at path. name is the table
// name used when re-exporting; description seeds the free-text
// description and is overridden by a "Table :" line when present.
func OpenMRT(path, name, description string) (*MRTFile, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return ParseMRT(fd, name, description)
}

// ParseMRT runs the header state machine over r. The data section is
// retained verbatim so it can be re-emitted with [MRTFile.WriteData].
func ParseMRT(r io.Reader, name, description string) (*MRTFile, error) {
	f := &MRTFile{Name: name, Description: description, beginData: -1}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	num := 0
	lineWidth := "0"
	state := statePreamble
	sepForced := false

	for sc.Scan() {
		line := sc.Text()
		num++
		f.lines = append(f.lines, line)

		switch state {
		case statePreamble:
			if mo := reTitleLine.FindStringSubmatch(line); mo != nil {
				if len(strings.TrimSpace(mo[1])) > 1 {
					f.Description = strings.TrimSpace(mo[1])
				}
				continue
			}
			if strings.HasPrefix(line, bbbMarker) {
				state = stateSeekSpec
				f.bbb = ""
				continue
			}
			if strings.HasPrefix(line, "========") || reSeparator.MatchString(line) {
				continue
			}
			f.Description = strings.TrimSpace(f.Description + " " + strings.TrimSpace(line))

		case stateSeekSpec:
			if reSpecLine.MatchString(line) {
				state = stateSpec
				lineWidth = f.consumeSpecLine(line, lineWidth, &state)
				continue
			}
			if sepForced && reSeparator.MatchString(line) {
				// The separator was already force-inserted after the
				// "Bytes Format" header.
				sepForced = false
				continue
			}
			if strings.HasPrefix(strings.TrimSpace(line), bytesHeader) {
				f.bbb += line + "\n" + strings.Repeat("-", maxReadMeLine) + "\n"
				sepForced = true
				continue
			}
			f.bbb += line + "\n"

		case stateSpec:
			lineWidth = f.consumeSpecLine(line, lineWidth, &state)

		case stateNotes:
			if reNoteLine.MatchString(line) {
				f.Notes = append(f.Notes, line)
				continue
			}
			if len(f.Notes) == 0 {
				state = stateData
				f.beginData = num
				continue
			}
			if reSeparator.MatchString(line) {
				state = stateNotesEnd
				continue
			}
			f.Notes[len(f.Notes)-1] += "\n" + line

		case stateNotesEnd:
			state = stateData
			f.beginData = num

		case stateData:
			// Data rows are not buffered beyond the raw line store; the
			// parser only needed to learn where they begin.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if f.beginData < 0 {
		f.beginData = num + 1
	}
	f.nLines = num - f.beginData + 1
	f.lineWidth, _ = strconv.Atoi(lineWidth)
	return f, nil
}

// consumeSpecLine handles one line of the byte-by-byte body: a dash
// separator moves to the notes state, a column-spec line updates the
// running line-width capture, and every line is buffered verbatim.
func (f *MRTFile) consumeSpecLine(line, lineWidth string, state *parseState) string {
	if reSeparator.MatchString(line) {
		*state = stateNotes
	}
	if mo := reSpecLine.FindStringSubmatch(line); mo != nil && mo[1] != "" {
		lineWidth = mo[1]
	}
	f.bbb += line + "\n"
	return lineWidth
}

// ByteByByte writes the recovered byte-by-byte block, followed by the
// notes fenced with dash rules. Non-ASCII note characters are replaced
// with "?".
func (f *MRTFile) ByteByByte(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(f.bbb)
	if len(f.Notes) > 0 {
		for _, note := range f.Notes {
			sb.WriteString(sanitizeASCII(strings.TrimSpace(note)))
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Repeat("-", maxReadMeLine))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func sanitizeASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 126 || (r < 32 && r != '\n' && r != '\t') {
			return '?'
		}
		return r
	}, s)
}

// WriteData re-emits the data section verbatim.
func (f *MRTFile) WriteData(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := f.beginData - 1; i >= 0 && i < len(f.lines); i++ {
		if _, err := bw.WriteString(f.lines[i]); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TableName implements [CatalogTable].
func (f *MRTFile) TableName() string { return f.Name }

// TableDescription implements [CatalogTable].
func (f *MRTFile) TableDescription() string { return f.Description }

// LineWidth returns the field width captured from the last column-spec
// line.
func (f *MRTFile) LineWidth() int { return f.lineWidth }

// NRows returns the number of data rows.
func (f *MRTFile) NRows() int { return f.nLines }

// BeginData returns the 1-based line number of the first data row.
func (f *MRTFile) BeginData() int { return f.beginData }

// fieldSpec is one column-spec line of the byte-by-byte block.
type fieldSpec struct {
	start, end int
	letter     byte
	label      string
}

// InjectLimits re-reads the data section using the byte ranges of the
// byte-by-byte block, infers each column's bounds, and injects
// "[min/max]" into the corresponding explanations. On a column-count
// mismatch the whole annotation is discarded and the original text kept.
func (f *MRTFile) InjectLimits() error {
	cols, err := f.dataColumns()
	if err != nil {
		return err
	}
	for _, c := range cols {
		c.Parse()
	}
	f.annotate(cols)
	return nil
}

// dataColumns slices the stored data rows along the byte-by-byte spec
// lines and rebuilds typed columns from them.
func (f *MRTFile) dataColumns() ([]*Column, error) {
	var specs []fieldSpec
	for _, line := range strings.Split(f.bbb, "\n") {
		mo := reSpecField.FindStringSubmatch(line)
		if mo == nil {
			continue
		}
		end, _ := strconv.Atoi(mo[2])
		start := end
		if mo[1] != "" {
			start, _ = strconv.Atoi(mo[1])
		}
		specs = append(specs, fieldSpec{start: start, end: end, letter: mo[3][0], label: mo[6]})
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no column specification found", ErrFormat)
	}

	data := f.lines[min(f.beginData-1, len(f.lines)):]
	cols := make([]*Column, 0, len(specs))
	for _, spec := range specs {
		values := make([]Value, 0, len(data))
		for _, row := range data {
			cell := sliceField(row, spec.start, spec.end)
			values = append(values, typedField(cell, spec.letter))
		}
		cols = append(cols, NewColumn(spec.label, values))
	}
	return cols, nil
}

func sliceField(row string, start, end int) string {
	if start > len(row) {
		return ""
	}
	if end > len(row) {
		end = len(row)
	}
	return strings.TrimSpace(row[start-1 : end])
}

func typedField(cell string, letter byte) Value {
	if cell == "" {
		return Null()
	}
	switch letter {
	case 'I':
		n, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return Null()
		}
		return Int(n)
	case 'F', 'E':
		v, err := FloatText(cell)
		if err != nil {
			return Null()
		}
		return v
	default:
		return Str(cell)
	}
}

// annotate is the statistics pass proper: it walks the buffered
// byte-by-byte text and the parsed columns in lockstep.
func (f *MRTFile) annotate(cols []*Column) {
	in := strings.Split(strings.TrimSuffix(f.bbb, "\n"), "\n")
	out := make([]string, 0, len(in))
	ncol := 0
	for _, line := range in {
		line = strings.ReplaceAll(line, `?=""`, "?")
		mo := reSpecParts.FindStringSubmatch(line)
		if mo == nil {
			out = append(out, line)
			continue
		}
		if ncol >= len(cols) {
			slog.Warn("byte-by-byte limit can't be interpreted", "file", f.Name)
			return
		}
		c := cols[ncol]
		ncol++

		rest := mo[2]
		if c.Min().IsNull() || c.Max().IsNull() || hasBoundTag(rest) {
			out = append(out, line)
			continue
		}
		s := mo[1] + "[" + c.Min().Text() + "/" + c.Max().Text() + "]"
		if rest == "" || rest[0] != '?' {
			s += " "
		}
		out = append(out, s+strings.TrimLeft(rest, " "))
	}
	if ncol == len(cols) {
		f.bbb = strings.Join(out, "\n") + "\n"
	}
}

// hasBoundTag reports whether an explanation already starts with a
// bracketed bound, optionally behind the "?" null flag.
func hasBoundTag(explanation string) bool {
	s := strings.TrimSpace(explanation)
	s = strings.TrimSpace(strings.TrimPrefix(s, "?"))
	return strings.HasPrefix(s, "[")
}
