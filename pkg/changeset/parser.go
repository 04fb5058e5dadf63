package changeset

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Markers searched for in `git show --no-prefix` output. Each field value
// starts a fixed number of bytes after its marker's leading newline.
const (
	authorMarker   = "\nAuthor"
	authorOffset   = len("\nAuthor:")
	dateMarker     = "\nDate"
	dateOffset     = len("\nDate:")
	fileBoundary   = "\ndiff --git "
	oldFileMarker  = "\n---"
	newFileMarker  = "\n+++"
	pathFileOffset = len("\n--- ")
)

type state int

const (
	stateHeader state = iota
	stateMessage
	stateFileHeader
	stateHunk
	stateDone
)

func (s state) String() string {
	switch s {
	case stateHeader:
		return "header"
	case stateMessage:
		return "message"
	case stateFileHeader:
		return "file-header"
	case stateHunk:
		return "hunk"
	default:
		return "done"
	}
}

// Parse builds a ChangeSet from the raw text of one revision.
//
// A file section without an old/new file header (binary, rename-only or
// mode-only diffs) is skipped; it never fails the change-set. Text that is
// not valid UTF-8 yields ErrUndecodable.
func Parse(id string, raw []byte) (*ChangeSet, error) {
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%s: %w", id, ErrUndecodable)
	}

	p := &parser{text: string(raw), cs: &ChangeSet{ID: id}}
	st := stateHeader
	for st != stateDone {
		next, err := p.step(st)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", id, st, err)
		}
		st = next
	}
	return p.cs, nil
}

// parser holds the cursor and the section currently being read.
type parser struct {
	text string
	pos  int
	cs   *ChangeSet

	sectionEnd int
	pending    Chunk
}

func (p *parser) step(st state) (state, error) {
	switch st {
	case stateHeader:
		return p.header()
	case stateMessage:
		return p.message(), nil
	case stateFileHeader:
		return p.fileHeader(), nil
	case stateHunk:
		return p.hunk(), nil
	}
	return stateDone, nil
}

func (p *parser) header() (state, error) {
	who, next, ok := lineField(p.text, p.pos, len(p.text), authorMarker, authorOffset)
	if !ok {
		return stateDone, fmt.Errorf("%w: no author", ErrMissingHeader)
	}
	p.cs.Author = who

	raw, next, ok := lineField(p.text, next, len(p.text), dateMarker, dateOffset)
	if !ok {
		return stateDone, fmt.Errorf("%w: no date", ErrMissingHeader)
	}
	when, err := ParseDate(raw)
	if err != nil {
		return stateDone, fmt.Errorf("%w: %v", ErrMissingHeader, err)
	}
	p.cs.When = when
	p.pos = next
	return stateMessage, nil
}

func (p *parser) message() state {
	end := nextBoundary(p.text, p.pos)
	start := min(p.pos+1, end)
	p.cs.Message = strings.TrimSpace(p.text[start:end])
	p.pos = end
	return p.afterSection()
}

// fileHeader reads the old and new paths of the section starting at pos.
// A section missing either marker is dropped and scanning moves on.
func (p *parser) fileHeader() state {
	p.sectionEnd = nextBoundary(p.text, p.pos+1)

	from, next, ok := lineField(p.text, p.pos, p.sectionEnd, oldFileMarker, pathFileOffset)
	if !ok {
		p.pos = p.sectionEnd
		return p.afterSection()
	}
	to, next, ok := lineField(p.text, next, p.sectionEnd, newFileMarker, pathFileOffset)
	if !ok {
		p.pos = p.sectionEnd
		return p.afterSection()
	}

	p.pending = Chunk{From: from, To: to}
	p.pos = next
	return stateHunk
}

func (p *parser) hunk() state {
	body := strings.TrimSpace(p.text[p.pos:p.sectionEnd])
	if body != "" {
		p.pending.Lines = strings.Split(body, "\n")
	}
	p.cs.Chunks = append(p.cs.Chunks, p.pending)
	p.pending = Chunk{}
	p.pos = p.sectionEnd
	return p.afterSection()
}

func (p *parser) afterSection() state {
	if p.pos+1 >= len(p.text) {
		return stateDone
	}
	return stateFileHeader
}

// lineField finds marker in text[from:limit] and returns the trimmed rest of
// its line after offset, plus the position of the line's terminating newline.
func lineField(text string, from, limit int, marker string, offset int) (string, int, bool) {
	if from >= limit {
		return "", from, false
	}
	idx := strings.Index(text[from:limit], marker)
	if idx < 0 {
		return "", from, false
	}
	idx += from

	eol := strings.IndexByte(text[idx+1:], '\n')
	if eol < 0 {
		eol = len(text)
	} else {
		eol += idx + 1
	}

	start := min(idx+offset, eol)
	return strings.TrimSpace(text[start:eol]), eol, true
}

// nextBoundary returns the index of the next file section at or after from,
// or len(text) when there is none.
func nextBoundary(text string, from int) int {
	if from >= len(text) {
		return len(text)
	}
	idx := strings.Index(text[from:], fileBoundary)
	if idx < 0 {
		return len(text)
	}
	return from + idx
}
