package props

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf16"
	"unicode/utf8"
)

// lexer modes
const (
	modeNone     = iota
	modeSlash    // after a backslash
	modeUnicode  // inside \uXXXX
	modeContinue // after backslash + CR, a LF may follow
	modeKeyDone  // whitespace seen after the key
	modeIgnore   // skipping leading whitespace of a continued line
)

// Load decodes a catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	c := NewCatalog()
	if err := LoadInto(c, r); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadInto decodes entries from r into c. Existing keys are overwritten in place.
// The reader is not closed.
func LoadInto(c *Catalog, r io.Reader) error {
	if c == nil {
		return ErrNilCatalog
	}

	lx := &lexer{
		in:        newLineReader(r),
		cat:       c,
		buf:       make([]rune, 0, 64),
		keyLen:    -1,
		firstChar: true,
	}
	return lx.run()
}

type lexer struct {
	in        *lineReader
	cat       *Catalog
	buf       []rune
	mode      int
	unicode   rune
	count     int
	keyLen    int
	firstChar bool
}

func (lx *lexer) run() error {
	for {
		ch, err := lx.in.next()
		if errors.Is(err, io.EOF) {
			return lx.finish()
		}
		if err != nil {
			return err
		}

		if lx.mode == modeUnicode {
			digit := hexValue(ch)
			if digit < 0 {
				return &SyntaxError{Line: lx.in.line, Err: ErrMalformedEscape}
			}
			lx.unicode = lx.unicode<<4 | rune(digit)
			lx.count++
			if lx.count < 4 {
				continue
			}
			lx.mode = modeNone
			lx.appendDecoded(lx.unicode)
			lx.firstChar = false
			continue
		}

		if lx.mode == modeSlash {
			lx.mode = modeNone
			switch ch {
			case '\r':
				lx.mode = modeContinue
				continue
			case '\n':
				lx.mode = modeIgnore
				continue
			case 'b':
				ch = '\b'
			case 'f':
				ch = '\f'
			case 'n':
				ch = '\n'
			case 'r':
				ch = '\r'
			case 't':
				ch = '\t'
			case 'u':
				lx.mode = modeUnicode
				lx.unicode, lx.count = 0, 0
				continue
			}
		} else {
			switch ch {
			case '#', '!':
				if lx.firstChar {
					if err := lx.in.skipLine(); err != nil && !errors.Is(err, io.EOF) {
						return err
					}
					continue
				}
			case '\n':
				if lx.mode == modeContinue {
					lx.mode = modeIgnore
					continue
				}
				lx.endLine()
				continue
			case '\r':
				lx.endLine()
				continue
			case '\\':
				if lx.mode == modeKeyDone {
					lx.keyLen = len(lx.buf)
				}
				lx.mode = modeSlash
				continue
			case '=':
				if lx.keyLen == -1 {
					lx.mode = modeNone
					lx.keyLen = len(lx.buf)
					lx.firstChar = false
					continue
				}
			}

			if isBlank(ch) {
				if lx.mode == modeContinue {
					lx.mode = modeIgnore
				}
				if len(lx.buf) == 0 || len(lx.buf) == lx.keyLen || lx.mode == modeIgnore {
					continue
				}
				if lx.keyLen == -1 {
					lx.mode = modeKeyDone
					continue
				}
			}
			if lx.mode == modeIgnore || lx.mode == modeContinue {
				lx.mode = modeNone
			}
		}

		lx.firstChar = false
		if lx.mode == modeKeyDone {
			lx.keyLen = len(lx.buf)
			lx.mode = modeNone
		}
		lx.buf = append(lx.buf, ch)
	}
}

// endLine emits the entry accumulated for the current logical line.
func (lx *lexer) endLine() {
	lx.mode = modeNone
	lx.firstChar = true
	if len(lx.buf) > 0 || lx.keyLen == 0 {
		if lx.keyLen == -1 {
			lx.keyLen = len(lx.buf)
		}
		lx.cat.Set(string(lx.buf[:lx.keyLen]), string(lx.buf[lx.keyLen:]))
	}
	lx.keyLen = -1
	lx.buf = lx.buf[:0]
}

func (lx *lexer) finish() error {
	if lx.mode == modeUnicode {
		return &SyntaxError{Line: lx.in.line, Err: ErrMalformedEscape}
	}
	if lx.keyLen == -1 && len(lx.buf) > 0 {
		lx.keyLen = len(lx.buf)
	}
	if lx.keyLen >= 0 {
		key := string(lx.buf[:lx.keyLen])
		value := string(lx.buf[lx.keyLen:])
		if lx.mode == modeSlash {
			value += "\x00"
		}
		lx.cat.Set(key, value)
	}
	return nil
}

// appendDecoded appends a code unit from a \u escape, joining surrogate
// pairs. A pair never spans the key/value boundary.
func (lx *lexer) appendDecoded(r rune) {
	if n := len(lx.buf); n > 0 && n > lx.keyLen && utf16.IsSurrogate(r) {
		if joined := utf16.DecodeRune(lx.buf[n-1], r); joined != utf8.RuneError {
			lx.buf[n-1] = joined
			return
		}
	}
	lx.buf = append(lx.buf, r)
}

func isBlank(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\f'
}

func hexValue(ch rune) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10
	}
	return -1
}

// lineReader reads runes and tracks the physical line number.
type lineReader struct {
	rr      io.RuneReader
	line    int
	lastCR  bool
	newline bool
}

func newLineReader(r io.Reader) *lineReader {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &lineReader{rr: rr, line: 1}
}

func (l *lineReader) next() (rune, error) {
	ch, _, err := l.rr.ReadRune()
	if err != nil {
		return 0, err
	}
	if l.newline && (ch != '\n' || !l.lastCR) {
		l.line++
		l.newline = false
	}
	l.lastCR = ch == '\r'
	if ch == '\r' || ch == '\n' {
		l.newline = true
	}
	return ch, nil
}

// skipLine consumes runes through the next CR or LF.
func (l *lineReader) skipLine() error {
	for {
		ch, err := l.next()
		if err != nil {
			return err
		}
		if ch == '\r' || ch == '\n' {
			return nil
		}
	}
}
