package props

import (
	"bufio"
	"io"
	"strings"
	"time"
)

// lineSeparator is written after every line regardless of platform.
const lineSeparator = "\n"

// timestampLayout matches the classic "Mon Jan 02 15:04:05 UTC 2006" header.
const timestampLayout = "Mon Jan 02 15:04:05 MST 2006"

const upperHex = "0123456789ABCDEF"

// StoreOption configures Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	now       func() time.Time
	timestamp bool
}

// WithTimestamp fixes the time written in the header comment.
func WithTimestamp(t time.Time) StoreOption {
	return func(o *storeOptions) {
		o.now = func() time.Time { return t }
		o.timestamp = true
	}
}

// WithoutTimestamp omits the header comment.
func WithoutTimestamp() StoreOption {
	return func(o *storeOptions) {
		o.timestamp = false
	}
}

// Store writes c to w: the optional comment, a timestamp header, then one
// key=value line per entry in catalog order.
//
// Keys escape every space; values escape only a leading space. Control
// characters without a short escape are written as \uXXXX with uppercase
// hex digits. The writer is flushed but not closed.
func Store(w io.Writer, c *Catalog, comment string, opts ...StoreOption) error {
	if c == nil {
		return ErrNilCatalog
	}

	o := &storeOptions{now: time.Now, timestamp: true}
	for _, opt := range opts {
		opt(o)
	}

	bw := bufio.NewWriter(w)

	if comment != "" {
		writeComment(bw, comment)
	}
	if o.timestamp {
		bw.WriteString("#")
		bw.WriteString(o.now().Format(timestampLayout))
		bw.WriteString(lineSeparator)
	}

	var sb strings.Builder
	for k, v := range c.All() {
		sb.Reset()
		dumpString(&sb, k, true)
		sb.WriteByte('=')
		dumpString(&sb, v, false)
		sb.WriteString(lineSeparator)
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// EscapeKey returns key as it would be written by Store.
func EscapeKey(key string) string {
	var sb strings.Builder
	dumpString(&sb, key, true)
	return sb.String()
}

// EscapeValue returns value as it would be written by Store.
func EscapeValue(value string) string {
	var sb strings.Builder
	dumpString(&sb, value, false)
	return sb.String()
}

func dumpString(sb *strings.Builder, s string, isKey bool) {
	for i, ch := range s {
		if ch > '=' && ch <= '~' {
			if ch == '\\' {
				sb.WriteString(`\\`)
			} else {
				sb.WriteRune(ch)
			}
			continue
		}

		switch ch {
		case ' ':
			if i == 0 || isKey {
				sb.WriteString(`\ `)
			} else {
				sb.WriteByte(' ')
			}
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\f':
			sb.WriteString(`\f`)
		case '#', '!':
			if i == 0 && isKey {
				sb.WriteByte('\\')
			}
			sb.WriteRune(ch)
		case '=':
			sb.WriteString(`\=`)
		default:
			if ch < 0x20 {
				sb.WriteString(`\u`)
				for shift := 12; shift >= 0; shift -= 4 {
					sb.WriteByte(upperHex[(ch>>shift)&0xF])
				}
			} else {
				sb.WriteRune(ch)
			}
		}
	}
}

// writeComment writes comment with every physical line prefixed by "#",
// unless the line already starts with "#" or "!".
func writeComment(w *bufio.Writer, comment string) {
	w.WriteString("#")
	last := 0
	for i := 0; i < len(comment); i++ {
		c := comment[i]
		if c != '\n' && c != '\r' {
			continue
		}
		w.WriteString(comment[last:i])
		w.WriteString(lineSeparator)
		if c == '\r' && i+1 < len(comment) && comment[i+1] == '\n' {
			i++
		}
		if i == len(comment)-1 || (comment[i+1] != '#' && comment[i+1] != '!') {
			w.WriteString("#")
		}
		last = i + 1
	}
	w.WriteString(comment[last:])
	w.WriteString(lineSeparator)
}
