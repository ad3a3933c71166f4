// Package props reads and writes line-oriented key/value text catalogs.
//
// The format follows the familiar .properties syntax but is Unicode-capable
// and order-preserving: a catalog remembers the order in which keys were
// first seen, and Store writes them back in that order.
//
// # Syntax
//
//	# full-line comment (also "!")
//	greeting = Hello, {0}!
//	long.text = first part \
//	            second part
//	tab\ key = value with \t tab and é escape
//
// The first unescaped "=" separates key and value. When "=" is absent, the
// first run of unescaped whitespace after the key acts as the separator.
// Leading whitespace of a value is skipped; use "\ " to keep it.
//
// A backslash escapes the next character: \n, \t, \r, \f and \b map to their
// control characters, \uXXXX inserts a code point (hex digits in either case),
// a backslash at the end of a physical line joins it with the next one, and
// any other escaped character is taken literally.
//
// # Usage
//
//	cat, err := props.Load(r)
//	if err != nil {
//		return err
//	}
//	v, ok := cat.Get("greeting")
//
//	// Writing a catalog back
//	err = props.Store(w, cat, "generated by lingua")
//
// Load returns an error wrapping ErrMalformedEscape when a \u escape is not
// followed by four hex digits. Errors from the underlying reader or writer are
// returned unchanged.
package props
