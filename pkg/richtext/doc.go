// Package richtext turns formatted messages into safe HTML or plain text.
//
// Catalog values may contain Markdown or a little inline HTML, and
// formatted arguments may contain anything. A Renderer converts the final
// string according to a Mode:
//
//	r := richtext.New()
//	s, _ := r.Render("Read the **terms** at https://example.com", richtext.Markdown)
//	// Read the <strong>terms</strong> at <a href="https://example.com" rel="nofollow">https://example.com</a>
//
// HTML and Markdown output is sanitized with bluemonday using
// MessagePolicy unless WithPolicy replaces it. Text output strips every
// tag.
package richtext
