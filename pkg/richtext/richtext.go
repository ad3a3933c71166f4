package richtext

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Mode selects how a formatted message is prepared for output.
type Mode string

const (
	// Raw leaves the message untouched.
	Raw Mode = ""
	// Text strips all markup and unescapes entities.
	Text Mode = "text"
	// HTML keeps the safe subset of inline markup already in the message.
	HTML Mode = "html"
	// Markdown converts the message to HTML and sanitizes the result.
	Markdown Mode = "markdown"
)

// ParseMode accepts "", "raw", "text", "html" and "markdown".
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Raw, "raw":
		return Raw, nil
	case Text, HTML, Markdown:
		return m, nil
	}
	return Raw, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Renderer prepares messages for HTML pages. Formatted arguments may carry
// user input, so every HTML output passes the sanitizer last.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy
	inline bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPolicy replaces the sanitizer policy of HTML and Markdown output.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if p != nil {
			r.policy = p
		}
	}
}

// WithBlocks keeps the paragraph wrapper goldmark puts around a
// single-paragraph message. By default it is removed, since most messages
// are inline UI strings.
func WithBlocks() Option {
	return func(r *Renderer) {
		r.inline = false
	}
}

// New creates a Renderer with GitHub-flavoured strikethrough and
// autolinks.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify)),
		policy: MessagePolicy(),
		strict: bluemonday.StrictPolicy(),
		inline: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MessagePolicy allows basic formatting and links, which get
// rel="nofollow".
func MessagePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"p", "br",
		"strong", "b", "em", "i", "del", "s",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
	)
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Render prepares s according to mode.
func (r *Renderer) Render(s string, mode Mode) (string, error) {
	switch mode {
	case Raw:
		return s, nil
	case Text:
		return r.Strip(s), nil
	case HTML:
		return r.Sanitize(s), nil
	case Markdown:
		return r.Markdown(s)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// Strip removes all markup.
func (r *Renderer) Strip(s string) string {
	return html.UnescapeString(r.strict.Sanitize(s))
}

// Sanitize removes everything the policy does not allow.
func (r *Renderer) Sanitize(s string) string {
	return r.policy.Sanitize(s)
}

// Markdown converts s to sanitized HTML.
func (r *Renderer) Markdown(s string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(s), &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}

	out := strings.TrimSpace(r.policy.Sanitize(buf.String()))
	if r.inline {
		out = unwrapParagraph(out)
	}
	return out, nil
}

// unwrapParagraph removes <p>...</p> around a single paragraph.
func unwrapParagraph(s string) string {
	inner, ok := strings.CutPrefix(s, "<p>")
	if !ok {
		return s
	}
	inner, ok = strings.CutSuffix(inner, "</p>")
	if !ok || strings.Contains(inner, "<p>") {
		return s
	}
	return inner
}
