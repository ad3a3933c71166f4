package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"
)

// DefaultMaxAge keeps a preference for a year.
const DefaultMaxAge = int(365 * 24 * time.Hour / time.Second)

// Manager reads and writes preference cookies such as the chosen locale.
// With a secret every value is signed, and unsigned or tampered cookies
// read as absent.
type Manager struct {
	secret   []byte
	domain   string
	path     string
	maxAge   int
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a Manager. Cookies default to path "/", HttpOnly, SameSite
// Lax and DefaultMaxAge.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		path:     "/",
		maxAge:   DefaultMaxAge,
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.secret != nil && len(m.secret) < 32 {
		return nil, ErrBadSecret
	}
	return m, nil
}

// WithSecret enables signing. An empty secret leaves cookies unsigned.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if secret != "" {
			m.secret = []byte(secret)
		}
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// WithMaxAge sets the lifetime in seconds.
func WithMaxAge(seconds int) Option {
	return func(m *Manager) {
		m.maxAge = seconds
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// Signed reports whether values are signed.
func (m *Manager) Signed() bool { return m.secret != nil }

// Get returns the value of the named cookie, verifying its signature when
// the manager is signed.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	if m.secret == nil {
		return c.Value, nil
	}
	return m.verify(c.Value)
}

// Set writes the named cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string) {
	if m.secret != nil {
		value = m.sign(value)
	}
	http.SetCookie(w, m.cookie(name, value, m.maxAge))
}

// Delete expires the named cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// sign encodes value as base64(value).base64(hmac).
func (m *Manager) sign(value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(m.mac([]byte(value)))
}

func (m *Manager) verify(raw string) (string, error) {
	encoded, encodedSig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrBadSig
	}
	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return "", ErrBadSig
	}
	if !hmac.Equal(sig, m.mac(value)) {
		return "", ErrBadSig
	}
	return string(value), nil
}

func (m *Manager) mac(value []byte) []byte {
	h := hmac.New(sha256.New, m.secret)
	h.Write(value)
	return h.Sum(nil)
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
