// Package cookie stores client preferences, such as the chosen locale, in
// optionally signed cookies.
//
//	jar, err := cookie.New(cookie.WithSecret(os.Getenv("LINGUA_COOKIE_SECRET")))
//	jar.Set(w, "lang", "de_CH")
//	v, err := jar.Get(r, "lang") // ErrNotFound, ErrBadSig
//
// Signed values are encoded as base64(value).base64(HMAC-SHA256) so a
// client can read but not forge them. Secrets shorter than 32 bytes are
// rejected by New.
package cookie
