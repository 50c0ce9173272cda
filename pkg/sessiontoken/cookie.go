package sessiontoken

import "net/http"

// TokenCookieName is the cookie the session token travels in.
const TokenCookieName = "token"

// DefaultCookieMaxAge is the transport-layer lifetime of the session
// cookie in seconds. It is longer than the token expiry on purpose: a
// cookie that outlives its token is still rejected by Validate.
const DefaultCookieMaxAge = 86400

// CookieSetter writes and clears the session cookie.
type CookieSetter struct {
	Path     string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

// NewCookieSetter creates a cookie setter with the default path, Lax
// same-site policy, and transport lifetime.
func NewCookieSetter(httpOnly, secure bool) *CookieSetter {
	return &CookieSetter{
		Path:     "/",
		HttpOnly: httpOnly,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   DefaultCookieMaxAge,
	}
}

// SetCookie stores the session token on the response.
func (c *CookieSetter) SetCookie(w http.ResponseWriter, tokenValue string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Path:     c.Path,
		Value:    tokenValue,
		MaxAge:   c.MaxAge,
		HttpOnly: c.HttpOnly,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// ClearCookie deletes the session cookie. The token itself remains
// cryptographically valid until its exp; there is no server-side
// revocation list.
func (c *CookieSetter) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Path:     c.Path,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: c.HttpOnly,
		Secure:   c.Secure,
	})
}

// TokenFromCookie extracts the session token from the request's cookie
// store, returning the empty string when absent. Shaped to plug into
// jwtauth.Verify as a token-find function.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
