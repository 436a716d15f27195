package transport

import (
	"net/http"
)

// jarRoundTripper sends cookies held in a jar and stores cookies set by responses,
// it is how a client forwards credentials without relying on http.Client.Jar.
type jarRoundTripper struct {
	next http.RoundTripper
	jar  http.CookieJar
}

// WrapWithCookieJar wraps next so that jar cookies are sent and updated on each round trip
func WrapWithCookieJar(next http.RoundTripper, jar http.CookieJar) http.RoundTripper {
	if jar == nil || next == nil {
		return next
	}
	return &jarRoundTripper{next: next, jar: jar}
}

func (w *jarRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	outbound := req.Clone(req.Context())
	for _, cookie := range w.jar.Cookies(outbound.URL) {
		if _, err := outbound.Cookie(cookie.Name); err == nil {
			continue
		}
		outbound.AddCookie(cookie)
	}
	resp, err := w.next.RoundTrip(outbound)
	if err != nil {
		return nil, err
	}
	if cookies := resp.Cookies(); len(cookies) > 0 {
		w.jar.SetCookies(outbound.URL, cookies)
	}
	return resp, nil
}
