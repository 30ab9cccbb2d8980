package emu

import "regexp"

// Token is an opaque bearer token issued by the EMu tokens resource.
type Token string

// String returns the raw token.
func (t Token) String() string {
	return string(t)
}

// bearerPattern matches the header the tokens resource answers with. The API
// delivers the token only through this header, never in the body. The token
// must sit on the same line as the scheme.
var bearerPattern = regexp.MustCompile(`(?i)Authorization:[ \t]*Bearer[ \t]+(\S+)`)

// ExtractBearerToken scans a raw header block for "Authorization: Bearer <token>".
func ExtractBearerToken(rawHeader []byte) (Token, bool) {
	m := bearerPattern.FindSubmatch(rawHeader)
	if m == nil {
		return "", false
	}
	return Token(m[1]), true
}

func bearer(token Token) Header {
	return Header{Name: "Authorization", Value: "Bearer " + string(token)}
}
