package jwt

import (
	jwtstd "github.com/golang-jwt/jwt/v5"
)

// SignTestToken signs claims with HS256. Tests use it to fabricate provider
// tokens; parsing here never verifies signatures.
func SignTestToken(claims map[string]any) string {
	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, jwtstd.MapClaims(claims))
	s, err := t.SignedString([]byte("test-signing-key"))
	if err != nil {
		panic(err)
	}
	return s
}
