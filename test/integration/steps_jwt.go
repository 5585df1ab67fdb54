package integration

import (
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"

	"github.com/doodlesbykumbi/newsdesk/pkg/authenticator/authn_jwt"
)

func (s *StepsContext) registerJWTSteps(sc *godog.ScenarioContext) {
	sc.Step(`^an anonymous client sends (GET|POST) "([^"]*)"$`, s.anonymousClientSends)
	sc.Step(`^a client sends (GET|POST) "([^"]*)" with authorization "([^"]*)"$`, s.clientSendsWithAuthorization)
	sc.Step(`^"([^"]*)" sends (GET|POST) "([^"]*)" with an expired token$`, s.sendsWithExpiredToken)
	sc.Step(`^"([^"]*)" sends (GET|POST) "([^"]*)" with a token signed by another key$`, s.sendsWithForeignToken)
	sc.Step(`^"([^"]*)" sends (GET|POST) "([^"]*)" with an unsigned token$`, s.sendsWithUnsignedToken)
}

func (s *StepsContext) anonymousClientSends(method, path string) error {
	return s.doWithHeader(method, path, "", "")
}

func (s *StepsContext) clientSendsWithAuthorization(method, path, authorization string) error {
	return s.doWithHeader(method, path, "", authorization)
}

func (s *StepsContext) sendsWithExpiredToken(principal, method, path string) error {
	past, err := authn_jwt.New(authn_jwt.Config{
		Key:    s.tc.TokenKey,
		Issuer: tokenIssuer,
		TTL:    time.Minute,
		Now:    func() time.Time { return time.Now().Add(-time.Hour) },
	})
	if err != nil {
		return err
	}
	token, err := past.Issue(identityOf(principal))
	if err != nil {
		return err
	}
	return s.doWithHeader(method, path, "", "Bearer "+token)
}

func (s *StepsContext) sendsWithForeignToken(principal, method, path string) error {
	other, err := authn_jwt.New(authn_jwt.Config{
		Key:    []byte("a-completely-different-signing-key!!"),
		Issuer: tokenIssuer,
		TTL:    time.Hour,
	})
	if err != nil {
		return err
	}
	token, err := other.Issue(identityOf(principal))
	if err != nil {
		return err
	}
	return s.doWithHeader(method, path, "", "Bearer "+token)
}

// sendsWithUnsignedToken presents an alg=none token claiming principal.
func (s *StepsContext) sendsWithUnsignedToken(principal, method, path string) error {
	claims := jwt.RegisteredClaims{
		Subject:   principal,
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		return err
	}
	return s.doWithHeader(method, path, "", "Bearer "+token)
}
