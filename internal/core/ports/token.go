package ports

// TokenIssuer signs bearer tokens for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// TokenVerifier checks a bearer token signature and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
