package common

const (
	// AuthorizationHeaderName carries the bearer token on HTTP requests and,
	// lower-cased, in gRPC metadata.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only authorization scheme accepted.
	BearerScheme = "Bearer"

	// TokenType is returned to clients alongside the issued access token.
	TokenType = "bearer"

	// TokenURL is the path of the token-issuing endpoint.
	TokenURL = "/auth/login"
)
