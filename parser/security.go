package parser

// SecurityRequirement lists the required security schemes for an operation
type SecurityRequirement map[string][]string

// SecurityScheme defines a security scheme that can be used by operations
type SecurityScheme struct {
	node
	Type             string // "basic", "apiKey" or "oauth2"
	Description      string
	Name             string // apiKey
	In               string // apiKey: "query" or "header"
	Flow             string // oauth2: "implicit", "password", "application" or "accessCode"
	AuthorizationURL string
	TokenURL         string
	Scopes           map[string]string
}

// Kind implements Object.
func (*SecurityScheme) Kind() Kind { return KindSecurityScheme }
