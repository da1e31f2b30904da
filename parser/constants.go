package parser

// Parameter location constants (used in Parameter.In field)
const (
	// ParamInQuery indicates the parameter is passed in the query string
	ParamInQuery = "query"
	// ParamInHeader indicates the parameter is passed in a request header
	ParamInHeader = "header"
	// ParamInPath indicates the parameter is part of the URL path
	ParamInPath = "path"
	// ParamInFormData indicates the parameter is passed as form data
	ParamInFormData = "formData"
	// ParamInBody indicates the parameter is in the request body
	ParamInBody = "body"
)

// Schema type constants (used in Constraints.Type field)
const (
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeFile    = "file"
)

// Collection format constants (used in Constraints.CollectionFormat field)
const (
	// CollectionCSV separates values with commas
	CollectionCSV = "csv"
	// CollectionSSV separates values with spaces
	CollectionSSV = "ssv"
	// CollectionTSV separates values with tabs
	CollectionTSV = "tsv"
	// CollectionPipes separates values with pipes
	CollectionPipes = "pipes"
	// CollectionMulti carries each value as an independent entry
	CollectionMulti = "multi"
)

// HTTP methods an operation can be declared under, in declaration order.
var pathItemMethods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// SwaggerVersion is the only dialect the object model accepts natively.
const SwaggerVersion = "2.0"

// DiscriminatorValueExtension overrides the key a subtype registers under in
// its ancestors' discriminator tables (the definition name by default).
const DiscriminatorValueExtension = "x-discriminator-value"
