package parser

// Swagger is the root object of a Swagger 2.0 document.
// Reference: https://spec.openapis.org/oas/v2.0.html#swagger-object
type Swagger struct {
	node
	Swagger             string // Required: "2.0"
	Info                *Info  // Required
	Host                string
	BasePath            string // Defaults to "/"
	Schemes             []string
	Consumes            []string
	Produces            []string
	Paths               *Paths // Required
	Definitions         *Named[*Schema]
	Parameters          *Named[*Parameter]
	Responses           *Named[*Response]
	SecurityDefinitions *Named[*SecurityScheme]
	Security            []SecurityRequirement
	Tags                []*Tag
	ExternalDocs        *ExternalDocs
}

// Kind implements Object.
func (*Swagger) Kind() Kind { return KindSwagger }

// Info provides metadata about the API
type Info struct {
	node
	Title          string
	Description    string
	TermsOfService string
	Contact        *Contact
	License        *License
	Version        string
}

// Kind implements Object.
func (*Info) Kind() Kind { return KindInfo }

// Contact information for the exposed API
type Contact struct {
	node
	Name  string
	URL   string
	Email string
}

// Kind implements Object.
func (*Contact) Kind() Kind { return KindContact }

// License information for the exposed API
type License struct {
	node
	Name string
	URL  string
}

// Kind implements Object.
func (*License) Kind() Kind { return KindLicense }

// Tag adds metadata to a single tag used by operations
type Tag struct {
	node
	Name         string
	Description  string
	ExternalDocs *ExternalDocs
}

// Kind implements Object.
func (*Tag) Kind() Kind { return KindTag }

// ExternalDocs allows referencing an external resource for extended documentation
type ExternalDocs struct {
	node
	Description string
	URL         string
}

// Kind implements Object.
func (*ExternalDocs) Kind() Kind { return KindExternalDocs }

// XML represents metadata for XML encoding of a schema
type XML struct {
	node
	Name      string
	Namespace string
	Prefix    string
	Attribute bool
	Wrapped   bool
}

// Kind implements Object.
func (*XML) Kind() Kind { return KindXML }
