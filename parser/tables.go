package parser

// tables holds the field declarations of every kind. It is filled by init
// because post hooks call back into the builder.
var tables map[Kind]*table

func init() {
	tables = map[Kind]*table{
		KindSwagger:        swaggerTable(),
		KindInfo:           infoTable(),
		KindContact:        contactTable(),
		KindLicense:        licenseTable(),
		KindTag:            tagTable(),
		KindExternalDocs:   externalDocsTable(),
		KindPaths:          pathsTable(),
		KindPathItem:       pathItemTable(),
		KindOperation:      operationTable(),
		KindParameter:      parameterTable(),
		KindItems:          itemsTable(),
		KindHeader:         headerTable(),
		KindResponse:       responseTable(),
		KindSchema:         schemaTable(),
		KindXML:            xmlTable(),
		KindSecurityScheme: securitySchemeTable(),
	}
}

// newObject allocates an empty object of a kind.
func newObject(kind Kind) Object {
	switch kind {
	case KindSwagger:
		return &Swagger{}
	case KindInfo:
		return &Info{}
	case KindContact:
		return &Contact{}
	case KindLicense:
		return &License{}
	case KindTag:
		return &Tag{}
	case KindExternalDocs:
		return &ExternalDocs{}
	case KindPaths:
		return &Paths{items: newNamed[*PathItem](0)}
	case KindPathItem:
		return &PathItem{}
	case KindOperation:
		return &Operation{}
	case KindParameter:
		return &Parameter{}
	case KindItems:
		return &Items{}
	case KindHeader:
		return &Header{}
	case KindResponse:
		return &Response{}
	case KindSchema:
		return &Schema{}
	case KindXML:
		return &XML{}
	case KindSecurityScheme:
		return &SecurityScheme{}
	}
	return nil
}

func swaggerTable() *table {
	t := newTable(
		scalar("swagger", func(o *Swagger) *string { return &o.Swagger }),
		child("info", KindInfo, func(o *Swagger) **Info { return &o.Info }),
		scalar("host", func(o *Swagger) *string { return &o.Host }),
		scalar("basePath", func(o *Swagger) *string { return &o.BasePath }).withDefault("/"),
		scalar("schemes", func(o *Swagger) *[]string { return &o.Schemes }),
		scalar("consumes", func(o *Swagger) *[]string { return &o.Consumes }),
		scalar("produces", func(o *Swagger) *[]string { return &o.Produces }),
		child("paths", KindPaths, func(o *Swagger) **Paths { return &o.Paths }),
		childMap("definitions", KindSchema, func(o *Swagger) **Named[*Schema] { return &o.Definitions }),
		childMap("parameters", KindParameter, func(o *Swagger) **Named[*Parameter] { return &o.Parameters }),
		childMap("responses", KindResponse, func(o *Swagger) **Named[*Response] { return &o.Responses }),
		childMap("securityDefinitions", KindSecurityScheme, func(o *Swagger) **Named[*SecurityScheme] { return &o.SecurityDefinitions }),
		scalar("security", func(o *Swagger) *[]SecurityRequirement { return &o.Security }),
		children("tags", KindTag, func(o *Swagger) *[]*Tag { return &o.Tags }),
		child("externalDocs", KindExternalDocs, func(o *Swagger) **ExternalDocs { return &o.ExternalDocs }),
	)
	t.post = nameDefinitions
	return t
}

func infoTable() *table {
	return newTable(
		scalar("title", func(o *Info) *string { return &o.Title }),
		scalar("description", func(o *Info) *string { return &o.Description }),
		scalar("termsOfService", func(o *Info) *string { return &o.TermsOfService }),
		child("contact", KindContact, func(o *Info) **Contact { return &o.Contact }),
		child("license", KindLicense, func(o *Info) **License { return &o.License }),
		scalar("version", func(o *Info) *string { return &o.Version }),
	)
}

func contactTable() *table {
	return newTable(
		scalar("name", func(o *Contact) *string { return &o.Name }),
		scalar("url", func(o *Contact) *string { return &o.URL }),
		scalar("email", func(o *Contact) *string { return &o.Email }),
	)
}

func licenseTable() *table {
	return newTable(
		scalar("name", func(o *License) *string { return &o.Name }),
		scalar("url", func(o *License) *string { return &o.URL }),
	)
}

func tagTable() *table {
	return newTable(
		scalar("name", func(o *Tag) *string { return &o.Name }),
		scalar("description", func(o *Tag) *string { return &o.Description }),
		child("externalDocs", KindExternalDocs, func(o *Tag) **ExternalDocs { return &o.ExternalDocs }),
	)
}

func externalDocsTable() *table {
	return newTable(
		scalar("description", func(o *ExternalDocs) *string { return &o.Description }),
		scalar("url", func(o *ExternalDocs) *string { return &o.URL }),
	)
}

func pathsTable() *table {
	t := newTable()
	t.patternKind = KindPathItem
	t.patterned = func(obj Object, key string, c Object) {
		obj.(*Paths).items.set(key, c.(*PathItem))
	}
	t.post = flattenOperations
	return t
}

func pathItemTable() *table {
	fields := []Field{scalar("$ref", func(o *PathItem) *string { return &o.Ref })}
	for _, method := range pathItemMethods {
		fields = append(fields, Field{Name: method, Shape: ShapeObject, Kind: KindOperation, assign: func(obj Object, v any) error {
			pi, op := obj.(*PathItem), v.(*Operation)
			switch method {
			case "get":
				pi.Get = op
			case "put":
				pi.Put = op
			case "post":
				pi.Post = op
			case "delete":
				pi.Delete = op
			case "options":
				pi.Options = op
			case "head":
				pi.Head = op
			case "patch":
				pi.Patch = op
			}
			pi.addOperation(method, op)
			return nil
		}})
	}
	fields = append(fields, children("parameters", KindParameter, func(o *PathItem) *[]*Parameter { return &o.Parameters }))
	return newTable(fields...)
}

func operationTable() *table {
	return newTable(
		scalar("tags", func(o *Operation) *[]string { return &o.Tags }),
		scalar("summary", func(o *Operation) *string { return &o.Summary }),
		scalar("description", func(o *Operation) *string { return &o.Description }),
		child("externalDocs", KindExternalDocs, func(o *Operation) **ExternalDocs { return &o.ExternalDocs }),
		scalar("operationId", func(o *Operation) *string { return &o.OperationID }),
		scalar("consumes", func(o *Operation) *[]string { return &o.Consumes }),
		scalar("produces", func(o *Operation) *[]string { return &o.Produces }),
		children("parameters", KindParameter, func(o *Operation) *[]*Parameter { return &o.Parameters }),
		childMap("responses", KindResponse, func(o *Operation) **Named[*Response] { return &o.Responses }).dropVendorKeys(),
		scalar("schemes", func(o *Operation) *[]string { return &o.Schemes }),
		scalar("deprecated", func(o *Operation) *bool { return &o.Deprecated }),
		scalar("security", func(o *Operation) *[]SecurityRequirement { return &o.Security }),
	)
}

func parameterTable() *table {
	fields := []Field{
		scalar("$ref", func(o *Parameter) *string { return &o.Ref }),
		scalar("name", func(o *Parameter) *string { return &o.Name }),
		scalar("in", func(o *Parameter) *string { return &o.In }),
		scalar("description", func(o *Parameter) *string { return &o.Description }),
		scalar("required", func(o *Parameter) *bool { return &o.Required }),
		child("schema", KindSchema, func(o *Parameter) **Schema { return &o.Schema }),
		scalar("allowEmptyValue", func(o *Parameter) *bool { return &o.AllowEmptyValue }),
		child("items", KindItems, func(o *Parameter) **Items { return &o.Items }),
	}
	fields = append(fields, constraintFields(func(o *Parameter) *Constraints { return &o.Constraints })...)
	return newTable(fields...)
}

func itemsTable() *table {
	fields := constraintFields(func(o *Items) *Constraints { return &o.Constraints })
	fields = append(fields, child("items", KindItems, func(o *Items) **Items { return &o.Items }))
	return newTable(fields...)
}

func headerTable() *table {
	fields := []Field{
		scalar("description", func(o *Header) *string { return &o.Description }),
		child("items", KindItems, func(o *Header) **Items { return &o.Items }),
	}
	fields = append(fields, constraintFields(func(o *Header) *Constraints { return &o.Constraints })...)
	return newTable(fields...)
}

func responseTable() *table {
	return newTable(
		scalar("$ref", func(o *Response) *string { return &o.Ref }),
		scalar("description", func(o *Response) *string { return &o.Description }),
		child("schema", KindSchema, func(o *Response) **Schema { return &o.Schema }),
		childMap("headers", KindHeader, func(o *Response) **Named[*Header] { return &o.Headers }),
		scalar("examples", func(o *Response) *map[string]any { return &o.Examples }),
	)
}

func schemaTable() *table {
	fields := []Field{
		scalar("$ref", func(o *Schema) *string { return &o.Ref }),
		scalar("title", func(o *Schema) *string { return &o.Title }),
		scalar("description", func(o *Schema) *string { return &o.Description }),
		child("items", KindSchema, func(o *Schema) **Schema { return &o.Items }),
		children("allOf", KindSchema, func(o *Schema) *[]*Schema { return &o.AllOf }),
		childMap("properties", KindSchema, func(o *Schema) **Named[*Schema] { return &o.Properties }),
		{Name: "additionalProperties", Shape: ShapeObjectOrBool, Kind: KindSchema, assign: func(obj Object, v any) error {
			s := obj.(*Schema)
			switch t := v.(type) {
			case bool:
				s.AdditionalPropertiesAllowed = &t
			case *Schema:
				s.AdditionalProperties = t
			}
			return nil
		}},
		scalar("maxProperties", func(o *Schema) **int { return &o.MaxProperties }),
		scalar("minProperties", func(o *Schema) **int { return &o.MinProperties }),
		scalar("required", func(o *Schema) *[]string { return &o.Required }),
		scalar("discriminator", func(o *Schema) *string { return &o.Discriminator }),
		scalar("readOnly", func(o *Schema) *bool { return &o.ReadOnly }),
		child("xml", KindXML, func(o *Schema) **XML { return &o.XML }),
		child("externalDocs", KindExternalDocs, func(o *Schema) **ExternalDocs { return &o.ExternalDocs }),
		scalar("example", func(o *Schema) *any { return &o.Example }),
	}
	fields = append(fields, constraintFields(func(o *Schema) *Constraints { return &o.Constraints })...)
	return newTable(fields...)
}

func xmlTable() *table {
	return newTable(
		scalar("name", func(o *XML) *string { return &o.Name }),
		scalar("namespace", func(o *XML) *string { return &o.Namespace }),
		scalar("prefix", func(o *XML) *string { return &o.Prefix }),
		scalar("attribute", func(o *XML) *bool { return &o.Attribute }),
		scalar("wrapped", func(o *XML) *bool { return &o.Wrapped }),
	)
}

func securitySchemeTable() *table {
	return newTable(
		scalar("type", func(o *SecurityScheme) *string { return &o.Type }),
		scalar("description", func(o *SecurityScheme) *string { return &o.Description }),
		scalar("name", func(o *SecurityScheme) *string { return &o.Name }),
		scalar("in", func(o *SecurityScheme) *string { return &o.In }),
		scalar("flow", func(o *SecurityScheme) *string { return &o.Flow }),
		scalar("authorizationUrl", func(o *SecurityScheme) *string { return &o.AuthorizationURL }),
		scalar("tokenUrl", func(o *SecurityScheme) *string { return &o.TokenURL }),
		scalar("scopes", func(o *SecurityScheme) *map[string]string { return &o.Scopes }),
	)
}
