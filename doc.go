/*
Package confcheck validates line-oriented configuration files against a schema.

Both documents share one grammar: each line is blank, a comment starting with
'#' or ';', or a "key = value" pair split on the first '='. A leading '-' marks
a soft entry. In a schema, each value names a type: string, bool or integer.

# Usage

Validate two texts directly:

	c := confcheck.New()
	r, err := c.CheckText(ctx, "retry = abc\nextra = x", "retry = integer")
	if err != nil {
		// Syntax error or unknown type name: parsing stops at the first one.
		log.Fatal(err)
	}
	for _, f := range r.Findings {
		fmt.Println(f.Message)
	}

Or read documents by name from a Source (filesystem, memory, Redis):

	c := confcheck.New(confcheck.WithSource(file.New("./etc")))
	r, err := c.Check(ctx, "app.conf", "app.schema")

# Packages

  - pkg/token: Line tokenizer shared by configs and schemas.
  - pkg/config: Flat key to raw value map.
  - pkg/schema: Declared types and the validator.
  - pkg/report: Serializable results and renderers.
  - pkg/adapters: Document sources and the HTTP and MCP servers.
*/
package confcheck
