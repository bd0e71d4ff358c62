// Package schema declares the expected keys of a configuration and checks
// configurations against them.
//
// A schema file uses the same line grammar as a configuration file, but each
// value names a type:
//
//	# network
//	endpoint = string
//	retry    = integer
//	debug    = bool
//
// Parsing fails fast on the first malformed line or unknown type name.
// Validation accumulates instead, reporting every finding in one call:
//
//	cfg, _ := config.Parse("retry = abc\nextra = x")
//	s, _ := schema.Parse("retry = integer\ndebug = bool")
//
//	if err := schema.Validate(cfg, s); err != nil {
//	    for _, f := range schema.ValidationErrors(err) {
//	        fmt.Println(f)
//	    }
//	}
//	// 'debug': missing (required by schema)
//	// 'extra': unknown key (not in schema)
//	// 'retry': expected integer, got 'abc'
package schema
