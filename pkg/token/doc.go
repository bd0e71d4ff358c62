// Package token turns raw configuration text into a sequence of classified lines.
//
// Every input line produces exactly one Token:
//
//	# comment           -> Comment
//	                    -> Blank
//	endpoint = host:80  -> KeyValue{Key: "endpoint", Value: "host:80"}
//	- debug = true      -> KeyValue{Key: "debug", Value: "true", IgnoreError: true}
//
// Lines are split on the first '=' only, so values may contain '=' themselves.
// Interpretation of the tokens is left to the config and schema packages.
package token
