/*
Package domain contains the shared types of confcheck.

It holds the parse error taxonomy used by the tokenizer and the schema parser,
the sentinel errors returned by document sources, and the events emitted by
the checker. This package is kept pure and free of external dependencies.

# Key Types

  - InvalidLineError: A non-blank, non-comment line without a '=' separator.
  - InvalidTypeError: A schema entry naming an unsupported type.
  - ParseEvent, ValidateEvent: Observability events passed to Hooks.
*/
package domain
