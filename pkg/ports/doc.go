/*
Package ports defines the driven ports (interfaces) for confcheck.

These interfaces decouple the checker from where documents live, allowing the
same validation flow to read from the filesystem, memory, or Redis.

# Key Interfaces

  - Source: Reads raw configuration and schema text by name.
  - DocumentStore: A Source that can also be seeded with documents.
*/
package ports
