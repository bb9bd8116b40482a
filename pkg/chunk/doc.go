// Package chunk models the parsed intermediate representation of a view
// template as a closed set of typed nodes, and decodes the YAML/JSON
// interchange form produced by template parsers.
package chunk
