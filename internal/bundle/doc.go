// Package bundle assembles registered libraries into bundle and manifest
// artifacts.
//
// For each asset type a library has members for, the assembler prepends
// the configured external includes, appends every member in dependency
// order (each followed by a CRLF line break), and minifies the result
// unless compression is disabled for that type. A minifier failure leaves
// the minified bundle empty and records a diagnostic; the full bundle is
// still produced.
//
// Dependency references that resolve to a member are dropped from the
// library's mentions. What remains is written to depends.txt.
package bundle
