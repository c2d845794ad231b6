// Package service implements the whole-database operations of the tool
// directory.
//
// # Export and import
//
// DatabaseService reads every collection through the repositories and writes
// it as one interchange document, in JSON or YAML, via the codec package.
// Import clears the content collections, then replaces each collection whose
// field in the document holds an array. Fields holding anything else are
// reported as skipped. Maker collections are only replaced when present.
//
// ExportFileName gives exports the website_database_export_<timestamp> name
// used by both the HTTP API and the CLI.
//
// # Events
//
// Services do not publish events themselves. Repositories publish a replaced
// event for each collection an import touches, which the SSE hub relays to
// connected clients.
package service
