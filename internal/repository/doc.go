// Package repository persists the directory's collections in a key-value
// store.
//
// Each collection is one JSON array under one storage key. Every operation
// reads the whole array, changes it in memory and writes the whole array
// back. A single mutex shared by all repositories of a Repositories value
// serialises these read/modify/write cycles, including the operations that
// touch two collections at once (category cascade, auth code redemption,
// project and team membership).
//
// # Loading
//
// A missing key yields the collection's seed data. A stored value that does
// not parse as an array (including JSON null) is logged, counted and
// replaced by seed data on read; the caller never sees a parse error. Store
// I/O errors are returned. The articles collection additionally restores
// pinned seed records that have gone missing and persists the result.
//
// # Not found
//
// Lookups of an unknown id return (nil, nil). Deletes of an unknown id
// return false. Business refusals that need a reason use the sentinel
// errors in errors.go.
//
// # Events
//
// Every successful write publishes an events.Event naming the collection
// key, the operation and the affected id.
package repository
