// Package domain defines the records kept by the tool directory.
//
// Every record type is a plain JSON-serialisable struct stored as one element
// of a collection array. Field names in the JSON tags are the interchange
// names used by export files and must not change.
//
// # Catalogue
//
// Tool is a catalogue link grouped by a Category. Article and ResourceItem are
// editorial content, each grouped by its own category collection. A
// ResourceItem owns its CloudLink list.
//
// # Community
//
// Message is a guestbook entry that owns its MessageReply list. Maker,
// AuthCode, Project and Team form the invite-code gated maker programme.
//
// # Presentation
//
// AppStyle is a named set of presentation variables. Which style is current
// is tracked outside the records.
//
// # Inputs and patches
//
// Creation uses *Input types and partial updates use *Patch types. A patch
// field left nil is not changed, so a patch can only express states the
// record may legally be in. Inputs and patches carry validator tags and are
// checked with Validate before they reach a repository.
package domain

// Entity is implemented by every record stored in a collection
type Entity interface {
	EntityID() string
}
