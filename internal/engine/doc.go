// Package engine coordinates the storage tree, the search catalog and
// per-session cursors behind one mutation surface.
//
// Every mutation validates its inputs against the tree before touching
// it, so a returned error means nothing changed. Successful mutations
// keep the catalog aligned in the same call: creates insert, writes
// update in place, removals drop exact paths or whole prefixes, and
// renames rewrite the affected entries. RebuildIndex reconstructs the
// catalog from a full walk and is a no-op on an already consistent
// engine.
//
// Sessions are cheap cursors (current unit and directory) registered in
// a concurrent map. Removing a directory relocates any session inside
// it to the unit root. The engine itself does no locking; callers
// serialize mutations, which the service registry does per request.
package engine
