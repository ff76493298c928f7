// Package engine runs mutations against one character.
//
// Submit checks a mutation against the published View, applies it to a clone
// of the current Snapshot, verifies the result, records the pre-apply
// Snapshot in the Journal and publishes the clone. Undo republishes a
// recorded checkpoint; Redo re-applies the next journal entry without
// checking it again. Writers are serialized; readers always see a whole
// published Snapshot.
package engine
