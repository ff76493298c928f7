// Package storage defines the persisted character document and the
// persistence contract for character snapshots and their mutation audit trail.
//
// Documents carry an explicit schema version; older documents are upgraded
// in their JSON form before being decoded into a Snapshot.
package storage
