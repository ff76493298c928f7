// Package content loads the weapon, armor, merit and charm catalog that sheet
// mutations may reference by name instead of spelling out full definitions.
//
// Catalog files are YAML. Entries are validated through the domain builders
// when the catalog is parsed, so a loaded catalog only holds definitions the
// engine would accept.
package content
