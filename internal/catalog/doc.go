// Package catalog manages the word catalog: bulk imports from JSON requests
// or spreadsheet files, and the admin listing.
//
// Words are reference data. An import never touches progress except when
// ClearExisting is set, in which case every word is removed together with
// the progress that points at it.
package catalog
