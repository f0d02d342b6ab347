// Package domain contains the core entities of the vocabulary coach: catalog
// words with their curriculum levels and categories, users with their
// curriculum pointer, per-word learning progress and answer history.
//
// Types in this package carry no persistence or transport concerns. The
// scheduling rules that move a word between pools live in the srs subpackage.
package domain
