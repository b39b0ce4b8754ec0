// Package archive answers dependency queries from a Debian archive index.
//
// Instead of asking the local package manager, the Source downloads the
// binary Packages index of one suite/component/architecture from a mirror:
//
//	<repo>/dists/<suite>/<component>/binary-<arch>/Packages.gz
//
// The index is fetched on the first query and kept in memory for the
// lifetime of the Source; nothing is written to disk. Each stanza's Depends
// field is reduced to bare package names: version constraints, architecture
// qualifiers and restriction lists are stripped, and for alternatives
// ("mawk | gawk") the first choice is kept.
package archive
