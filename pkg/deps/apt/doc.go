// Package apt answers dependency queries with the local apt-cache tool.
//
// Each query runs
//
//	apt-cache depends <package>
//
// and keeps only the lines declaring a hard dependency:
//
//	curl
//	  Depends: libc6
//	  Depends: libcurl4t64
//	 |Recommends: ca-certificates
//	  PreDepends: dpkg
//
// yields [libc6 libcurl4t64]. Alternative lines (prefixed with '|'),
// PreDepends, Recommends, Suggests, Breaks, Conflicts and Replaces are
// ignored. Virtual package names are returned verbatim, angle brackets
// included (e.g. "<perl:any>").
//
// The Source never caches: every call starts a new process.
package apt
