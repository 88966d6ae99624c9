// Package anchorinit holds build metadata shared by the anchor-init CLI.
package anchorinit

// Version is the current anchor-init release. Overridden at build time with
// -ldflags "-X github.com/simonhull/anchor-init.Version=...".
var Version = "0.3.0"
