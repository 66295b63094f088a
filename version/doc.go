// Package version reports build metadata for the inspect endpoint and the
// iocinspect binary.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags; anything left unset is taken from the build info the Go
// toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/ioc/version.Version=1.0.0" ./cmd/iocinspect
package version
