// Package buildtime holds the version stamped at build time, like
//
//	go build -ldflags "-X github.com/daariikk/myhelp-web/pkg/buildtime.version=v1.0.0 -X github.com/daariikk/myhelp-web/pkg/buildtime.revision=$(git rev-parse --short HEAD)" ./cmd/polyclinic
package buildtime

var (
	version  = "dev"
	revision = "unknown"
)

// version string when this server has been built.
func VERSION() string {
	return version
}

func GIT_REVISION() string {
	return revision
}

func VersionString() string {
	return version + " (commit: " + revision + ")"
}
