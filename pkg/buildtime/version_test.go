package buildtime_test

import (
	"strings"
	"testing"

	"github.com/daariikk/myhelp-web/pkg/buildtime"
)

func TestVersionString(t *testing.T) {
	got := buildtime.VersionString()
	if !strings.HasPrefix(got, buildtime.VERSION()) || !strings.Contains(got, "(commit: "+buildtime.GIT_REVISION()+")") {
		t.Errorf("unexpected version string: %s", got)
	}
	if buildtime.VERSION() == "" || buildtime.GIT_REVISION() == "" {
		t.Error("version should have a default")
	}
}
