package room

import (
	"os"
	"path/filepath"
	"testing"

	"setandseize-server/internal/util"
)

func TestMain(m *testing.M) {
	unset := util.SetEnv("SAS_CONFIG_FILE", filepath.Join("testdata", "config.yaml"))

	code := m.Run()
	unset()
	os.Exit(code)
}
