package formflow

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formflow/pkg/renderers/vanilla"
)

func TestRuntimeAssetsFSContainsStylesheet(t *testing.T) {
	fsys := RuntimeAssetsFS()
	data, err := fs.ReadFile(fsys, vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".formflow-form") {
		t.Fatalf("expected stylesheet to style the form chrome")
	}
}

func TestRuntimeAssetsFSScriptAutoSubmits(t *testing.T) {
	fsys := RuntimeAssetsFS()
	data, err := fs.ReadFile(fsys, vanilla.RuntimeScriptName)
	if err != nil {
		t.Fatalf("expected runtime script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "data-ff-autosubmit") {
		t.Fatalf("expected runtime script to wire auto-submit controls")
	}
}
