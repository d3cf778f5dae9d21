package html_test

import (
	"io/fs"
	"testing"

	"github.com/goliatone/go-formflow/pkg/renderers/html"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(html.AssetsFS(), html.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("stylesheet is empty")
	}
}
