package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMetadataMapper(t *testing.T) {
	lines := `{"article_id": "133695", "title": "분쟁조정사례", "date": "2024-01-05"}
{"article_id": 200100, "title": "보도자료"}
{"filename": "report.hwp", "title": "named by filename"}
not json at all
{"unkeyed": true}
`
	path := filepath.Join(t.TempDir(), "meta.jsonl")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatal(err)
	}

	mapper, err := LoadMetadata(path)
	if err != nil {
		t.Fatal(err)
	}

	// Leading id segment of the filename.
	if got := mapper.Get("/data/133695_0.hwp"); got == nil || got["title"] != "분쟁조정사례" {
		t.Errorf("Get(133695_0.hwp) = %v", got)
	}
	// Numeric article_id.
	if got := mapper.Get("/data/200100.hwp"); got == nil || got["title"] != "보도자료" {
		t.Errorf("Get(200100.hwp) = %v", got)
	}
	// Full-filename key.
	if got := mapper.Get("/somewhere/report.hwp"); got == nil || got["title"] != "named by filename" {
		t.Errorf("Get(report.hwp) = %v", got)
	}
	// No match.
	if got := mapper.Get("/data/999999.hwp"); got != nil {
		t.Errorf("Get(999999.hwp) = %v, want nil", got)
	}
}

func TestMetadataMapperNil(t *testing.T) {
	var mapper *MetadataMapper
	if got := mapper.Get("anything.hwp"); got != nil {
		t.Errorf("nil mapper returned %v", got)
	}
}
