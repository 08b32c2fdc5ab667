package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
)

func fakeDoc(text string) *document.Document {
	p := document.NewParagraph(0)
	p.Text = text
	return &document.Document{Sections: []*document.Section{{Paragraphs: []*document.Paragraph{p}}}}
}

func TestProcessFiles(t *testing.T) {
	proc := &Processor{
		Workers: 3,
		Extract: func(ctx context.Context, path string) (*document.Document, string, error) {
			if strings.Contains(path, "bad") {
				return nil, "", errors.New("boom")
			}
			return fakeDoc(path), MethodBodyText, nil
		},
	}

	files := []string{"a.hwp", "bad.hwp", "b.hwp", "c.hwp"}
	result := proc.ProcessFiles(context.Background(), files)

	if result.Total != 4 || result.Success != 3 || result.Failed != 1 {
		t.Errorf("result = total %d success %d failed %d", result.Total, result.Success, result.Failed)
	}
	if len(result.Outcomes) != 4 {
		t.Errorf("outcomes = %d", len(result.Outcomes))
	}
	if result.FinishedAt.Before(result.StartedAt) {
		t.Errorf("timestamps out of order")
	}
}

func TestProcessFilesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := &Processor{
		Workers: 1,
		Extract: func(ctx context.Context, path string) (*document.Document, string, error) {
			return fakeDoc(path), MethodBodyText, nil
		},
	}

	files := make([]string, 100)
	for i := range files {
		files[i] = fmt.Sprintf("f%d.hwp", i)
	}
	result := proc.ProcessFiles(ctx, files)

	// A pre-canceled context feeds no jobs; the partial result still
	// reports the intended total.
	if result.Total != 100 {
		t.Errorf("total = %d", result.Total)
	}
	if len(result.Outcomes) != 0 {
		t.Errorf("outcomes after cancel = %d", len(result.Outcomes))
	}
}

func TestProcessFilesTimeout(t *testing.T) {
	proc := &Processor{
		Workers: 1,
		Timeout: 10 * time.Millisecond,
		Extract: func(ctx context.Context, path string) (*document.Document, string, error) {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(5 * time.Second):
				return fakeDoc(path), MethodBodyText, nil
			}
		},
	}

	result := proc.ProcessFiles(context.Background(), []string{"slow.hwp"})
	if result.Failed != 1 {
		t.Fatalf("failed = %d", result.Failed)
	}
	if !errors.Is(result.Outcomes[0].Err, context.DeadlineExceeded) {
		t.Errorf("err = %v", result.Outcomes[0].Err)
	}
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	os.MkdirAll(sub, 0o755)
	for _, name := range []string{
		filepath.Join(dir, "one.hwp"),
		filepath.Join(dir, "two.hwpx"),
		filepath.Join(dir, "skip.txt"),
		filepath.Join(sub, "three.hwp"),
	} {
		os.WriteFile(name, []byte("x"), 0o644)
	}

	var seen []string
	proc := &Processor{
		Workers: 1,
		Extract: func(ctx context.Context, path string) (*document.Document, string, error) {
			seen = append(seen, filepath.Base(path))
			return fakeDoc(path), MethodBodyText, nil
		},
	}

	result, err := proc.ProcessDirectory(context.Background(), dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 3 {
		t.Errorf("total = %d, seen %v", result.Total, seen)
	}

	result, err = proc.ProcessDirectory(context.Background(), dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 2 {
		t.Errorf("non-recursive total = %d", result.Total)
	}
}

func TestExportFailedLog(t *testing.T) {
	result := Result{
		FinishedAt: time.Now(),
		Outcomes: []Outcome{
			{Path: "ok.hwp", Method: MethodBodyText},
			{Path: "broken.hwp", Method: MethodBodyText, Err: errors.New("bad record")},
		},
	}

	path := filepath.Join(t.TempDir(), "failed.jsonl")
	n, err := ExportFailedLog(result, path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("wrote %d entries, want 1", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "broken.hwp") || !strings.Contains(string(data), "bad record") {
		t.Errorf("log content: %s", data)
	}
	if strings.Contains(string(data), "ok.hwp") {
		t.Errorf("successful outcome leaked into failure log")
	}
}
