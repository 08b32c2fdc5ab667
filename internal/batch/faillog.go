package batch

import (
	"encoding/json"
	"os"
	"time"
)

type failEntry struct {
	Path      string    `json:"filepath"`
	Error     string    `json:"error"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
}

// ExportFailedLog writes one JSONL line per failed outcome and returns how
// many were written.
func ExportFailedLog(result Result, path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	count := 0
	for _, o := range result.Outcomes {
		if o.Err == nil {
			continue
		}
		entry := failEntry{
			Path:      o.Path,
			Error:     o.Err.Error(),
			Method:    o.Method,
			Timestamp: result.FinishedAt,
		}
		if err := enc.Encode(entry); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
