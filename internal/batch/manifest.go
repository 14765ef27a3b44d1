package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Manifest is the JSON document summarizing a batch run for downstream
// consumers (indexers, upload tooling). Failed images are omitted; the
// entry metadata carries the pipeline's per-image contract fields.
type Manifest struct {
	GeneratedAt time.Time `json:"generated_at"`
	Entries     []Result  `json:"entries"`
}

// WriteManifest serializes the successful results of a run to path,
// creating parent directories as needed.
func WriteManifest(path string, s Summary) error {
	m := Manifest{GeneratedAt: time.Now().UTC()}
	for _, res := range s.Results {
		if res.Error == nil && res.Output != "" {
			m.Entries = append(m.Entries, res)
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
