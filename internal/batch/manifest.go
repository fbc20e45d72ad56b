package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Name     string   `json:"name"`
	Output   string   `json:"output"`
	Preview  string   `json:"preview,omitempty"`
	Success  bool     `json:"success"`
	Error    string   `json:"error,omitempty"`
	Frames   int      `json:"frames"`
	Applied  int      `json:"applied"`
	Skipped  []string `json:"skipped"`
	Excluded int      `json:"excluded"`
}

// WriteManifest writes manifest.json. Output and preview paths are made
// relative to the manifest's directory when possible.
func WriteManifest(path string, results []Result) error {
	base := filepath.Dir(path)
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		skipped := r.Skipped
		if skipped == nil {
			skipped = []string{}
		}
		entries[i] = ManifestEntry{
			Name:     r.Name,
			Output:   relTo(base, r.Output),
			Preview:  relTo(base, r.Preview),
			Success:  r.Success,
			Error:    r.Error,
			Frames:   r.Frames,
			Applied:  r.Applied,
			Skipped:  skipped,
			Excluded: r.Excluded,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func relTo(base, p string) string {
	if p == "" {
		return ""
	}
	if rel, err := filepath.Rel(base, p); err == nil {
		return filepath.ToSlash(rel)
	}
	return p
}
