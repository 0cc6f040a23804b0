package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/nbsatlas/nbsharvest"
)

// MetadataFilename is the per-directory document written by the download
// stage, mapping saved filenames to their source URLs.
const MetadataFilename = "download_metadata.json"

// Metadata describes the outcome of the download stage for one directory.
type Metadata struct {
	SuccessfulFiles []MetadataFile `json:"successful_files"`
	FailedFiles     []MetadataFile `json:"failed_files"`
}

// MetadataFile is one downloaded file entry.
type MetadataFile struct {
	Filename string `json:"filename"`
	Link     string `json:"link"`
}

// LoadMetadata reads the download metadata document from dir. A missing
// document is not an error; it simply means no URL can be resolved for
// any file in the directory.
func LoadMetadata(dir string) (*Metadata, error) {
	b, err := os.ReadFile(filepath.Join(dir, MetadataFilename))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var m Metadata
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// URLFor resolves the source URL recorded for a filename. Unresolvable
// files, including every file when metadata is absent, map to the
// "unknown" sentinel.
func (m *Metadata) URLFor(filename string) string {
	if m == nil {
		return nbsharvest.Unknown
	}
	for _, entry := range m.SuccessfulFiles {
		if entry.Filename == filename {
			if entry.Link == "" {
				return nbsharvest.Unknown
			}
			return entry.Link
		}
	}
	return nbsharvest.Unknown
}
