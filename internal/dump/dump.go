package dump

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// Dumper writes raw generation text and repaired output to disk for
// debugging. Disabled (every method a no-op) when dir is empty, so the hot
// path never pays for it in production.
type Dumper struct {
	dir string
}

func NewDumper(dir string) *Dumper {
	return &Dumper{dir: dir}
}

func (d *Dumper) Enabled() bool { return d.dir != "" }

// Save writes one labelled artifact for a request, e.g.
// {dir}/{requestID}/raw_output.json. Failures are logged and swallowed;
// dumping must never fail a request.
func (d *Dumper) Save(requestID, label, content string) {
	if d.dir == "" {
		return
	}
	if requestID == "" {
		requestID = time.Now().Format("20060102T150405.000000000")
	}

	fullDirPath := filepath.Join(d.dir, requestID)
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		log.Printf("Failed to create dump directory %s: %v", fullDirPath, err)
		return
	}

	filePath := filepath.Join(fullDirPath, label)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		log.Printf("Failed to write dump file %s: %v", filePath, err)
		return
	}
	log.Printf("Dump saved: %s", filePath)
}
