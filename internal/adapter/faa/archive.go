package faa

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Table entry names inside the distribution archive. Fixed by the FAA.
const (
	registrationEntry = "MASTER.txt"
	referenceEntry    = "ACFTREF.txt"
)

// extractTables verifies archivePath contains both required table entries
// and unpacks exactly those two into destDir, ignoring everything else in
// the archive. Returns the extracted reference and registration paths. A
// readable archive lacking either entry yields a *MissingEntryError.
func extractTables(archivePath, destDir string) (refPath, regPath string, err error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", "", fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer r.Close()

	entries := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		entries[f.Name] = f
	}
	for _, name := range []string{registrationEntry, referenceEntry} {
		if _, ok := entries[name]; !ok {
			return "", "", &MissingEntryError{Entry: name, Archive: archivePath}
		}
	}

	refPath = filepath.Join(destDir, referenceEntry)
	regPath = filepath.Join(destDir, registrationEntry)
	if err := extractEntry(entries[referenceEntry], refPath); err != nil {
		return "", "", err
	}
	if err := extractEntry(entries[registrationEntry], regPath); err != nil {
		return "", "", err
	}

	return refPath, regPath, nil
}

func extractEntry(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return nil
}
