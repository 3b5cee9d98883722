package classfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"
)

var ErrEntryNotFound = errors.New("archive entry not found")

// ParseArchiveEntry parses the class file stored as name inside the jar or zip
// archive at archivePath. A name without the ".class" suffix gets it added.
func ParseArchiveEntry(archivePath, name string) (*ClassFile, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()
	return parseZipEntry(&r.Reader, name)
}

// ParseArchiveEntryBytes is ParseArchiveEntry over an archive already in memory.
func ParseArchiveEntryBytes(data []byte, name string) (*ClassFile, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return parseZipEntry(r, name)
}

func parseZipEntry(r *zip.Reader, name string) (*ClassFile, error) {
	name = strings.TrimPrefix(name, "/")
	if !strings.HasSuffix(name, ".class") {
		name += ".class"
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		log.Debugf("read %s (%d bytes) from archive", name, len(data))
		return Parse(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

// ArchiveClasses lists the .class members of the archive at archivePath.
func ArchiveClasses(archivePath string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	r, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	var names []string
	for _, zf := range r.File {
		if zf.FileInfo().IsDir() || !strings.HasSuffix(zf.Name, ".class") {
			continue
		}
		names = append(names, zf.Name)
	}
	return names, nil
}
