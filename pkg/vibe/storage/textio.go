package storage

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is the IANA name values are stored in.
const DefaultEncoding = "UTF-8"

func lookupEncoding(name, op, path string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, &fs.PathError{Op: op, Path: path, Err: err}
	}
	if enc == nil {
		enc = encoding.Nop
	}
	return enc, nil
}

// readText reads and decodes the whole file.
func readText(filePath string, encodingName string) (string, error) {
	enc, err := lookupEncoding(encodingName, "file-read-get-encoding", filePath)
	if err != nil {
		return "", err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", &fs.PathError{Op: "file-read-open", Path: filePath, Err: err}
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			log.Printf("error closing file: %v", err)
		}
	}(file)

	fileInfo, err := file.Stat()
	if err != nil {
		return "", &fs.PathError{Op: "file-read-stat", Path: filePath, Err: err}
	}

	reader := bufio.NewReaderSize(file, optimalBufferSize(fileInfo.Size()))
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", &fs.PathError{Op: "file-read-read-all", Path: filePath, Err: err}
	}

	decoded, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return "", &fs.PathError{Op: "file-read-decode", Path: filePath, Err: err}
	}

	return string(decoded), nil
}

// writeText encodes content into a temp file beside filePath and renames it
// into place, so readers never see a half-written blob.
func writeText(filePath string, content string, encodingName string) error {
	enc, err := lookupEncoding(encodingName, "file-write-get-encoding", filePath)
	if err != nil {
		return err
	}

	encoded, err := enc.NewEncoder().Bytes([]byte(content))
	if err != nil {
		return &fs.PathError{Op: "file-write-encode", Path: filePath, Err: err}
	}

	// Round-trip to catch content the encoding cannot represent
	decoded, err := enc.NewDecoder().Bytes(encoded)
	if err != nil {
		return &fs.PathError{Op: "file-write-validate", Path: filePath,
			Err: errors.New("content cannot be represented in specified encoding: " + err.Error())}
	}
	if string(decoded) != content {
		return &fs.PathError{Op: "file-write-validate", Path: filePath,
			Err: errors.New("content cannot be represented in specified encoding")}
	}

	dir, base := filepath.Split(filePath)
	tmp, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return &fs.PathError{Op: "file-write-create", Path: filePath, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	writer := bufio.NewWriterSize(tmp, optimalBufferSize(int64(len(encoded))))
	if _, err := writer.Write(encoded); err != nil {
		tmp.Close()
		return &fs.PathError{Op: "file-write-write", Path: filePath, Err: err}
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return &fs.PathError{Op: "file-write-flush", Path: filePath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &fs.PathError{Op: "file-write-close", Path: filePath, Err: err}
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return &fs.PathError{Op: "file-write-rename", Path: filePath, Err: err}
	}
	committed = true
	return nil
}

// removeFile deletes filePath; a missing file is fine.
func removeFile(filePath string) error {
	err := os.Remove(filepath.Clean(filePath))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &fs.PathError{Op: "file-remove", Path: filePath, Err: err}
	}
	return nil
}

// optimalBufferSize scales a 4KB base by GOMAXPROCS, capped at 1MB, and uses
// the content size itself for smaller content.
func optimalBufferSize(size int64) int {
	baseSize := 4 * 1024

	if size < int64(baseSize) {
		// bufio falls back to its default for sizes below 16 bytes
		return int(size)
	}

	scaledSize := baseSize * runtime.GOMAXPROCS(0)

	maxSize := 1 * 1024 * 1024
	if scaledSize > maxSize {
		return maxSize
	}
	return scaledSize
}
