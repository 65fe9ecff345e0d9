// Package archive implements the "pcube" binary container described in
// spec.md section 6: a streamable, optionally gzip-compressed sequence
// of packed polycube identifiers. Grounded on
// original_source/python/libraries/pcube.py for the exact byte layout
// and on std/comp.go's CompStream for the gzip-wrapping idiom (the
// teacher wraps a net.Conn; here the whole payload is wrapped instead,
// per spec.md's "entire payload replaced by a single gzip stream").
package archive

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mikepound/opencubes/internal/perr"
)

var magic = [4]byte{0xCB, 0xEC, 0xCB, 0xEC}

// filePattern names archives by the polycube size they hold.
const filePattern = "cubes_%d.pcube"

// Path returns the archive file path for size n inside dir.
func Path(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf(filePattern, n))
}

var (
	errBadMagic       = errors.New("pcube: bad magic bytes")
	errBadOrientation = errors.New("pcube: unknown orientation flag")
	errBadCompression = errors.New("pcube: unknown compression flag")
	errTruncated      = errors.New("pcube: truncated record")
)

// Orientation is the pcube header's orientation flag.
type Orientation byte

const (
	// Unsorted stores canonical identifiers exactly as produced by canon.Canonical.
	Unsorted Orientation = 0
	// Oriented stores each identifier's bitwise-highest rotation.
	Oriented Orientation = 1
)

// Compression is the pcube header's compression flag.
type Compression byte

const (
	NoCompression   Compression = 0
	GzipCompression Compression = 1
)

// Write encodes ids (already in the orientation the caller wants
// recorded) as a pcube stream to w, with len(ids) as the count field.
// For an empty ids that count is 0, which Read treats as "read until
// EOF" and decodes to no records; callers that want "read until EOF"
// semantics for a non-empty list should use WriteStreaming.
func Write(w io.Writer, ids [][]byte, orientation Orientation, compression Compression) error {
	return write(w, ids, orientation, compression, uint64(len(ids)))
}

// WriteStreaming writes a pcube stream with count field 0 ("read until
// EOF"), for producers that do not know the final count in advance.
func WriteStreaming(w io.Writer, ids [][]byte, orientation Orientation, compression Compression) error {
	return write(w, ids, orientation, compression, 0)
}

func write(w io.Writer, ids [][]byte, orientation Orientation, compression Compression, count uint64) error {
	header := make([]byte, 0, 16)
	header = append(header, magic[:]...)
	header = append(header, byte(orientation), byte(compression))
	var countBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(countBuf[:], count)
	header = append(header, countBuf[:n]...)

	if _, err := w.Write(header); err != nil {
		return perr.Wrap(perr.IOFailure, err)
	}

	payload := &bytes.Buffer{}
	for _, id := range ids {
		if _, err := payload.Write(id); err != nil {
			return perr.Wrap(perr.IOFailure, err)
		}
	}

	if compression == GzipCompression {
		gz := gzip.NewWriter(w)
		if _, err := gz.Write(payload.Bytes()); err != nil {
			return perr.Wrap(perr.IOFailure, err)
		}
		if err := gz.Close(); err != nil {
			return perr.Wrap(perr.IOFailure, err)
		}
		return nil
	}

	if _, err := w.Write(payload.Bytes()); err != nil {
		return perr.Wrap(perr.IOFailure, err)
	}
	return nil
}

// Read decodes a pcube stream from r, returning every identifier in
// stored orientation alongside the orientation flag itself. The
// compression flag, if gzip, is transparently undone.
func Read(r io.Reader) ([][]byte, Orientation, error) {
	br := bufio.NewReader(r)

	var hdr [6]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, 0, perr.Wrap(perr.ArchiveCorrupt, err)
	}
	if !bytes.Equal(hdr[0:4], magic[:]) {
		return nil, 0, perr.Wrap(perr.ArchiveCorrupt, errBadMagic)
	}
	orientation := Orientation(hdr[4])
	if orientation != Unsorted && orientation != Oriented {
		return nil, 0, perr.Wrap(perr.ArchiveCorrupt, errBadOrientation)
	}
	compression := Compression(hdr[5])
	if compression != NoCompression && compression != GzipCompression {
		return nil, 0, perr.Wrap(perr.ArchiveCorrupt, errBadCompression)
	}

	count, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, 0, perr.Wrap(perr.ArchiveCorrupt, err)
	}

	var payload io.Reader = br
	if compression == GzipCompression {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, 0, perr.Wrap(perr.ArchiveCorrupt, err)
		}
		defer gz.Close()
		payload = gz
	}

	ids, err := readRecords(payload, count)
	if err != nil {
		return nil, 0, err
	}
	return ids, orientation, nil
}

// readRecords reads either exactly `count` records, or (count == 0)
// records until EOF.
func readRecords(r io.Reader, count uint64) ([][]byte, error) {
	var ids [][]byte
	for i := uint64(0); count == 0 || i < count; i++ {
		id, err := readRecord(r)
		if err == io.EOF {
			if count == 0 {
				return ids, nil
			}
			return nil, perr.Wrap(perr.ArchiveCorrupt, errTruncated)
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func readRecord(r io.Reader) ([]byte, error) {
	var shape [3]byte
	n, err := io.ReadFull(r, shape[:])
	if n == 0 && err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, perr.Wrap(perr.ArchiveCorrupt, errTruncated)
	}

	dx, dy, dz := int(shape[0]), int(shape[1]), int(shape[2])
	bodyLen := (dx*dy*dz + 7) / 8
	id := make([]byte, 3+bodyLen)
	copy(id, shape[:])
	if _, err := io.ReadFull(r, id[3:]); err != nil {
		return nil, perr.Wrap(perr.ArchiveCorrupt, errTruncated)
	}
	return id, nil
}

// SaveAtomic writes ids as a pcube archive at path, first writing to a
// temporary file in the same directory and renaming into place, so a
// failed or partial write never leaves a corrupt file at path. Grounded
// on spec.md section 7's "rename-into-place" requirement.
func SaveAtomic(path string, ids [][]byte, orientation Orientation, compression Compression) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pcube-*.tmp")
	if err != nil {
		return perr.Wrap(perr.IOFailure, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := Write(tmp, ids, orientation, compression); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return perr.Wrap(perr.IOFailure, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return perr.Wrap(perr.IOFailure, err)
	}
	return nil
}

// Load reads a pcube archive from path.
func Load(path string) ([][]byte, Orientation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, perr.Wrap(perr.IOFailure, err)
	}
	defer f.Close()
	return Read(f)
}

