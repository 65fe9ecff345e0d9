// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package cache implements the legacy cache format described in
// spec.md section 6: a secondary, opaque on-disk persistence of S(n)
// keyed only by n, independent of the "pcube" archive format. Grounded
// on original_source/libraries/cache.py's cache_exists/save_cache/
// get_cache trio, reusing std/comp.go's snappy-stream idiom (retargeted
// from a net.Conn onto a plain file) for the compression layer.
package cache

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"

	"github.com/mikepound/opencubes/internal/perr"
)

const filePattern = "cubes_%d.cache"

// Path returns the cache file path for size n inside dir.
func Path(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf(filePattern, n))
}

// Exists reports whether a cache file for size n is present in dir,
// mirroring cache_exists(n) in the reference implementation.
func Exists(dir string, n int) bool {
	_, err := os.Stat(Path(dir, n))
	return err == nil
}

// Save persists ids as the cache for size n, snappy-compressing the
// length-prefixed identifier stream.
func Save(dir string, n int, ids [][]byte) error {
	path := Path(dir, n)
	tmp, err := os.CreateTemp(dir, ".cache-*.tmp")
	if err != nil {
		return perr.Wrap(perr.IOFailure, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := snappy.NewBufferedWriter(tmp)
	for _, id := range ids {
		if err := writeRecord(w, id); err != nil {
			tmp.Close()
			return perr.Wrap(perr.IOFailure, err)
		}
	}
	if err := w.Close(); err != nil {
		tmp.Close()
		return perr.Wrap(perr.IOFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return perr.Wrap(perr.IOFailure, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return perr.Wrap(perr.IOFailure, err)
	}
	return nil
}

// Load reads the cache for size n from dir. ok is false if no cache
// file exists; a read/decode failure on an existing file is returned as
// an error rather than treated as a cache miss.
func Load(dir string, n int) (ids [][]byte, ok bool, err error) {
	path := Path(dir, n)
	f, openErr := os.Open(path)
	if openErr != nil {
		if os.IsNotExist(openErr) {
			return nil, false, nil
		}
		return nil, false, perr.Wrap(perr.IOFailure, openErr)
	}
	defer f.Close()

	r := snappy.NewReader(f)
	for {
		id, readErr := readRecord(r)
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, false, perr.Wrap(perr.IOFailure, readErr)
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}

func writeRecord(w io.Writer, id []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(id)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(id)
	return err
}

func readRecord(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("cache: truncated record length")
		}
		return nil, err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	id := make([]byte, n)
	if _, err := io.ReadFull(r, id); err != nil {
		return nil, fmt.Errorf("cache: truncated record body: %w", err)
	}
	return id, nil
}
