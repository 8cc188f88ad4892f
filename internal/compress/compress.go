// Package compress shrinks dataset JSON before it is encrypted.
//
// Compression is always applied to plaintext. Compressing ciphertext gains
// nothing, so the package codec never does it.
package compress

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"sync"
)

// MaxDecompressedSize caps the output of Decompress so a hostile package
// cannot exhaust memory.
const MaxDecompressedSize = 64 << 20

var gzipWriterPool = sync.Pool{
	New: func() any {
		w, _ := gzip.NewWriterLevel(nil, gzip.BestCompression)
		return w
	},
}

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// Compress returns the gzip form of data.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(w)
	w.Reset(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress reverses Compress. It reports ok=false instead of an error
// when data is not valid compressed input or inflates beyond
// MaxDecompressedSize; callers turn that into a corrupt-payload error.
func Decompress(data []byte) (out []byte, ok bool) {
	r := gzipReaderPool.Get().(*gzip.Reader)
	defer gzipReaderPool.Put(r)

	if err := r.Reset(bytes.NewReader(data)); err != nil {
		return nil, false
	}
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, MaxDecompressedSize+1))
	if err != nil || len(out) > MaxDecompressedSize {
		return nil, false
	}

	return out, true
}
