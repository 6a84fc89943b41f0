// internal/seqio/open.go
package seqio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/cheggaaa/pb.v1"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Options controls how a source is opened.
type Options struct {
	// Progress, when non-nil, receives a byte progress bar while reading.
	Progress io.Writer
	// Label prefixes the progress bar.
	Label string
}

// Reader is an opened source. Reads return decompressed text; BytesRead
// reports raw bytes consumed from the underlying file.
type Reader struct {
	io.Reader
	counter *countingReader
	bar     *pb.ProgressBar
	closers []io.Closer
}

// BytesRead returns the number of raw (possibly compressed) bytes consumed.
func (r *Reader) BytesRead() int64 { return r.counter.n }

// Close finishes the progress bar and closes every layer.
func (r *Reader) Close() error {
	if r.bar != nil {
		r.bar.Finish()
		r.bar = nil
	}
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	r.closers = nil
	return err
}

// Open opens path ("-" for stdin). Gzip input is detected by magic number
// (1F 8B) or by a .gz suffix.
func Open(path string, opt Options) (*Reader, error) {
	var (
		src     io.Reader
		closers []io.Closer
		size    int64
	)
	if path == Stdin {
		src = os.Stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		if fi, err := fh.Stat(); err == nil {
			if fi.IsDir() {
				_ = fh.Close()
				return nil, &os.PathError{Op: "open", Path: path, Err: errIsDir}
			}
			size = fi.Size()
		}
		src = fh
		closers = append(closers, fh)
	}

	r := &Reader{counter: &countingReader{r: src}}
	src = r.counter
	if opt.Progress != nil {
		r.bar = newBar(size, opt)
		src = r.bar.NewProxyReader(src)
	}

	br := bufio.NewReaderSize(src, 64<<10)
	sig, _ := br.Peek(2)
	if (len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(br)
		if err != nil {
			r.closers = closers
			_ = r.Close()
			return nil, fmt.Errorf("%w: %w", ErrBadGzip, err)
		}
		r.Reader = gr
		r.closers = append([]io.Closer{gr}, closers...)
		return r, nil
	}
	r.Reader = br
	r.closers = closers
	return r, nil
}

func newBar(size int64, opt Options) *pb.ProgressBar {
	bar := pb.New64(size).SetUnits(pb.U_BYTES)
	bar.Output = opt.Progress
	bar.ShowSpeed = true
	if opt.Label != "" {
		bar.Prefix(opt.Label + " ")
	}
	return bar.Start()
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
