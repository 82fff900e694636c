package main

import (
	"bufio"
	"io"
	"log"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type fqReader struct {
	path    string
	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner
	line    int
}

func openFq(path string) (*fqReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open fastq")
	}
	var r io.Reader = file
	fq := &fqReader{path: path, file: file}
	if strings.HasSuffix(path, ".gz") {
		fq.gz, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, errors.Wrapf(err, "%s: gzip", path)
		}
		r = fq.gz
	}
	fq.scanner = bufio.NewScanner(r)
	fq.scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return fq, nil
}

func (fq *fqReader) Close() error {
	if fq.gz != nil {
		if err := fq.gz.Close(); err != nil {
			fq.file.Close()
			return err
		}
	}
	return fq.file.Close()
}

// next reads one 4-line record; it returns io.EOF at a clean end of file.
func (fq *fqReader) next(read *[4]string) error {
	for i := 0; i < 4; i++ {
		if !fq.scanner.Scan() {
			if err := fq.scanner.Err(); err != nil {
				return errors.Wrapf(err, "%s:%d", fq.path, fq.line)
			}
			if i == 0 {
				return io.EOF
			}
			return errors.Errorf("%s:%d: truncated record", fq.path, fq.line)
		}
		fq.line++
		read[i] = fq.scanner.Text()
	}
	switch {
	case !strings.HasPrefix(read[0], "@"):
		return errors.Errorf("%s:%d: header does not start with @", fq.path, fq.line-3)
	case !strings.HasPrefix(read[2], "+"):
		return errors.Errorf("%s:%d: separator does not start with +", fq.path, fq.line-1)
	case len(read[1]) != len(read[3]):
		return errors.Errorf("%s:%d: sequence and quality lengths differ", fq.path, fq.line)
	}
	return nil
}

func readName(header string) string {
	var fields = strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	return strings.Split(fields[0], "/")[0]
}

// checkFastq validates the first n records of fq1 and, when fq2 is set,
// that both mates agree on read names.
func checkFastq(fq1, fq2 string, n int) error {
	r1, err := openFq(fq1)
	if err != nil {
		return err
	}
	defer r1.Close()
	var r2 *fqReader
	if fq2 != "" {
		r2, err = openFq(fq2)
		if err != nil {
			return err
		}
		defer r2.Close()
	}

	var read1, read2 [4]string
	for i := 0; i < n; i++ {
		err1 := r1.next(&read1)
		if err1 != nil && err1 != io.EOF {
			return err1
		}
		if r2 == nil {
			if err1 == io.EOF {
				return nil
			}
			continue
		}
		err2 := r2.next(&read2)
		if err2 != nil && err2 != io.EOF {
			return err2
		}
		switch {
		case err1 == io.EOF && err2 == io.EOF:
			return nil
		case err1 == io.EOF:
			return errors.Errorf("more reads in %s than in %s", fq2, fq1)
		case err2 == io.EOF:
			return errors.Errorf("more reads in %s than in %s", fq1, fq2)
		}
		if name1, name2 := readName(read1[0]), readName(read2[0]); name1 != name2 {
			return errors.Errorf("PE:%d[%s!=%s] %s %s", i+1, name1, name2, fq1, fq2)
		}
	}
	return nil
}

// preflight checks every sample concurrently, at most threads at a time.
func preflight(info *Info, n, threads int) error {
	var g errgroup.Group
	g.SetLimit(threads)
	for _, group := range info.Groups {
		for _, sample := range group.Samples {
			sample := sample
			g.Go(func() error {
				if err := checkFastq(sample.Fq1, sample.Fq2, n); err != nil {
					return errors.Wrapf(err, "check %s", sample.Job)
				}
				log.Printf("check %s:%s ok", sample.Job, sample.Fq1)
				return nil
			})
		}
	}
	return g.Wait()
}
