package main

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
)

const readCountScript = "get_readcount.sh"

// ReadCounter returns the number of reads kept in a pruned alignment.
type ReadCounter interface {
	CountReads(job, bamPath string) (int64, error)
}

// scriptCounter delegates counting to get_readcount.sh.
type scriptCounter struct {
	runner      Runner
	scriptsDir  string
	resultsPath string
	threads     int
	dryRun      bool
}

func (c *scriptCounter) CountReads(job, bamPath string) (int64, error) {
	task := newTask(
		c.resultsPath, "count", job,
		scriptPath(c.scriptsDir, readCountScript), false,
		bamPath, strconv.Itoa(c.threads),
	)
	out, err := task.OutputTask(c.runner, c.dryRun)
	if err != nil || c.dryRun {
		return 0, err
	}
	return parseReadCount(out)
}

func parseReadCount(out string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
	if err != nil {
		return 0, errors.Errorf("unexpected read count output %q", out)
	}
	return n, nil
}

// bamCounter reads the pruned alignment in-process.
type bamCounter struct {
	threads int
	dryRun  bool
}

func (c *bamCounter) CountReads(job, bamPath string) (int64, error) {
	if c.dryRun {
		return 0, nil
	}
	return countBam(bamPath, c.threads)
}

// countBam counts primary records, skipping secondary and supplementary alignments.
func countBam(path string, threads int) (int64, error) {
	in, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "count reads")
	}
	defer in.Close()
	reader, err := bam.NewReader(in, threads)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s: failed to open BAM", path)
	}
	defer reader.Close()

	var n int64
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, errors.Wrapf(err, "%s: failed to read %dth record", path, n)
		}
		if rec.Flags&(sam.Secondary|sam.Supplementary) != 0 {
			continue
		}
		n++
	}
	return n, nil
}
