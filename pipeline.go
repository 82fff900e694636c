package main

import (
	"log"
	"path/filepath"
	"strconv"

	"github.com/liserjrqlxue/simple-util"
	"github.com/pkg/errors"
)

const (
	pairedScript     = "paired-ended-job.sh"
	singleScript     = "single-ended-job.sh"
	enrichmentScript = "calc_enrichments.Rscript"
)

type Pipeline struct {
	cfg     *Config
	info    *Info
	runner  Runner
	counter ReadCounter
}

func NewPipeline(cfg *Config, runner Runner) (*Pipeline, error) {
	p := &Pipeline{
		cfg:    cfg,
		info:   newInfo(cfg),
		runner: runner,
	}
	switch cfg.Counter {
	case "", "script":
		p.counter = &scriptCounter{
			runner:      runner,
			scriptsDir:  cfg.ScriptsDir,
			resultsPath: cfg.ResultsPath,
			threads:     cfg.Threads,
			dryRun:      cfg.DryRun,
		}
	case "bam":
		p.counter = &bamCounter{threads: cfg.Threads, dryRun: cfg.DryRun}
	default:
		return nil, errors.Errorf("unknown read counter %q", cfg.Counter)
	}
	return p, nil
}

func (p *Pipeline) Run() error {
	var cfg = p.cfg
	if err := createDir(cfg.AlignmentPath, cfg.ResultsPath, shellDir(cfg.ResultsPath)); err != nil {
		return err
	}
	if cfg.Input != "" {
		var list = filepath.Join(cfg.ResultsPath, cfg.OutRoot+".input.list")
		if err := simple_util.CopyFile(list, cfg.Input); err != nil {
			return errors.Wrap(err, "copy sample sheet")
		}
	}
	if cfg.CheckFastq > 0 {
		log.Printf("Checking first %d records of input fastq files", cfg.CheckFastq)
		if err := preflight(p.info, cfg.CheckFastq, cfg.Threads); err != nil {
			return err
		}
	}

	// alignment/coverage pipeline for IP and Input samples
	for _, group := range p.info.Groups {
		if err := p.runAlignments(group); err != nil {
			return err
		}
	}

	log.Printf("Calculating total reads for IP and Input samples")
	for _, group := range p.info.Groups {
		if err := p.gatherReadCounts(group); err != nil {
			return err
		}
	}
	log.Printf("FG Reads: %d", p.info.Group(fgTag).Reads)
	log.Printf("BG Reads: %d", p.info.Group(bgTag).Reads)

	log.Printf("Running enrichment tests")
	var outFile = enrichmentFile(cfg.ResultsPath, cfg.OutRoot)
	if err := p.enrichmentTask(outFile).RunTask(p.runner, cfg.Force, cfg.DryRun); err != nil {
		return err
	}
	if cfg.Xlsx && !cfg.DryRun {
		var xlsx = xlsxFile(cfg.ResultsPath, cfg.OutRoot)
		if err := writeXlsx(outFile, xlsx); err != nil {
			return err
		}
		log.Printf("Write %s", xlsx)
	}
	log.Printf("Enrichment tests: %s", outFile)
	return nil
}

func (p *Pipeline) alignmentTask(sample *Sample) *Task {
	var cfg = p.cfg
	var threads = strconv.Itoa(cfg.Threads)
	if p.info.Paired {
		return newTask(
			cfg.ResultsPath, "align", sample.Job,
			scriptPath(cfg.ScriptsDir, pairedScript), true,
			sample.Fq1, sample.Fq2, threads, cfg.MinQual, cfg.Genome, sample.Job, cfg.AlignmentPath, cfg.ResultsPath,
		)
	}
	return newTask(
		cfg.ResultsPath, "align", sample.Job,
		scriptPath(cfg.ScriptsDir, singleScript), true,
		sample.Fq1, threads, cfg.MinQual, cfg.Genome, sample.Job, cfg.AlignmentPath, cfg.ResultsPath,
	)
}

func (p *Pipeline) runAlignments(group *Group) error {
	for _, sample := range group.Samples {
		log.Printf("Align %s sample %d: %s", group.Name, sample.Index, sample.Fq1)
		var task = p.alignmentTask(sample)
		// a new alignment invalidates the enrichment tests
		if !task.Skip(p.cfg.Force) && !p.cfg.DryRun {
			if err := p.enrichmentTask(enrichmentFile(p.cfg.ResultsPath, p.cfg.OutRoot)).ClearComplete(); err != nil {
				return err
			}
		}
		if err := task.RunTask(p.runner, p.cfg.Force, p.cfg.DryRun); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) gatherReadCounts(group *Group) error {
	group.Reads = 0
	for _, sample := range group.Samples {
		var bam = prunedBam(p.cfg.AlignmentPath, p.info.OutRoot, group.Tag, sample.Index)
		n, err := p.counter.CountReads(sample.Job, bam)
		if err != nil {
			return errors.Wrapf(err, "count %s", bam)
		}
		group.Reads += n
	}
	return nil
}

func (p *Pipeline) enrichmentTask(outFile string) *Task {
	var cfg = p.cfg
	var fg, bg = p.info.Group(fgTag), p.info.Group(bgTag)
	return newTask(
		cfg.ResultsPath, "enrich", cfg.OutRoot, cfg.Rscript, true,
		"--vanilla",
		scriptPath(cfg.ScriptsDir, enrichmentScript),
		countsList(cfg.ResultsPath, cfg.OutRoot, fg),
		countsList(cfg.ResultsPath, cfg.OutRoot, bg),
		strconv.FormatInt(fg.Reads, 10),
		strconv.FormatInt(bg.Reads, 10),
		outFile,
	)
}
