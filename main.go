package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/liserjrqlxue/simple-util"
	"github.com/pkg/errors"
)

type Config struct {
	FgSamples     []string
	FgSamples2    []string
	BgSamples     []string
	BgSamples2    []string
	Genome        string
	AlignmentPath string
	ResultsPath   string
	Paired        bool
	Threads       int
	MinQual       string
	OutRoot       string
	ScriptsDir    string
	CmdLog        string

	Input      string
	Rscript    string
	Counter    string
	CheckFastq int
	Xlsx       bool
	Force      bool
	DryRun     bool
}

// listFlag collects comma-separated values over repeated occurrences.
type listFlag []string

func (l *listFlag) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v != "" {
			*l = append(*l, v)
		}
	}
	return nil
}

func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("EnrichPipeline", flag.ContinueOnError)
	lists := []struct {
		short, long string
		value       *[]string
		usage       string
	}{
		{"f", "fgSamples", &cfg.FgSamples, "immunoprecipitated sample fastq file(s) for single-ended or read pair 1"},
		{"g", "fgSamples2", &cfg.FgSamples2, "immunoprecipitated sample fastq file(s) for read pair 2"},
		{"b", "bgSamples", &cfg.BgSamples, "input sample fastq file(s) for single-ended or read pair 1"},
		{"c", "bgSamples2", &cfg.BgSamples2, "input sample fastq file(s) for read pair 2"},
	}
	for _, item := range lists {
		fs.Var((*listFlag)(item.value), item.short, item.usage)
		fs.Var((*listFlag)(item.value), item.long, item.usage)
	}
	stringVar := func(p *string, short, long, value, usage string) {
		fs.StringVar(p, short, value, usage)
		fs.StringVar(p, long, value, usage)
	}
	stringVar(&cfg.Genome, "n", "genome", "", "path to artificial genome fasta")
	stringVar(&cfg.AlignmentPath, "a", "alignmentPath", ".", "location to write alignment data")
	stringVar(&cfg.ResultsPath, "r", "resultsPath", ".", "location to write results")
	stringVar(&cfg.MinQual, "q", "minQual", "30", "minimum quality score for retaining mapped reads")
	stringVar(&cfg.OutRoot, "o", "outRoot", "", "output root to prepend to results, default basename of the first immunoprecipitated fastq")
	stringVar(&cfg.ScriptsDir, "s", "scriptsDir", "./scripts", "path to shell scripts")
	stringVar(&cfg.CmdLog, "l", "cmdLog", "", "log file for executed commands")
	fs.BoolVar(&cfg.Paired, "p", false, "sequencing data are paired-ended")
	fs.BoolVar(&cfg.Paired, "paired", false, "sequencing data are paired-ended")
	fs.IntVar(&cfg.Threads, "t", 8, "max number of threads to launch")
	fs.IntVar(&cfg.Threads, "threads", 8, "max number of threads to launch")

	fs.StringVar(&cfg.Input, "input", "", "sample sheet with type/fq1/fq2 columns")
	fs.StringVar(&cfg.Rscript, "rscript", "Rscript", "Rscript binary")
	fs.StringVar(&cfg.Counter, "counter", "script", "read counter:[script|bam]")
	fs.IntVar(&cfg.CheckFastq, "checkFastq", 0, "validate the first N records of every fastq before running")
	fs.BoolVar(&cfg.Xlsx, "xlsx", false, "also write enrichment tests as xlsx")
	fs.BoolVar(&cfg.Force, "force", false, "rerun steps with .complete marker")
	fs.BoolVar(&cfg.DryRun, "dryRun", false, "create scripts without running them")
	return fs
}

// parseArgs parses and validates command line arguments.
func parseArgs(args []string, stderr io.Writer) (*Config, error) {
	cfg := &Config{}
	fs := newFlagSet(cfg)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, &UsageError{Msg: err.Error(), reported: true}
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{Msg: fmt.Sprintf("unexpected arguments: %s", strings.Join(fs.Args(), " "))}
	}
	if cfg.Input != "" {
		sheet, err := ParseSampleSheet(cfg.Input)
		if err != nil {
			return nil, &UsageError{Msg: err.Error()}
		}
		sheet.apply(cfg)
	}
	if err := validate(cfg, stderr); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLog(cmdLog string) (io.Closer, error) {
	log.SetFlags(log.Ldate | log.Ltime)
	if cmdLog == "" {
		log.SetOutput(os.Stderr)
		return nil, nil
	}
	logF, err := os.OpenFile(cmdLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log %s", cmdLog)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, logF))
	log.Printf("Log file:%v\n", cmdLog)
	return logF, nil
}

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(reportError(os.Stderr, err))
	}

	logF, err := setupLog(cfg.CmdLog)
	simple_util.CheckErr(err)
	if logF != nil {
		defer simple_util.DeferClose(logF)
	}

	pipeline, err := NewPipeline(cfg, bashRunner{})
	simple_util.CheckErr(err)
	simple_util.CheckErr(pipeline.Run())
}
