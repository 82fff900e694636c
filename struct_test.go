package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSampleSheet(t *testing.T) {
	sheet, err := ParseSampleSheet(writeFile(t, "samples.tsv",
		"type\tfq1\tfq2\n"+
			"ip\tip1_1.fq.gz\tip1_2.fq.gz\n"+
			"input\tin1_1.fq.gz\tin1_2.fq.gz\n"+
			"FG\tip2_1.fq.gz\tip2_2.fq.gz\n"+
			"bg\tin2_1.fq.gz\tin2_2.fq.gz"))
	require.NoError(t, err)
	assert.Equal(t, []SheetRow{
		{Tag: fgTag, Fq1: "ip1_1.fq.gz", Fq2: "ip1_2.fq.gz"},
		{Tag: bgTag, Fq1: "in1_1.fq.gz", Fq2: "in1_2.fq.gz"},
		{Tag: fgTag, Fq1: "ip2_1.fq.gz", Fq2: "ip2_2.fq.gz"},
		{Tag: bgTag, Fq1: "in2_1.fq.gz", Fq2: "in2_2.fq.gz"},
	}, sheet.Rows)

	cfg := &Config{FgSamples: []string{"ip0.fq"}}
	sheet.apply(cfg)
	assert.Equal(t, []string{"ip0.fq", "ip1_1.fq.gz", "ip2_1.fq.gz"}, cfg.FgSamples)
	assert.Equal(t, []string{"ip1_2.fq.gz", "ip2_2.fq.gz"}, cfg.FgSamples2)
	assert.Equal(t, []string{"in1_1.fq.gz", "in2_1.fq.gz"}, cfg.BgSamples)
	assert.Equal(t, []string{"in1_2.fq.gz", "in2_2.fq.gz"}, cfg.BgSamples2)
}

func TestParseSampleSheetErrors(t *testing.T) {
	_, err := ParseSampleSheet(writeFile(t, "dup.tsv",
		"type\tfq1\tfq2\nip\ta.fq\t\nip\ta.fq\t"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dup sample")

	_, err = ParseSampleSheet(writeFile(t, "type.tsv",
		"type\tfq1\tfq2\nmock\ta.fq\t"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sample type")

	_, err = ParseSampleSheet(writeFile(t, "title.tsv",
		"sampleID\tfastq1\tfq2\nip\ta.fq\t"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column(s) type,fq1")

	_, err = ParseSampleSheet("/nonexistent/samples.tsv")
	assert.Error(t, err)
}

func TestParseArgsSampleSheet(t *testing.T) {
	input := writeFile(t, "samples.tsv",
		"type\tfq1\tfq2\nip\tip_1.fq\tip_2.fq\ninput\tin_1.fq\tin_2.fq")
	var stderr bytes.Buffer
	cfg, err := parseArgs([]string{"-input", input, "-n", "te.fa", "-p"}, &stderr)
	require.NoError(t, err)
	assert.True(t, cfg.Paired)
	assert.Equal(t, []string{"ip_1.fq"}, cfg.FgSamples)
	assert.Equal(t, []string{"in_2.fq"}, cfg.BgSamples2)
	assert.Equal(t, "ip_1", cfg.OutRoot)

	_, err = parseArgs([]string{"-input", "/nonexistent.tsv", "-n", "te.fa"}, &stderr)
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}
