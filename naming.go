package main

import (
	"path/filepath"
	"strconv"
	"strings"
)

const (
	prunedBamSuffix  = ".pruned.bam"
	countsSuffix     = ".pruned.te-counts.txt"
	enrichmentSuffix = ".enrichment-tests.txt"
	xlsxSuffix       = ".enrichment-tests.xlsx"
	completeSuffix   = ".complete"
)

// defaultOutRoot strips the directory and the last extension of path.
// Leading dots of the base name never start an extension.
func defaultOutRoot(path string) string {
	var base = filepath.Base(path)
	var root = strings.TrimSuffix(base, filepath.Ext(base))
	if strings.Trim(root, ".") == "" {
		return base
	}
	return root
}

func jobRoot(outRoot, tag string, index int) string {
	return strings.Join([]string{outRoot, tag, strconv.Itoa(index)}, ".")
}

func prunedBam(alignmentPath, outRoot, tag string, index int) string {
	return filepath.Join(alignmentPath, jobRoot(outRoot, tag, index)) + prunedBamSuffix
}

func countsFile(resultsPath, outRoot, tag string, index int) string {
	return filepath.Join(resultsPath, jobRoot(outRoot, tag, index)) + countsSuffix
}

func countsList(resultsPath, outRoot string, group *Group) string {
	var files []string
	for _, sample := range group.Samples {
		files = append(files, countsFile(resultsPath, outRoot, group.Tag, sample.Index))
	}
	return strings.Join(files, ",")
}

func enrichmentFile(resultsPath, outRoot string) string {
	return filepath.Join(resultsPath, outRoot) + enrichmentSuffix
}

func xlsxFile(resultsPath, outRoot string) string {
	return filepath.Join(resultsPath, outRoot) + xlsxSuffix
}

func shellDir(resultsPath string) string {
	return filepath.Join(resultsPath, "shell")
}

func shellScript(resultsPath, job, step string) string {
	return filepath.Join(shellDir(resultsPath), strings.Join([]string{job, step, "sh"}, "."))
}
