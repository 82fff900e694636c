package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/liserjrqlxue/goUtil/textUtil"
	"github.com/pkg/errors"
)

type SheetRow struct {
	Tag string
	Fq1 string
	Fq2 string
}

type SampleSheet struct {
	Path string
	Rows []SheetRow
}

var sheetTypes = map[string]string{
	"fg":    fgTag,
	"ip":    fgTag,
	"bg":    bgTag,
	"input": bgTag,
}

// ParseSampleSheet reads a tab separated list with type, fq1 and fq2 columns.
func ParseSampleSheet(input string) (*SampleSheet, error) {
	if _, err := os.Stat(input); err != nil {
		return nil, errors.Wrap(err, "sample sheet")
	}
	var sheet = &SampleSheet{Path: input}
	var seen = make(map[string]bool)
	var items, title = textUtil.File2MapArray(input, "\t", nil)
	if err := checkTitle(input, title, "type", "fq1"); err != nil {
		return nil, err
	}
	for i, item := range items {
		var fq1 = strings.TrimSpace(item["fq1"])
		if fq1 == "" {
			continue
		}
		tag, ok := sheetTypes[strings.ToLower(strings.TrimSpace(item["type"]))]
		if !ok {
			return nil, fmt.Errorf("%s:%d: unknown sample type %q", input, i+2, item["type"])
		}
		var key = tag + "\t" + fq1
		if seen[key] {
			return nil, fmt.Errorf("%s:%d: dup sample %s %s", input, i+2, tag, fq1)
		}
		seen[key] = true
		sheet.Rows = append(sheet.Rows, SheetRow{
			Tag: tag,
			Fq1: fq1,
			Fq2: strings.TrimSpace(item["fq2"]),
		})
	}
	return sheet, nil
}

func checkTitle(input string, title []string, columns ...string) error {
	var has = make(map[string]bool)
	for _, key := range title {
		has[key] = true
	}
	var missing []string
	for _, key := range columns {
		if !has[key] {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing column(s) %s", input, strings.Join(missing, ","))
	}
	return nil
}

func (sheet *SampleSheet) apply(cfg *Config) {
	for _, row := range sheet.Rows {
		switch row.Tag {
		case fgTag:
			cfg.FgSamples = append(cfg.FgSamples, row.Fq1)
			if row.Fq2 != "" {
				cfg.FgSamples2 = append(cfg.FgSamples2, row.Fq2)
			}
		case bgTag:
			cfg.BgSamples = append(cfg.BgSamples, row.Fq1)
			if row.Fq2 != "" {
				cfg.BgSamples2 = append(cfg.BgSamples2, row.Fq2)
			}
		}
	}
}
