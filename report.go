package main

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/liserjrqlxue/simple-util"
	"github.com/pkg/errors"
)

const reportSheet = "enrichment"

func splitReportLine(line string) []string {
	var fields []string
	if strings.Contains(line, "\t") {
		fields = strings.Split(line, "\t")
	} else {
		fields = strings.Fields(line)
	}
	for i := range fields {
		fields[i] = strings.Trim(fields[i], `"`)
	}
	return fields
}

// reportCell keeps Inf and NaN as text; they are not valid xlsx numbers.
func reportCell(s string) interface{} {
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return v
	}
	return s
}

// writeXlsx converts the enrichment test table written by R into xlsx.
func writeXlsx(report, output string) error {
	file, err := os.Open(report)
	if err != nil {
		return errors.Wrap(err, "open enrichment report")
	}
	defer simple_util.DeferClose(file)

	var xlsx = excelize.NewFile()
	xlsx.SetSheetName("Sheet1", reportSheet)
	var scanner = bufio.NewScanner(file)
	var rowNum = 0
	for scanner.Scan() {
		var line = scanner.Text()
		if line == "" {
			continue
		}
		rowNum++
		var row []interface{}
		for _, field := range splitReportLine(line) {
			// header stays text
			if rowNum == 1 {
				row = append(row, field)
				continue
			}
			row = append(row, reportCell(field))
		}
		axis, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := xlsx.SetSheetRow(reportSheet, axis, &row); err != nil {
			return errors.Wrapf(err, "%s row %d", output, rowNum)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read enrichment report")
	}
	return errors.Wrapf(xlsx.SaveAs(output), "save %s", output)
}
