package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/elC0mpa/storage-doctor/service/aggregator"
	"github.com/elC0mpa/storage-doctor/service/export/response"
	"github.com/elC0mpa/storage-doctor/utils"
)

func NewService(outputDir string, topUnits int, logger *slog.Logger) *service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		outputDir: outputDir,
		topUnits:  topUnits,
		logger:    logger,
	}
}

// Export writes the report in every requested format and returns the paths
// written. It stops at the first failing format.
func (s *service) Export(report model.ScanReport, formats []string) ([]string, error) {
	if len(formats) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	base := filepath.Join(s.outputDir, "storage-report-"+report.GeneratedAt.Format("20060102-150405"))

	var written []string
	for _, format := range formats {
		var paths []string
		var err error

		switch strings.ToLower(format) {
		case FormatCSV:
			paths, err = s.writeCSV(base, report)
		case FormatHTML:
			paths, err = s.writeHTML(base+".html", report)
		case FormatXLSX:
			paths, err = writeXLSX(base+".xlsx", report)
		case FormatJSON:
			paths, err = s.writeJSON(base+".json", report)
		default:
			err = fmt.Errorf("unknown export format %q", format)
		}
		if err != nil {
			return written, fmt.Errorf("failed to export %s: %w", format, err)
		}

		for _, path := range paths {
			s.logger.Info("report written", "format", format, "path", path)
		}
		written = append(written, paths...)
	}
	return written, nil
}

// writeCSV writes one file per table since CSV has no notion of sheets
func (s *service) writeCSV(base string, report model.ScanReport) ([]string, error) {
	files := map[string]string{
		base + "-units.csv":           utils.UnitsTable("Units", report.Units).RenderCSV(),
		base + "-accounts.csv":        utils.AccountsTable(report.Accounts, report.Totals).RenderCSV(),
		base + "-recommendations.csv": utils.RecommendationsTable(report.Recommendations).RenderCSV(),
	}
	if len(report.Costs) > 0 {
		files[base+"-spend.csv"] = utils.SpendHistoryTable(report.Costs).RenderCSV()
		files[base+"-spend-trends.csv"] = utils.SpendTrendTable(report.SpendTrends).RenderCSV()
	}
	if report.Reservations != nil {
		files[base+"-reservations.csv"] = utils.ReservationsTable(*report.Reservations).RenderCSV()
	}

	paths := make([]string, 0, len(files))
	for _, path := range slices.Sorted(maps.Keys(files)) {
		if err := os.WriteFile(path, []byte(files[path]+"\n"), 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *service) writeHTML(path string, report model.ScanReport) ([]string, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Storage Doctor Report</title>\n<style>\n")
	b.WriteString("body{font-family:sans-serif;margin:2em}table{border-collapse:collapse;margin-bottom:2em}")
	b.WriteString("th,td{border:1px solid #ccc;padding:4px 8px}th{background:#1f4e79;color:#fff}tfoot td{font-weight:bold}\n")
	b.WriteString("</style>\n</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>Storage Doctor Report</h1>\n<p>Generated %s</p>\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	sections := []htmlSection{
		{"Overview", utils.OverviewTable(report).RenderHTML()},
		{"Storage Accounts", utils.AccountsTable(report.Accounts, report.Totals).RenderHTML()},
		{"Largest Units", utils.UnitsTable("Largest Units", aggregator.TopUnits(report.Units, s.topUnits)).RenderHTML()},
		{"Recommended Access Tiers", utils.RecommendedTiersTable(report.Totals.RecommendedTiers).RenderHTML()},
		{"Recommendations", utils.RecommendationsTable(report.Recommendations).RenderHTML()},
	}
	if len(report.Costs) > 0 {
		sections = append(sections,
			htmlSection{"Storage Spend Trends", utils.SpendTrendTable(report.SpendTrends).RenderHTML()},
			htmlSection{"Monthly Storage Spend", utils.SpendHistoryTable(report.Costs).RenderHTML()},
		)
	}
	if report.Reservations != nil {
		sections = append(sections,
			htmlSection{"Reserved Capacity", utils.ReservationsTable(*report.Reservations).RenderHTML()},
			htmlSection{"Existing Reservations", utils.ExistingReservationsTable(report.Reservations.Existing).RenderHTML()},
		)
	}

	for _, section := range sections {
		fmt.Fprintf(&b, "<h2>%s</h2>\n%s\n", section.title, section.html)
	}
	b.WriteString("</body>\n</html>\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (s *service) writeJSON(path string, report model.ScanReport) ([]string, error) {
	data, err := json.MarshalIndent(response.ConvertReport(report, aggregator.TopUnits(report.Units, s.topUnits)), "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}
	return []string{path}, nil
}
