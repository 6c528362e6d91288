package export

import (
	"log/slog"

	"github.com/elC0mpa/storage-doctor/model"
)

const (
	FormatCSV  = "csv"
	FormatHTML = "html"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

type service struct {
	outputDir string
	topUnits  int
	logger    *slog.Logger
}

type htmlSection struct {
	title string
	html  string
}

type ExportService interface {
	Export(report model.ScanReport, formats []string) ([]string, error)
}
