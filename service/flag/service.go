package flag

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/elC0mpa/storage-doctor/model"
	"github.com/elC0mpa/storage-doctor/utils"
)

func NewService() *service {
	return &service{args: os.Args[1:]}
}

func (s *service) GetParsedFlags() (model.Flags, error) {
	return parseFlags(s.args)
}

func parseFlags(args []string) (model.Flags, error) {
	fs := flag.NewFlagSet("storage-doctor", flag.ContinueOnError)

	subscriptions := fs.String("subscriptions", os.Getenv("AZURE_SUBSCRIPTION_ID"), "Comma separated subscription IDs (default: every enabled subscription)")
	accounts := fs.String("accounts", "", "Comma separated storage account names")
	accountPattern := fs.String("account-pattern", "", "Glob pattern for storage account names")
	maxAccounts := fs.Int("max-accounts", 0, "Maximum storage accounts per subscription (0 means no limit)")
	containers := fs.String("containers", "", "Comma separated container names")
	containerPattern := fs.String("container-pattern", "", "Glob pattern for container names")
	shares := fs.String("shares", "", "Comma separated file share names")
	sharePattern := fs.String("share-pattern", "", "Glob pattern for file share names")
	maxUnits := fs.Int("max-units", 0, "Maximum containers and shares per account (0 means no limit)")
	skipBlobs := fs.Bool("skip-blobs", false, "Do not scan blob containers")
	skipShares := fs.Bool("skip-shares", false, "Do not scan file shares")
	workers := fs.Int("workers", utils.GetEnvInt("STORAGE_DOCTOR_WORKERS", 10), "Units scanned in parallel")
	costs := fs.Bool("costs", false, "Query Cost Management and recommend reserved capacity")
	costMonths := fs.Int("cost-months", 6, "Months of spend history used for reservations")
	outputDir := fs.String("output-dir", utils.GetEnvOrDefault("STORAGE_DOCTOR_OUTPUT_DIR", "storage-report"), "Directory for exported reports")
	formats := fs.String("format", "", "Comma separated export formats: csv, html, xlsx, json")
	topUnits := fs.Int("top", 10, "Largest units shown in the terminal report")

	if err := fs.Parse(args); err != nil {
		return model.Flags{}, err
	}

	flags := model.Flags{
		Subscriptions:    utils.SplitList(*subscriptions),
		AccountNames:     utils.SplitList(*accounts),
		AccountPattern:   *accountPattern,
		MaxAccounts:      *maxAccounts,
		ContainerNames:   utils.SplitList(*containers),
		ContainerPattern: *containerPattern,
		ShareNames:       utils.SplitList(*shares),
		SharePattern:     *sharePattern,
		MaxUnits:         *maxUnits,
		SkipBlobs:        *skipBlobs,
		SkipShares:       *skipShares,
		Workers:          *workers,
		Costs:            *costs,
		CostMonths:       *costMonths,
		OutputDir:        *outputDir,
		Formats:          utils.SplitList(strings.ToLower(*formats)),
		TopUnits:         *topUnits,
	}

	if err := validate(flags); err != nil {
		return model.Flags{}, err
	}
	return flags, nil
}

func validate(flags model.Flags) error {
	if flags.SkipBlobs && flags.SkipShares && !flags.Costs {
		return fmt.Errorf("nothing to do: both -skip-blobs and -skip-shares are set without -costs")
	}
	if flags.MaxAccounts < 0 || flags.MaxUnits < 0 {
		return fmt.Errorf("-max-accounts and -max-units must not be negative")
	}
	if flags.Costs && flags.CostMonths < 2 {
		return fmt.Errorf("-cost-months must be at least 2, got %d", flags.CostMonths)
	}
	for _, format := range flags.Formats {
		if !slices.Contains(exportFormats, format) {
			return fmt.Errorf("unknown export format %q, expected one of %s", format, strings.Join(exportFormats, ", "))
		}
	}
	return nil
}
