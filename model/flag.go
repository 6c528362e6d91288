package model

type Flags struct {
	// Scope
	Subscriptions    []string
	AccountNames     []string
	AccountPattern   string
	MaxAccounts      int
	ContainerNames   []string
	ContainerPattern string
	ShareNames       []string
	SharePattern     string
	MaxUnits         int // per account, 0 means no limit
	SkipBlobs        bool
	SkipShares       bool

	// Execution
	Workers int

	// Workflows
	Costs      bool
	CostMonths int

	// Output
	OutputDir string
	Formats   []string // csv, html, xlsx, json
	TopUnits  int
}
