package flag

import "github.com/elC0mpa/storage-doctor/model"

// Formats accepted by -format
var exportFormats = []string{"csv", "html", "xlsx", "json"}

type service struct {
	args []string
}

type FlagService interface {
	GetParsedFlags() (model.Flags, error)
}
