package utils

import (
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

var (
	spinnerMu sync.Mutex
	active    *spinner.Spinner
)

// StartSpinner shows a spinner on stderr until StopSpinner is called
func StartSpinner() {
	spinnerMu.Lock()
	defer spinnerMu.Unlock()

	if active != nil {
		return
	}
	active = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	active.Suffix = " Examining storage accounts..."
	active.Start()
}

// UpdateSpinner replaces the spinner message. It is a no-op when no spinner runs.
func UpdateSpinner(message string) {
	spinnerMu.Lock()
	defer spinnerMu.Unlock()

	if active == nil {
		return
	}
	active.Lock()
	active.Suffix = " " + message
	active.Unlock()
}

func StopSpinner() {
	spinnerMu.Lock()
	defer spinnerMu.Unlock()

	if active == nil {
		return
	}
	active.Stop()
	active = nil
}
