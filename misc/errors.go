package misc

import (
	"errors"
	"os"

	"github.com/BrugadaSyndrome/bslogger"
)

const (
	Fatal Severity = iota
	Error
	Warning
	Info
	Debug
)

var (
	// ErrConfig marks settings that cannot produce an image.
	ErrConfig = errors.New("invalid configuration")
	// ErrOutput marks failures creating, encoding or writing the image.
	ErrOutput = errors.New("unable to write output")
)

type Severity int

func (s Severity) String() string {
	return []string{
		"Fatal", "Error", "Warning", "Info", "Debug",
	}[s]
}

// CheckError logs err at the given severity and reports whether there was
// an error at all. Fatal exits the process.
func CheckError(err error, logger bslogger.Logger, severity Severity) bool {
	if err == nil {
		return false
	}
	switch severity {
	case Fatal:
		logger.Fatal(err.Error())
	case Error:
		logger.Error(err.Error())
	case Warning:
		logger.Warning(err.Error())
	case Info:
		logger.Info(err.Error())
	case Debug:
		logger.Debug(err.Error())
	default:
		logger.Fatal(err.Error())
	}
	return true
}

// Logging carries the logger options chosen on the command line so every
// component can build its own named logger.
type Logging struct {
	Verbose bool
	File    *os.File
}

// NewLogger builds a logger tagged with name. Output is mirrored into File
// when one is set.
func (l Logging) NewLogger(name string) bslogger.Logger {
	if l.Verbose {
		return bslogger.NewLogger(name, bslogger.All, l.File)
	}
	return bslogger.NewLogger(name, bslogger.Normal, l.File)
}
