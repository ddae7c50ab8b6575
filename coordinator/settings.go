package coordinator

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"fractal/misc"
	"fractal/render"
	"fractal/task"
)

// Settings is the whole configuration file: the image itself plus how the
// run renders and stores it.
type Settings struct {
	render.Settings

	LogFile        string
	SavePath       string
	TaskGeneration task.Generation
	Workers        int
}

// NewSettings reads and verifies a JSON settings file.
func NewSettings(settingsFile string) (Settings, error) {
	fileBytes, err := misc.ReadFile(settingsFile)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %s", misc.ErrConfig, err)
	}
	s, err := ParseSettings(fileBytes)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", settingsFile, err)
	}
	return s, nil
}

// ParseSettings decodes the image settings through render.ParseSettings and
// the run settings from the same document.
func ParseSettings(data []byte) (Settings, error) {
	image, err := render.ParseSettings(data)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{Settings: image}
	if err := s.decodeRun(data); err != nil {
		return Settings{}, fmt.Errorf("%w: %s", misc.ErrConfig, err)
	}
	if err := s.Verify(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// UnmarshalJSON decodes both halves of the document. Without it the
// embedded render.Settings decoder would drop the run settings.
func (s *Settings) UnmarshalJSON(data []byte) error {
	if err := s.Settings.UnmarshalJSON(data); err != nil {
		return err
	}
	return s.decodeRun(data)
}

func (s *Settings) decodeRun(data []byte) error {
	var run struct {
		LogFile        string
		SavePath       string
		TaskGeneration task.Generation
		Workers        int
	}
	if err := json.Unmarshal(data, &run); err != nil {
		return err
	}
	s.LogFile = run.LogFile
	s.SavePath = run.SavePath
	s.TaskGeneration = run.TaskGeneration
	s.Workers = run.Workers
	return nil
}

func (s *Settings) String() string {
	output := s.Settings.String()
	output += "\nRun settings\n"
	output += fmt.Sprintf("Log File: %s\n", s.LogFile)
	output += fmt.Sprintf("Save Path: %s\n", s.SavePath)
	output += fmt.Sprintf("Task Generation: %s\n", s.TaskGeneration)
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	return output
}

func (s *Settings) Verify() error {
	if err := s.Settings.Verify(); err != nil {
		return err
	}
	if s.SavePath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("%w: no SavePath and no working directory: %s", misc.ErrConfig, err)
		}
		s.SavePath = wd
	}
	if !s.TaskGeneration.Valid() {
		return fmt.Errorf("%w: unknown task generation %d", misc.ErrConfig, int(s.TaskGeneration))
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: Workers must not be negative, got %d", misc.ErrConfig, s.Workers)
	}
	if s.Workers == 0 {
		s.Workers = runtime.NumCPU()
	}
	return nil
}
