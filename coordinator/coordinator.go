package coordinator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"fractal/misc"
	"fractal/render"
	"fractal/task"
	"fractal/worker"

	"github.com/BrugadaSyndrome/bslogger"
)

// DefaultHeartBeat is how often progress is logged during a render.
const DefaultHeartBeat = 5 * time.Second

// Coordinator owns one run: it splits the image into tasks, hands them to
// a pool of workers and writes the finished image.
type Coordinator struct {
	heartBeat      time.Duration
	logFile        *os.File
	logger         bslogger.Logger
	logging        misc.Logging
	renderer       *render.Renderer
	settings       Settings
	taskCount      uint
	tasksCompleted atomic.Uint64
}

// NewCoordinator loads settingsFile and prepares the palette. When the
// settings name a log file, every logger created for the run also writes
// to it until Close.
func NewCoordinator(settingsFile string, logging misc.Logging) (*Coordinator, error) {
	logger := logging.NewLogger("Coordinator")

	settings, err := NewSettings(settingsFile)
	if err != nil {
		return nil, err
	}
	var logFile *os.File
	if settings.LogFile != "" && logging.File == nil {
		logFile, err = misc.OpenLogFile(settings.LogFile)
		if misc.CheckError(err, logger, misc.Warning) {
			logger.Warning("Continuing without a log file")
		} else {
			logging.File = logFile
		}
	}

	c, err := New(settings, logging)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}
	c.logFile = logFile
	return c, nil
}

// New builds a coordinator from settings that are already in memory.
func New(settings Settings, logging misc.Logging) (*Coordinator, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	renderer, err := render.NewRenderer(settings.Settings)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		heartBeat: DefaultHeartBeat,
		logger:    logging.NewLogger("Coordinator"),
		logging:   logging,
		renderer:  renderer,
		settings:  settings,
	}
	for _, value := range settings.Defaults() {
		c.logger.Warningf("Setting not given, using default %s", value)
	}
	c.logger.Debug(settings.String())
	c.logger.Infof("Loaded color palette with %d colors", len(renderer.Colors()))
	return c, nil
}

func (c *Coordinator) Settings() Settings {
	return c.settings
}

// Close releases the log file opened for the run, if any.
func (c *Coordinator) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

// SetHeartBeat changes how often progress is logged.
func (c *Coordinator) SetHeartBeat(interval time.Duration) {
	if interval > 0 {
		c.heartBeat = interval
	}
}

// Run renders the image and saves it, returning the path written.
func (c *Coordinator) Run(ctx context.Context) (string, error) {
	c.logger.Infof("Generating %s", c.settings.Title())
	buffer, err := c.Render(ctx)
	if err != nil {
		return "", err
	}
	return c.Save(buffer)
}

// Render computes the RGB buffer for the whole image using the configured
// number of workers. The result does not depend on the worker count.
func (c *Coordinator) Render(ctx context.Context) ([]byte, error) {
	tasks, err := task.Split(c.settings.Width(), c.settings.Height(), c.settings.TaskGeneration)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", misc.ErrConfig, err)
	}
	c.taskCount = uint(len(tasks))
	c.tasksCompleted.Store(0)

	workerCount := c.settings.Workers
	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	buffer := c.renderer.NewBuffer()
	tasksTodo := make(chan task.Task)
	tasksDone := make(chan task.Task, len(tasks))
	errs := make(chan error, workerCount)

	go c.generateTasks(runCtx, tasks, tasksTodo)

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		w := worker.NewWorker(i, c.renderer, c.logging)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.ProcessTasks(runCtx, tasksTodo, buffer, tasksDone); err != nil {
				errs <- err
				cancel()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(tasksDone)
		close(errs)
	}()

	startTime := time.Now()
	c.ingestTasks(tasksDone)

	for err := range errs {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
	}
	if completed := c.tasksCompleted.Load(); completed != uint64(c.taskCount) {
		err := ctx.Err()
		if err == nil {
			err = errors.New("workers stopped early")
		}
		c.logger.Warningf("Render stopped after %d of %d tasks: %s", completed, c.taskCount, err)
		return nil, err
	}

	c.logger.Infof("Rendered %d pixels with %d workers in %s", c.settings.PixelCount(), workerCount, time.Since(startTime))
	return buffer, nil
}

func (c *Coordinator) generateTasks(ctx context.Context, tasks []task.Task, tasksTodo chan<- task.Task) {
	defer close(tasksTodo)
	for _, todo := range tasks {
		select {
		case tasksTodo <- todo:
		case <-ctx.Done():
			return
		}
	}
}

// ingestTasks counts finished tasks until every worker has stopped, logging
// progress on each heart beat.
func (c *Coordinator) ingestTasks(tasksDone <-chan task.Task) {
	heartBeat := time.NewTicker(c.heartBeat)
	defer heartBeat.Stop()

	for {
		select {
		case _, more := <-tasksDone:
			if !more {
				return
			}
			c.tasksCompleted.Add(1)
		case <-heartBeat.C:
			c.logger.Infof("Tasks [Completed: %d] [Todo: %d]", c.tasksCompleted.Load(), c.taskCount-uint(c.tasksCompleted.Load()))
		}
	}
}

// Save encodes buffer as a PNG named after the mode and size under the
// save path.
func (c *Coordinator) Save(buffer []byte) (string, error) {
	if err := os.MkdirAll(c.settings.SavePath, os.ModePerm); err != nil {
		return "", fmt.Errorf("%w: unable to create folder %s: %s", misc.ErrOutput, c.settings.SavePath, err)
	}

	encoded, err := misc.EncodePNG(buffer, c.settings.Width(), c.settings.Height())
	if err != nil {
		return "", err
	}

	path := filepath.Join(c.settings.SavePath, c.settings.Title())
	if _, err := misc.WriteFile(path, encoded); err != nil {
		return "", fmt.Errorf("%w: %s", misc.ErrOutput, err)
	}
	c.logger.Infof("Saved image to %s", path)
	return path, nil
}
