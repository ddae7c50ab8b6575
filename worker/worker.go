package worker

import (
	"context"
	"fmt"
	"time"

	"fractal/misc"
	"fractal/render"
	"fractal/task"

	"github.com/BrugadaSyndrome/bslogger"
)

// Worker renders tasks into its share of a shared output buffer. Tasks
// never overlap, so workers write without locking.
type Worker struct {
	id             int
	logger         bslogger.Logger
	renderer       *render.Renderer
	tasksCompleted int
}

func NewWorker(id int, renderer *render.Renderer, logging misc.Logging) *Worker {
	return &Worker{
		id:       id,
		logger:   logging.NewLogger(fmt.Sprintf("Worker %d", id)),
		renderer: renderer,
	}
}

func (w *Worker) ID() int {
	return w.id
}

func (w *Worker) TasksCompleted() int {
	return w.tasksCompleted
}

// ProcessTasks pulls tasks until tasksTodo is closed or ctx is done, writing
// each task's pixels into buffer and reporting it on tasksDone.
func (w *Worker) ProcessTasks(ctx context.Context, tasksTodo <-chan task.Task, buffer []byte, tasksDone chan<- task.Task) error {
	w.logger.Debug("Processing tasks")
	startTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debugf("Stopping after %d tasks: %s", w.tasksCompleted, ctx.Err())
			return ctx.Err()
		case todo, more := <-tasksTodo:
			if !more {
				w.logger.Debugf("Processed %d tasks in %s", w.tasksCompleted, time.Since(startTime))
				return nil
			}

			start, end := render.BytesPerPixel*todo.Start, render.BytesPerPixel*todo.End
			if todo.Start < 0 || end > len(buffer) || start > end {
				return fmt.Errorf("worker %d: task %s does not fit a buffer of %d bytes", w.id, todo.String(), len(buffer))
			}
			if err := w.renderer.RenderInto(buffer[start:end], todo.Start); err != nil {
				return fmt.Errorf("worker %d: %w", w.id, err)
			}
			w.tasksCompleted++

			select {
			case tasksDone <- todo:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
