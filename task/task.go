package task

import (
	"encoding/json"
	"fmt"
)

const (
	Row Generation = iota
	Image
)

// Generation decides how an image is split into tasks.
type Generation int

func (g Generation) String() string {
	return []string{
		"Row", "Image",
	}[g]
}

func (g Generation) Valid() bool {
	return g >= Row && g <= Image
}

func (g *Generation) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("task generation must be a string: %s", err)
	}
	switch name {
	case Row.String():
		*g = Row
	case Image.String():
		*g = Image
	default:
		return fmt.Errorf("unknown task generation %q", name)
	}
	return nil
}

func (g Generation) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// Task is a contiguous run of row-major pixel indices [Start, End).
type Task struct {
	ID    uint
	Start int
	End   int
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task ID: %d Pixels: [%d, %d)}", t.ID, t.Start, t.End)
}

// Len is the number of pixels in the task.
func (t *Task) Len() int {
	return t.End - t.Start
}

// Split partitions a width x height image into tasks that cover every pixel
// exactly once, in order.
func Split(width int, height int, generation Generation) ([]Task, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("cannot split a %dx%d image", width, height)
	}

	switch generation {
	case Row:
		tasks := make([]Task, height)
		for r := 0; r < height; r++ {
			tasks[r] = Task{ID: uint(r), Start: r * width, End: (r + 1) * width}
		}
		return tasks, nil
	case Image:
		return []Task{{ID: 0, Start: 0, End: width * height}}, nil
	}
	return nil, fmt.Errorf("unknown generation type: %d", int(generation))
}
