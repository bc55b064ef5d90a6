// Package taskset loads the line-oriented tabular task-set input: each row
// is (id, deadline_ms, weight) as three numeric literals, mirroring a
// csv.reader + literal-eval style load.
package taskset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/khryptorgraphics/ensure-sched/pkg/sched/types"
)

// Load reads a task set from the CSV file at path.
func Load(path string) ([]*types.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening task-set file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a task set from r, a three-column CSV of (id, deadline_ms,
// weight) rows.
func Parse(r io.Reader) ([]*types.Task, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	var tasks []*types.Task
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}

		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid task id %q: %w", row, record[0], err)
		}
		deadline, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid deadline %q: %w", row, record[1], err)
		}
		weight, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid weight %q: %w", row, record[2], err)
		}

		tasks = append(tasks, types.NewTask(id, deadline, weight))
		row++
	}

	return tasks, nil
}
