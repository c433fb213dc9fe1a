package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV streams the run as one row per tick. Position columns are
// laid out x0,y0,x1,y1,... using the particle count of the first tick.
func WriteCSV(w io.Writer, t *Trajectory) error {
	if len(t.Ticks) == 0 {
		return fmt.Errorf("export: empty trajectory")
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"tick", "faults", "kinetic", "stretch"}
	for i := range t.Ticks[0].Positions {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	row := make([]string, 0, len(header))
	for _, tk := range t.Ticks {
		row = row[:0]
		row = append(row,
			strconv.Itoa(tk.Tick),
			strconv.Itoa(tk.Faults),
			strconv.FormatFloat(tk.Kinetic, 'g', -1, 64),
			strconv.FormatFloat(tk.Stretch, 'g', -1, 64),
		)
		for _, p := range tk.Positions {
			row = append(row,
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
			)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row %d: %w", tk.Tick, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
