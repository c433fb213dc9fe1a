package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON streams the run as indented JSON.
func WriteJSON(w io.Writer, t *Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}
