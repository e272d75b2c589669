package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/deltaflow/piso1d/internal/grid"
)

// WriteProfile writes the final-step profile to path as three
// comma-separated lines of N values each: velocity, pressure, temperature.
func WriteProfile(path string, st *grid.State) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, field := range [][]float64{st.U, st.P, st.T} {
		parts := make([]string, len(field))
		for i, v := range field {
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if _, err := fmt.Fprintln(f, strings.Join(parts, ",")); err != nil {
			return err
		}
	}
	return nil
}

// writeFile writes contents to path, truncating any existing file.
func writeFile(path, contents string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(contents)
	return err
}
