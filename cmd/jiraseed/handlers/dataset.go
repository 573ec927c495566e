package handlers

import (
	"fmt"
	"io"
	"os"
)

// ExportDataset writes the built-in dataset to path, or to out when path is
// empty.
func ExportDataset(path string, out io.Writer) error {
	data := datasetYAML()
	if path == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	fmt.Fprintf(out, "Dataset written to %s\n", path)
	return nil
}
