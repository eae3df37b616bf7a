package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/radwaste/internal/dataset"
)

// ExportJSON writes v as indented JSON to path.
func ExportJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, v)
}

func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// ExportCSV writes t to path in the same layout the Store reads.
func ExportCSV(path string, t *dataset.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.Encode(file, t); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
