package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/binnev/lissajous-patterns/internal/trajectory"
)

type ExportData struct {
	RunMetadata
	Times  []float64   `json:"times"`
	Points [][]float64 `json:"points"`
}

func NewExport(meta RunMetadata, path *trajectory.Path) ExportData {
	data := ExportData{
		RunMetadata: meta,
		Times:       path.Times,
		Points:      make([][]float64, len(path.Points)),
	}
	for i, p := range path.Points {
		data.Points[i] = []float64{p.X, p.Y}
	}
	return data
}

func WriteJSON(w io.Writer, meta RunMetadata, path *trajectory.Path) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExport(meta, path))
}

// ExportJSON writes to file, or to stdout when file is empty or "-".
func ExportJSON(file string, meta RunMetadata, path *trajectory.Path) error {
	if file == "" || file == "-" {
		return WriteJSON(os.Stdout, meta, path)
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, meta, path); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportCSV writes to file, or to stdout when file is empty or "-".
func ExportCSV(file string, path *trajectory.Path) error {
	if file == "" || file == "-" {
		return WriteCSV(os.Stdout, path)
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, path); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
