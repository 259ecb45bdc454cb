package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run     RunMetadata        `json:"run"`
	Frames  int                `json:"frames"`
	Samples []Sample           `json:"samples"`
	Metrics map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run and its samples as one indented JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, samples []Sample) error {
	data := ExportData{
		Run:     meta,
		Frames:  len(samples),
		Samples: samples,
		Metrics: meta.Metrics,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSONFile writes to path, or stdout when path is empty or "-".
func ExportJSONFile(path string, meta RunMetadata, samples []Sample) error {
	if path == "" || path == "-" {
		return ExportJSON(os.Stdout, meta, samples)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, samples)
}

// ExportCSVFile writes to path, or stdout when path is empty or "-".
func ExportCSVFile(path string, samples []Sample) error {
	if path == "" || path == "-" {
		return WriteCSV(os.Stdout, samples)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, samples)
}
