// Package odim defines the output-file handle contract the core writes
// through (spec section 6) and the 8-bit quantization it performs before
// writing (spec section 4.10). The real ODIM-H5/HDF5 reader and writer are
// out of scope for this module (spec section 1); Writer is the seam where a
// production HDF5-backed implementation plugs in.
package odim

import "fmt"

// Writer is the external output-file handle the core writes results
// through. A real implementation is backed by an ODIM-H5 file; MemoryWriter
// below is a map-backed stand-in for tests and the CLI's dry-run mode.
type Writer interface {
	WriteAttribute(path, name string, value interface{}) error
	ReadAttribute(path, name string) (float64, bool)
	WriteDataset(path, name string, data [][]byte) error
}

// MemoryWriter is an in-memory Writer, grounded on the boundary the teacher
// draws between in-memory decode (archive2.Archive2) and on-disk I/O: here
// the core never touches a file directly, it only ever sees this interface.
type MemoryWriter struct {
	Attributes map[string]interface{}
	Datasets   map[string][][]byte
}

// NewMemoryWriter returns an empty MemoryWriter.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{
		Attributes: make(map[string]interface{}),
		Datasets:   make(map[string][][]byte),
	}
}

func attrKey(path, name string) string {
	return path + "#" + name
}

// WriteAttribute stores value under path/name.
func (w *MemoryWriter) WriteAttribute(path, name string, value interface{}) error {
	w.Attributes[attrKey(path, name)] = value
	return nil
}

// ReadAttribute returns a previously written numeric attribute (float64 or
// int); any other stored type reports false.
func (w *MemoryWriter) ReadAttribute(path, name string) (float64, bool) {
	v, ok := w.Attributes[attrKey(path, name)]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// WriteDataset stores a 2-D byte array under path/name.
func (w *MemoryWriter) WriteDataset(path, name string, data [][]byte) error {
	w.Datasets[attrKey(path, name)] = data
	return nil
}

// String renders a short summary, used by the CLI's dry-run output.
func (w *MemoryWriter) String() string {
	return fmt.Sprintf("MemoryWriter{%d attributes, %d datasets}", len(w.Attributes), len(w.Datasets))
}
