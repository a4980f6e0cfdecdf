package npyio

import (
	"io"
	"sort"

	"github.com/klauspost/compress/zip"
)

// WriteNPZ writes each array as "<name>.npy" within a zip archive.
// Arrays are written in name order so output is reproducible.
func WriteNPZ(w io.Writer, arrays map[string]Array) error {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	sort.Strings(names)

	z := zip.NewWriter(w)
	for _, name := range names {
		f, err := z.Create(name + ".npy")
		if err != nil {
			return err
		}

		if err := Write(f, arrays[name]); err != nil {
			return err
		}
	}

	return z.Close()
}
