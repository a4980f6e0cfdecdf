// Package npyio writes float32 arrays in NumPy's .npy and .npz formats so
// results can be loaded directly with numpy.load.
package npyio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

var order = binary.LittleEndian

// Array is a dense row-major float32 array.
type Array struct {
	Shape []int
	Data  []float32
}

// Vector returns a 1-d Array over v.
func Vector(v []float32) Array {
	return Array{Shape: []int{len(v)}, Data: v}
}

func (a Array) Validate() error {
	n := 1
	for _, d := range a.Shape {
		if d < 0 {
			return fmt.Errorf("negative dimension in shape %v", a.Shape)
		}
		n *= d
	}
	if n != len(a.Data) {
		return fmt.Errorf("shape %v requires %d elements, got %d", a.Shape, n, len(a.Data))
	}
	return nil
}

// Write writes a as a .npy file.
func Write(w io.Writer, a Array) error {
	if err := a.Validate(); err != nil {
		return err
	}

	if err := writeHeader(w, a.Shape); err != nil {
		return err
	}

	var buf [4]byte
	for _, x := range a.Data {
		order.PutUint32(buf[:], math.Float32bits(x))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}

	return nil
}

// The following is adapted from: github.com/sbinet/npyio
var magic = [6]byte{'\x93', 'N', 'U', 'M', 'P', 'Y'}

const (
	majorVersion = byte(2)
	minorVersion = byte(0)
	// Total header length must be a multiple of this.
	headerAlign = 64
)

func writeHeader(w io.Writer, shape []int) error {
	if err := binary.Write(w, order, magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, order, majorVersion); err != nil {
		return err
	}
	if err := binary.Write(w, order, minorVersion); err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf,
		"{'descr': '<f4', 'fortran_order': False, 'shape': %s, }",
		formatShape(shape))

	// magic + version + uint32 header length.
	prefixLen := len(magic) + 2 + 4
	padding := (headerAlign - (prefixLen+buf.Len()+1)%headerAlign) % headerAlign
	if _, err := buf.Write(bytes.Repeat([]byte{'\x20'}, padding)); err != nil {
		return err
	}
	if _, err := buf.Write([]byte{'\n'}); err != nil {
		return err
	}

	buflen := int64(buf.Len())
	if err := binary.Write(w, order, uint32(buflen)); err != nil {
		return err
	}

	if n, err := io.Copy(w, buf); err != nil {
		return err
	} else if n < buflen {
		return io.ErrShortWrite
	}

	return nil
}

func formatShape(shape []int) string {
	if len(shape) == 1 {
		return fmt.Sprintf("(%d,)", shape[0])
	}

	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprint(d)
	}
	return "(" + strings.Join(dims, ", ") + ")"
}
