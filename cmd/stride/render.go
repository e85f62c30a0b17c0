package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/born-ml/stride/internal/codec"
	"github.com/born-ml/stride/internal/tensor"
	"github.com/born-ml/stride/internal/worksheet"
)

// maxShownValues caps how many elements a row prints.
const maxShownValues = 16

type row struct {
	name, dtype, shape, strides, layout, values string
}

func (r row) cells() []string {
	return []string{r.name, r.dtype, r.shape, r.strides, r.layout, r.values}
}

func renderOutputs(w io.Writer, outs []worksheet.Output, plain bool) error {
	rows := make([]row, len(outs))
	for i, o := range outs {
		layout := "view"
		if o.Contiguous {
			layout = "row-major"
		}
		rows[i] = row{
			name:    o.Name,
			dtype:   o.Document.DType,
			shape:   formatInts(o.Document.Shape),
			strides: formatInts(o.Strides),
			layout:  layout,
			values:  formatValues(o.Document.Data),
		}
	}
	return render(w, rows, fmt.Sprintf("%d outputs", len(rows)), plain)
}

func renderBundle(w io.Writer, b *codec.Bundle, plain bool) error {
	rows := make([]row, len(b.Entries))
	for i, e := range b.Entries {
		d := e.Tensor
		rows[i] = row{
			name:    e.Name,
			dtype:   d.DType,
			shape:   formatInts(d.Shape),
			strides: formatInts(tensor.Shape(d.Shape).ComputeStrides()),
			layout:  "row-major",
			values:  formatValues(d.Data),
		}
	}
	return render(w, rows, fmt.Sprintf("%d tensors, bundle v%d", len(rows), b.Version), plain)
}

func render(w io.Writer, rows []row, caption string, plain bool) error {
	if plain {
		for _, r := range rows {
			if _, err := fmt.Fprintln(w, strings.Join(r.cells(), "\t")); err != nil {
				return err
			}
		}
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "DType", "Shape", "Strides", "Layout", "Values"})
	table.SetCaption(true, caption)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, r := range rows {
		table.Append(r.cells())
	}
	table.Render()
	return nil
}

func formatInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatValues(v []float64) string {
	n := min(len(v), maxShownValues)
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = strconv.FormatFloat(v[i], 'g', -1, 64)
	}
	s := "[" + strings.Join(parts, " ")
	if len(v) > n {
		s += fmt.Sprintf(" ... (%d more)", len(v)-n)
	}
	return s + "]"
}
