package kernel

import (
	"strconv"
	"strings"
)

// PrintOptions controls tensor formatting.
type PrintOptions struct {
	Scientific bool // Use %e instead of %f
	Precision  int  // Digits after the decimal point
}

// DefaultPrintOptions is used by String.
var DefaultPrintOptions = PrintOptions{Precision: 4}

// String formats the tensor with DefaultPrintOptions.
func (k *Tensor) String() string {
	return k.Format(DefaultPrintOptions)
}

// Format renders k as nested brackets. Leading size-1 dims are elided.
func (k *Tensor) Format(opts PrintOptions) string {
	if k.released {
		return "tensor(<released>)"
	}
	first := 0
	for first < Rank-1 && k.shape[first] == 1 {
		first++
	}
	verb := byte('f')
	if opts.Scientific {
		verb = 'e'
	}

	var sb strings.Builder
	var idx Index
	var walk func(dim int)
	walk = func(dim int) {
		if dim == Rank {
			sb.WriteString(strconv.FormatFloat(float64(k.At(idx)), verb, opts.Precision, 32))
			return
		}
		sb.WriteByte('[')
		for i := 0; i < k.shape[dim]; i++ {
			if i > 0 {
				if dim < Rank-1 {
					sb.WriteString(",\n" + strings.Repeat(" ", dim-first+1))
				} else {
					sb.WriteString(", ")
				}
			}
			idx[dim] = i
			walk(dim + 1)
		}
		sb.WriteByte(']')
	}
	for i := 0; i < first; i++ {
		idx[i] = 0
	}
	walk(first)
	return sb.String()
}
