// Package printer implements the external printed representation named
// in spec §4.5 (value.to_string / value.print). It is independent of the
// evaluator; it only inspects value shapes, grounded on the teacher's
// separation between its AST's String()/debug formatting and its actual
// source-printing pass.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fuzy112/golisp/internal/runtime"
)

// ToString renders v per spec §4.5. Exception must never be passed here
// (printing it is a caller bug; see runtime.ExceptionValue.String).
func ToString(v runtime.Value) string {
	var b strings.Builder
	write(&b, v)
	return b.String()
}

// Print writes ToString(v) followed by a newline to w (spec §6:
// "value.print(env) writes to_string plus newline to stdout").
func Print(w io.Writer, v runtime.Value) {
	fmt.Fprintln(w, ToString(v))
}

func write(b *strings.Builder, v runtime.Value) {
	switch val := v.(type) {
	case runtime.NilValue:
		b.WriteString("()")
	case runtime.Bool:
		if val {
			b.WriteString("#T")
		} else {
			b.WriteString("#F")
		}
	case runtime.Int:
		b.WriteString(val.String())
	case *runtime.Symbol:
		b.WriteString(val.Name)
	case *runtime.StringValue:
		writeString(b, val.Value)
	case *runtime.Pair:
		writePair(b, val)
	case *runtime.Vector:
		writeVector(b, val)
	case *runtime.Procedure:
		b.WriteString(val.String())
	default:
		b.WriteString(val.String())
	}
}

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func writePair(b *strings.Builder, p *runtime.Pair) {
	b.WriteByte('(')
	write(b, p.Car)
	cur := p.Cdr
	for {
		switch c := cur.(type) {
		case runtime.NilValue:
			b.WriteByte(')')
			return
		case *runtime.Pair:
			b.WriteByte(' ')
			write(b, c.Car)
			cur = c.Cdr
		default:
			b.WriteString(" . ")
			write(b, c)
			b.WriteByte(')')
			return
		}
	}
}

func writeVector(b *strings.Builder, v *runtime.Vector) {
	b.WriteString("#(")
	for i := int64(0); i < v.Length(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		elem, _ := v.GetIndex(i)
		write(b, elem)
	}
	b.WriteByte(')')
}
