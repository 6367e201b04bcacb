// Package emit exports a compiled bytecode.Program as a standalone,
// goto-based Go source file, so a pattern that is known ahead of time can
// be compiled once and shipped as plain Go rather than interpreted at
// runtime. The generated function mirrors bytecode.Run instruction for
// instruction; it exists purely as an alternate, ahead-of-time backend,
// the bytecode interpreter remains the one exercised at match time.
package emit

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/relang/rex/internal/bytecode"
)

// Generate renders a Go source file declaring `package pkg` with a function
// named funcName, func(data []byte) bool, implementing prog.
func Generate(pkg, funcName string, prog bytecode.Program) (string, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by rex/internal/emit. DO NOT EDIT.")

	body := []jen.Code{
		jen.Id("pos").Op(":=").Lit(0),
		jen.Id("_").Op("=").Id("pos"),
		jen.Goto().Id(label(prog.Entry)),
	}
	for i, instr := range prog.Instrs {
		body = append(body, jen.Id(label(i)).Op(":"))
		body = append(body, instrCode(instr)...)
	}

	f.Func().Id(funcName).Params(jen.Id("data").Index().Byte()).Bool().Block(body...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("emit: render: %w", err)
	}
	return buf.String(), nil
}

func label(pc int) string {
	return fmt.Sprintf("L%d", pc)
}

func instrCode(instr bytecode.Instr) []jen.Code {
	switch instr.Op {
	case bytecode.Success:
		return []jen.Code{jen.Return(jen.True())}

	case bytecode.Failure:
		return []jen.Code{jen.Return(jen.False())}

	case bytecode.FailLength:
		return []jen.Code{
			jen.If(jen.Id("pos").Op(">=").Len(jen.Id("data"))).Block(
				jen.Return(jen.False()),
			),
		}

	case bytecode.Jump:
		return []jen.Code{
			jen.Id("pos").Op("++"),
			jen.Goto().Id(label(instr.Target)),
		}

	case bytecode.JumpByte:
		return []jen.Code{
			jen.If(
				jen.Id("pos").Op("<").Len(jen.Id("data")).
					Op("&&").Id("data").Index(jen.Id("pos")).Op("==").Lit(instr.Byte),
			).Block(
				jen.Id("pos").Op("++"),
				jen.Goto().Id(label(instr.Target)),
			),
		}

	case bytecode.JumpMask:
		return []jen.Code{
			jen.If(
				jen.Id("pos").Op("<").Len(jen.Id("data")).
					Op("&&").Parens(jen.Id("data").Index(jen.Id("pos")).Op("&").Lit(instr.Mask)).Op("==").Lit(instr.Mask),
			).Block(
				jen.Id("pos").Op("++"),
				jen.Goto().Id(label(instr.Target)),
			),
		}

	case bytecode.JumpRange:
		return []jen.Code{
			jen.If(
				jen.Id("pos").Op("<").Len(jen.Id("data")).
					Op("&&").Id("data").Index(jen.Id("pos")).Op(">=").Lit(instr.Lo).
					Op("&&").Id("data").Index(jen.Id("pos")).Op("<=").Lit(instr.Hi),
			).Block(
				jen.Id("pos").Op("++"),
				jen.Goto().Id(label(instr.Target)),
			),
		}

	default:
		return nil
	}
}
