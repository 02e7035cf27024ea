// Package emitter implements the bytecode emitter (spec.md §4.9,
// component J): the binary program header, include tables, subroutine
// offset/name tables, and the per-instruction wire layout, written with
// encoding/binary the same way the teacher repository's own compiler
// package serializes its function blobs a field at a time
// (_examples/mna-nenuphar/lang/compiler/compiler.go's little-endian
// encoder helpers).
package emitter

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/diag"
)

// Sub is one fully compiled subroutine, ready for emission: its name and
// the final, fully resolved instruction list lang/compiler produced (no
// structured forms remain and every label has been rewritten to an
// integer byte offset, spec.md §8 invariants 2-3).
type Sub struct {
	Name         string
	Instructions []ast.Instr
}

// Program bundles everything Emit needs: the two include lists (names
// only, no file contents — reading included files is a collaborator's
// job per spec.md §1) and the compiled subs in declaration order.
type Program struct {
	Anim []string
	Ecli []string
	Subs []Sub
}

// Emit serializes a whole program per spec.md §4.9's fixed layout.
func Emit(p Program) ([]byte, error) {
	var subBlobs [][]byte
	for _, s := range p.Subs {
		blob, err := emitSub(s)
		if err != nil {
			return nil, err
		}
		subBlobs = append(subBlobs, blob)
	}

	animTable := encodeIncludeList(p.Anim)
	ecliTable := encodeIncludeList(p.Ecli)
	includeLen := len(animTable) + len(ecliTable)

	nameTable := encodeNameTable(subNames(p.Subs))

	var out bytes.Buffer
	out.WriteString("SCPT")
	writeU16(&out, 1)
	writeU16(&out, uint16(includeLen))
	writeU32(&out, 36)
	out.Write(make([]byte, 4))
	writeU32(&out, uint32(len(p.Subs)))
	out.Write(make([]byte, 16))

	out.Write(animTable)
	out.Write(ecliTable)

	offset := uint32(36 + includeLen + 4*len(p.Subs) + len(nameTable))
	for _, blob := range subBlobs {
		writeU32(&out, offset)
		offset += uint32(len(blob))
	}
	out.Write(nameTable)
	for _, blob := range subBlobs {
		out.Write(blob)
	}
	return out.Bytes(), nil
}

func subNames(subs []Sub) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.Name
	}
	return out
}

// encodeIncludeList writes one of the two include tables: a u32 LE count
// followed by the concatenated NUL-terminated names, the whole blob
// zero-padded to a multiple of 4 (spec.md §4.9).
func encodeIncludeList(names []string) []byte {
	var buf bytes.Buffer
	writeU32(&buf, uint32(len(names)))
	for _, n := range names {
		buf.WriteString(n)
		buf.WriteByte(0)
	}
	padTo4(&buf)
	return buf.Bytes()
}

// encodeNameTable writes the subroutine name table: concatenated
// NUL-terminated names, the whole blob zero-padded to a multiple of 4.
func encodeNameTable(names []string) []byte {
	var buf bytes.Buffer
	for _, n := range names {
		buf.WriteString(n)
		buf.WriteByte(0)
	}
	padTo4(&buf)
	return buf.Bytes()
}

func padTo4(buf *bytes.Buffer) {
	if rem := buf.Len() % 4; rem != 0 {
		buf.Write(make([]byte, 4-rem))
	}
}

func writeU16(buf *bytes.Buffer, v uint16) { _ = binary.Write(buf, binary.LittleEndian, v) }
func writeU32(buf *bytes.Buffer, v uint32) { _ = binary.Write(buf, binary.LittleEndian, v) }

func emitSub(s Sub) ([]byte, error) {
	var body bytes.Buffer
	time, rank := uint32(0), uint8(0xFF)
	for _, in := range s.Instructions {
		switch in.Kind {
		case ast.InstrTimeLabel:
			switch in.TimeOp {
			case ast.TimeSet:
				time = uint32(in.TimeVal)
			case ast.TimeAdd:
				time += uint32(in.TimeVal)
			case ast.TimeSub:
				time -= uint32(in.TimeVal)
			}
		case ast.InstrRankLabel:
			rank = in.RankMask
		case ast.InstrLabel:
			return nil, &diag.Error{Kind: diag.BackEnd, Pos: in.Pos, Msg: "unresolved label reached emission: " + in.Name}
		case ast.InstrCall:
			if err := encodeCall(&body, in, time, rank); err != nil {
				return nil, err
			}
		default:
			return nil, &diag.Error{Kind: diag.BackEnd, Pos: in.Pos, Msg: "structured instruction reached emission"}
		}
	}

	var out bytes.Buffer
	out.WriteString("ECLH")
	writeU32(&out, 16)
	out.Write(make([]byte, 8))
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

func opcodeOf(name string) (uint16, error) {
	const prefix = "ins_"
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return 0, &diag.Error{Kind: diag.BackEnd, Msg: "call instruction not resolved to ins_N form: " + name}
	}
	var n uint16
	for _, c := range name[len(prefix):] {
		if c < '0' || c > '9' {
			return 0, &diag.Error{Kind: diag.BackEnd, Msg: "malformed instruction name: " + name}
		}
		n = n*10 + uint16(c-'0')
	}
	return n, nil
}

// Size returns the exact byte count a Call instruction (or a zero-size
// Label/TimeLabel/RankLabel) will occupy once emitted, used by
// lang/compiler's pass 10 to resolve label offsets before a single byte
// has actually been written (spec.md §4.9: "must match the emitted byte
// count exactly").
func Size(in ast.Instr) (int, error) {
	switch in.Kind {
	case ast.InstrLabel, ast.InstrTimeLabel, ast.InstrRankLabel:
		return 0, nil
	case ast.InstrCall:
		n := 16
		for _, a := range in.Args {
			sz, err := argSize(a)
			if err != nil {
				return 0, err
			}
			n += sz
		}
		return n, nil
	default:
		return 0, &diag.Error{Kind: diag.BackEnd, Pos: in.Pos, Msg: "structured instruction has no wire size"}
	}
}

func argSize(a ast.Expr) (int, error) {
	switch a.Kind {
	case ast.ExprInt, ast.ExprFloat, ast.ExprVarInt, ast.ExprVarFloat:
		return 4, nil
	case ast.ExprId:
		// A label or subroutine reference not yet resolved to its final
		// integer offset/index (lang/compiler passes 10 and Program's
		// sub-ref pass); it always encodes as one 4-byte Int.
		return 4, nil
	case ast.ExprStr:
		return 4 + strFieldLen(a.StrVal), nil
	case ast.ExprVararg:
		return 8 * len(a.Items), nil
	default:
		return 0, &diag.Error{Kind: diag.BackEnd, Pos: a.Pos, Msg: "non-primitive argument reached wire sizing"}
	}
}

// strFieldLen is the padded byte length following the u32 total_len
// field: the string bytes, a NUL, then zero-padding to a multiple of 4,
// with the NUL counted before rounding (spec.md §9 open question 3).
func strFieldLen(s string) int {
	n := len(s) + 1
	if rem := n % 4; rem != 0 {
		n += 4 - rem
	}
	return n
}

func encodeCall(buf *bytes.Buffer, in ast.Instr, time uint32, rank uint8) error {
	opcode, err := opcodeOf(in.Name)
	if err != nil {
		return err
	}

	var argBuf bytes.Buffer
	var paramMask uint16
	var curStackRef uint32
	paramCount := 0
	for i, a := range in.Args {
		if err := encodeArg(&argBuf, a); err != nil {
			return err
		}
		switch a.Kind {
		case ast.ExprVarInt, ast.ExprVarFloat:
			paramMask |= 1 << uint(i)
			if a.Offset > -200 && a.Offset < 0 {
				curStackRef++
			}
			paramCount++
		case ast.ExprVararg:
			paramCount += len(a.Items)
		default:
			paramCount++
		}
	}

	size := 16 + argBuf.Len()
	writeU32(buf, time)
	writeU16(buf, opcode)
	writeU16(buf, uint16(size))
	writeU16(buf, paramMask)
	buf.WriteByte(rank)
	buf.WriteByte(byte(paramCount))
	writeU32(buf, curStackRef)
	buf.Write(argBuf.Bytes())
	return nil
}

func encodeArg(buf *bytes.Buffer, a ast.Expr) error {
	switch a.Kind {
	case ast.ExprInt:
		writeU32(buf, uint32(a.IntVal))
		return nil
	case ast.ExprVarInt, ast.ExprVarFloat:
		writeU32(buf, uint32(a.Offset))
		return nil
	case ast.ExprFloat:
		writeU32(buf, floatBits(a.FloatVal))
		return nil
	case ast.ExprStr:
		total := strFieldLen(a.StrVal)
		writeU32(buf, uint32(total))
		buf.WriteString(a.StrVal)
		buf.WriteByte(0)
		if rem := (len(a.StrVal) + 1) % 4; rem != 0 {
			buf.Write(make([]byte, 4-rem))
		}
		return nil
	case ast.ExprVararg:
		for _, it := range a.Items {
			if it.Type == ast.TypeFloat {
				buf.WriteString("ff\x00\x00")
				if it.Kind == ast.ExprVarFloat {
					writeU32(buf, uint32(it.Offset))
				} else {
					writeU32(buf, floatBits(it.FloatVal))
				}
				continue
			}
			buf.WriteString("ii\x00\x00")
			if it.Kind == ast.ExprVarInt {
				writeU32(buf, uint32(it.Offset))
			} else {
				writeU32(buf, uint32(it.IntVal))
			}
		}
		return nil
	default:
		return &diag.Error{Kind: diag.BackEnd, Pos: a.Pos, Msg: "non-primitive argument reached encoding"}
	}
}

func floatBits(f float32) uint32 { return math.Float32bits(f) }
