package catalog

// Defs is the static instruction catalog (spec.md §4.5, §4.4, extended per
// SPEC_FULL.md §4 with the additional opcodes original_source/src/
// ecl_instructions/instructions.rs enumerates beyond the core arithmetic
// set). Opcodes without a documented alias are only reachable by their
// literal "ins_N" name.
var Defs = []InsDef{
	{Opcode: 1, Aliases: []string{"delete"}},
	{Opcode: 10, Aliases: []string{"return"}},
	{Opcode: 11, Aliases: []string{"call"}, ArgFormat: []ArgKind{ArgInt, ArgVarargs}},
	{Opcode: 12, Aliases: []string{"jmp"}, ArgFormat: []ArgKind{ArgInt, ArgFloat}},
	{Opcode: 14, Aliases: []string{"jmpif"}, ArgFormat: []ArgKind{ArgInt, ArgFloat, ArgInt}},
	{Opcode: 15, Aliases: []string{"callAsync"}, ArgFormat: []ArgKind{ArgInt, ArgVarargs}},
	{Opcode: 16, Aliases: []string{"callAsyncDelay"}, ArgFormat: []ArgKind{ArgInt, ArgInt, ArgVarargs}},
	{Opcode: 23, Aliases: []string{"wait"}, ArgFormat: []ArgKind{ArgInt}},
	{Opcode: 24, Aliases: []string{"wait"}, ArgFormat: []ArgKind{ArgFloat}},
	{Opcode: 30, Aliases: []string{"printf"}, ArgFormat: []ArgKind{ArgStr, ArgVarargs}},
	{Opcode: 40, Aliases: []string{"stackAlloc"}, ArgFormat: []ArgKind{ArgInt}},
	{Opcode: 42, Aliases: []string{"ins_42"}, ArgFormat: []ArgKind{ArgInt}},
	{Opcode: 43, Aliases: []string{"ins_43"}, ArgFormat: []ArgKind{ArgFloat}},

	// assignment: `name = expr;` and `var name = expr;` both store a
	// computed value into an already-allocated stack slot. Neither
	// spec.md §4.5 nor original_source's own instruction table names
	// these explicitly; 44/45 are the free slots next to push-int/
	// push-float (42/43) this repo assigns them to (see DESIGN.md).
	{Opcode: 44, Aliases: []string{"seti"}, ArgFormat: []ArgKind{ArgIntRef, ArgInt}},
	{Opcode: 45, Aliases: []string{"setf"}, ArgFormat: []ArgKind{ArgFloatRef, ArgFloat}},

	// int/float variant pairs: + - * / (50-57), then the standalone % at 58,
	// then == != < <= > >= (59-70) — see lang/expr.opcodeFor's doc comment
	// for why % breaks the pairing sequence (spec.md §4.4).
	{Opcode: 50, Aliases: []string{"ins_50"}, ArgFormat: []ArgKind{ArgInt, ArgInt}},
	{Opcode: 51, Aliases: []string{"ins_51"}, ArgFormat: []ArgKind{ArgFloat, ArgFloat}},
	{Opcode: 52, Aliases: []string{"ins_52"}, ArgFormat: []ArgKind{ArgInt, ArgInt}},
	{Opcode: 53, Aliases: []string{"ins_53"}, ArgFormat: []ArgKind{ArgFloat, ArgFloat}},
	{Opcode: 54, Aliases: []string{"ins_54"}, ArgFormat: []ArgKind{ArgInt, ArgInt}},
	{Opcode: 55, Aliases: []string{"ins_55"}, ArgFormat: []ArgKind{ArgFloat, ArgFloat}},
	{Opcode: 56, Aliases: []string{"ins_56"}, ArgFormat: []ArgKind{ArgInt, ArgInt}},
	{Opcode: 57, Aliases: []string{"ins_57"}, ArgFormat: []ArgKind{ArgFloat, ArgFloat}},
	{Opcode: 58, Aliases: []string{"ins_58"}, ArgFormat: []ArgKind{ArgInt, ArgInt}}, // %
	{Opcode: 59, Aliases: []string{"ins_59"}, ArgFormat: []ArgKind{ArgInt, ArgInt}},
	{Opcode: 60, Aliases: []string{"ins_60"}, ArgFormat: []ArgKind{ArgFloat, ArgFloat}},
	{Opcode: 61, Aliases: []string{"ins_61"}, ArgFormat: []ArgKind{ArgInt, ArgInt}},
	{Opcode: 62, Aliases: []string{"ins_62"}, ArgFormat: []ArgKind{ArgFloat, ArgFloat}},
	{Opcode: 63, Aliases: []string{"ins_63"}, ArgFormat: []ArgKind{ArgInt, ArgInt}},
	{Opcode: 64, Aliases: []string{"ins_64"}, ArgFormat: []ArgKind{ArgFloat, ArgFloat}},
	{Opcode: 65, Aliases: []string{"ins_65"}, ArgFormat: []ArgKind{ArgInt, ArgInt}},
	{Opcode: 66, Aliases: []string{"ins_66"}, ArgFormat: []ArgKind{ArgFloat, ArgFloat}},
	{Opcode: 67, Aliases: []string{"ins_67"}, ArgFormat: []ArgKind{ArgInt, ArgInt}},
	{Opcode: 68, Aliases: []string{"ins_68"}, ArgFormat: []ArgKind{ArgFloat, ArgFloat}},
	{Opcode: 69, Aliases: []string{"ins_69"}, ArgFormat: []ArgKind{ArgInt, ArgInt}},
	{Opcode: 70, Aliases: []string{"ins_70"}, ArgFormat: []ArgKind{ArgFloat, ArgFloat}},

	{Opcode: 71, Aliases: []string{"ins_71"}, ArgFormat: []ArgKind{ArgInt}}, // !
	{Opcode: 72, Aliases: []string{"ins_72"}, ArgFormat: []ArgKind{ArgInt}},
	{Opcode: 73, Aliases: []string{"ins_73"}, ArgFormat: []ArgKind{ArgInt, ArgInt}}, // ||
	{Opcode: 74, Aliases: []string{"ins_74"}, ArgFormat: []ArgKind{ArgInt, ArgInt}}, // &&
	{Opcode: 75, Aliases: []string{"ins_75"}, ArgFormat: []ArgKind{ArgInt, ArgInt}}, // ^
	{Opcode: 76, Aliases: []string{"ins_76"}, ArgFormat: []ArgKind{ArgInt, ArgInt}}, // |
	{Opcode: 77, Aliases: []string{"ins_77"}, ArgFormat: []ArgKind{ArgInt, ArgInt}}, // &

	{Opcode: 79, Aliases: []string{"ins_79"}, ArgFormat: []ArgKind{ArgFloat}}, // sin
	{Opcode: 80, Aliases: []string{"ins_80"}, ArgFormat: []ArgKind{ArgFloat}}, // cos
	{Opcode: 81, Aliases: []string{"ins_81"}, ArgFormat: []ArgKind{ArgFloat}},
	{Opcode: 82, Aliases: []string{"ins_82"}, ArgFormat: []ArgKind{ArgFloat}},
	{Opcode: 83, Aliases: []string{"ins_83"}, ArgFormat: []ArgKind{ArgInt}}, // unary - (int)
	{Opcode: 84, Aliases: []string{"ins_84"}, ArgFormat: []ArgKind{ArgFloat}}, // unary - (float)
	{Opcode: 88, Aliases: []string{"ins_88"}, ArgFormat: []ArgKind{ArgFloat}}, // sqrt
}
