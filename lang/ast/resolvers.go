package ast

import (
	"fmt"

	"github.com/ecl-lang/eclc/lang/astdef"
	"github.com/ecl-lang/eclc/lang/diag"
)

// NewRegistry builds the full astdef.Registry this package contributes:
// one resolver per AST kind (Ecl, Sub, Param, Instr, Expr, InstrSub, Else,
// List, TimeLabel, RankLabel, Goto, If, Loop, While, DoWhile, NewVarInt,
// NewVarFloat, SubCall, Break, Continue, Return, Delete, Label, NoInit).
// There is no VarExpr resolver: a variable reference resolves as an
// Expr::Id and is only turned into a VarInt/VarFloat by lang/scope. Each validates its arguments' shape and arity,
// returning a Grammar error (spec.md §4.3) on mismatch rather than
// panicking, since a malformed AstDef string is a grammar-file authoring
// bug, not a defensive "can't happen".
func NewRegistry() *astdef.Registry {
	r := astdef.NewRegistry()
	r.Register("Ecl::New", resolveEcl)
	r.Register("Sub::New", resolveSub)
	r.Register("Param::Int", paramResolver(ParamInt))
	r.Register("Param::Float", paramResolver(ParamFloat))
	r.Register("Instr::Call", resolveInstrCall)
	r.Register("Instr::Bloc", resolveInstrBloc)
	r.Register("Instr::Affect", resolveInstrAffect)
	r.Register("InstrSub::Single", resolveInstrSubSingle)
	r.Register("InstrSub::List", resolveInstrSubList)
	r.Register("List::Empty", resolveListEmpty)
	r.Register("List::Cons", resolveListCons)
	r.Register("Else::None", resolveElseNone)
	r.Register("Else::Some", resolveElseSome)
	r.Register("TimeLabel::Set", timeLabelResolver(TimeSet))
	r.Register("TimeLabel::Add", timeLabelResolver(TimeAdd))
	r.Register("TimeLabel::Sub", timeLabelResolver(TimeSub))
	r.Register("RankLabel::New", resolveRankLabel)
	r.Register("Goto::New", resolveGoto)
	r.Register("If::New", resolveIf)
	r.Register("Loop::New", resolveLoop)
	r.Register("While::New", resolveWhile)
	r.Register("DoWhile::New", resolveDoWhile)
	r.Register("NewVarInt::New", resolveNewVarInt)
	r.Register("NewVarFloat::New", resolveNewVarFloat)
	r.Register("SubCall::Sync", subCallResolver(SubCallSync))
	r.Register("SubCall::Async", subCallResolver(SubCallAsync))
	r.Register("SubCall::AsyncDelay", subCallResolver(SubCallAsyncDelay))
	r.Register("Break::New", resolveBreak)
	r.Register("Continue::New", resolveContinue)
	r.Register("Return::New", resolveReturn)
	r.Register("Delete::New", resolveDelete)
	r.Register("Label::New", resolveLabel)
	r.Register("NoInit::New", resolveNoInit)
	r.Register("Expr::Id", resolveExprId)
	r.Register("Expr::Int", resolveExprInt)
	r.Register("Expr::Float", resolveExprFloat)
	r.Register("Expr::Str", resolveExprStr)
	r.Register("Expr::Vararg", resolveExprVararg)
	for _, op := range []struct {
		name string
		kind ExprKind
	}{
		{"Add", ExprAdd}, {"Sub", ExprSub}, {"Mul", ExprMul}, {"Div", ExprDiv}, {"Mod", ExprMod},
		{"Gt", ExprGt}, {"Ge", ExprGe}, {"Lt", ExprLt}, {"Le", ExprLe}, {"Eq", ExprEq}, {"Ne", ExprNe},
		{"BinAnd", ExprBinAnd}, {"BinOr", ExprBinOr}, {"Xor", ExprXor}, {"Or", ExprOr}, {"And", ExprAnd},
	} {
		r.Register("Expr::Binary::"+op.name, binaryExprResolver(op.kind))
	}
	for _, op := range []struct {
		name string
		kind ExprKind
	}{
		{"Uminus", ExprUminus}, {"Not", ExprNot}, {"Sin", ExprSin}, {"Cos", ExprCos}, {"Sqrt", ExprSqrt},
	} {
		r.Register("Expr::Unary::"+op.name, unaryExprResolver(op.kind))
	}
	return r
}

func grammarErr(format string, args ...any) error {
	return &diag.Error{Kind: diag.Grammar, Msg: fmt.Sprintf(format, args...)}
}

func asNode[T any](args []astdef.Node, i int, name string) (T, error) {
	var zero T
	if i >= len(args) {
		return zero, grammarErr("%s: missing argument %d", name, i)
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, grammarErr("%s: argument %d has unexpected type %T", name, i, args[i])
	}
	return v, nil
}

func resolveEcl(args []astdef.Node) (astdef.Node, error) {
	if len(args) != 3 {
		return nil, grammarErr("Ecl::New: expected 3 arguments, got %d", len(args))
	}
	ecli, err := stringList(args[0], "Ecl::New ecli")
	if err != nil {
		return nil, err
	}
	anmi, err := stringList(args[1], "Ecl::New anmi")
	if err != nil {
		return nil, err
	}
	subList, err := asNode[astdef.List](args, 2, "Ecl::New subs")
	if err != nil {
		return nil, err
	}
	subs := make([]*Sub, 0, len(subList))
	for _, n := range subList {
		s, ok := n.(*Sub)
		if !ok {
			return nil, grammarErr("Ecl::New: expected a Sub in sub list, got %T", n)
		}
		subs = append(subs, s)
	}
	return &Program{Ecli: ecli, Anmi: anmi, Subs: subs}, nil
}

func stringList(n astdef.Node, ctx string) ([]string, error) {
	list, ok := n.(astdef.List)
	if !ok {
		return nil, grammarErr("%s: expected a List, got %T", ctx, n)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		tn, ok := item.(astdef.TokenNode)
		if !ok {
			return nil, grammarErr("%s: expected a token, got %T", ctx, item)
		}
		out = append(out, unescapeString(tn.Tok.Text))
	}
	return out, nil
}

func resolveSub(args []astdef.Node) (astdef.Node, error) {
	if len(args) != 3 {
		return nil, grammarErr("Sub::New: expected 3 arguments, got %d", len(args))
	}
	nameTok, err := asNode[astdef.TokenNode](args, 0, "Sub::New name")
	if err != nil {
		return nil, err
	}
	paramList, err := asNode[astdef.List](args, 1, "Sub::New params")
	if err != nil {
		return nil, err
	}
	params := make([]Param, 0, len(paramList))
	for _, n := range paramList {
		p, ok := n.(Param)
		if !ok {
			return nil, grammarErr("Sub::New: expected a Param, got %T", n)
		}
		params = append(params, p)
	}
	body, err := instrList(args[2], "Sub::New body")
	if err != nil {
		return nil, err
	}
	return &Sub{Name: nameTok.Tok.Text, Params: params, Instructions: body, Pos: nameTok.Tok.Pos}, nil
}

func instrList(n astdef.Node, ctx string) ([]Instr, error) {
	list, ok := n.(astdef.List)
	if !ok {
		return nil, grammarErr("%s: expected a List, got %T", ctx, n)
	}
	out := make([]Instr, 0, len(list))
	for _, item := range list {
		in, ok := item.(Instr)
		if !ok {
			return nil, grammarErr("%s: expected an Instr, got %T", ctx, item)
		}
		out = append(out, in)
	}
	return out, nil
}

func paramResolver(kind ParamKind) astdef.Resolver {
	return func(args []astdef.Node) (astdef.Node, error) {
		tok, err := asNode[astdef.TokenNode](args, 0, "Param")
		if err != nil {
			return nil, err
		}
		return Param{Name: tok.Tok.Text, Kind: kind, Pos: tok.Tok.Pos}, nil
	}
}

func resolveInstrCall(args []astdef.Node) (astdef.Node, error) {
	nameTok, err := asNode[astdef.TokenNode](args, 0, "Instr::Call name")
	if err != nil {
		return nil, err
	}
	var exprs []Expr
	if len(args) > 1 {
		list, err := asNode[astdef.List](args, 1, "Instr::Call args")
		if err != nil {
			return nil, err
		}
		for _, n := range list {
			e, ok := n.(Expr)
			if !ok {
				return nil, grammarErr("Instr::Call: expected an Expr argument, got %T", n)
			}
			exprs = append(exprs, e)
		}
	}
	return Instr{Kind: InstrCall, Name: nameTok.Tok.Text, Args: exprs, Pos: nameTok.Tok.Pos}, nil
}

func resolveInstrBloc(args []astdef.Node) (astdef.Node, error) {
	body, err := instrList(argOrEmptyList(args, 0), "Instr::Bloc")
	if err != nil {
		return nil, err
	}
	return Instr{Kind: InstrBloc, Body: body}, nil
}

func argOrEmptyList(args []astdef.Node, i int) astdef.Node {
	if i < len(args) {
		return args[i]
	}
	return astdef.List(nil)
}

func resolveInstrAffect(args []astdef.Node) (astdef.Node, error) {
	nameTok, err := asNode[astdef.TokenNode](args, 0, "Instr::Affect name")
	if err != nil {
		return nil, err
	}
	e, err := asNode[Expr](args, 1, "Instr::Affect expr")
	if err != nil {
		return nil, err
	}
	return Instr{Kind: InstrAffect, Name: nameTok.Tok.Text, Expr: e, Pos: nameTok.Tok.Pos}, nil
}

// resolveInstrSubSingle/List implement the grammar's left-recursion-
// elimination helper for an instruction list: "InstrSub ::= Instr InstrSub
// | epsilon", each alternative wrapped so the outer Sub::New sees one
// flat astdef.List.
func resolveInstrSubSingle(args []astdef.Node) (astdef.Node, error) {
	in, err := asNode[Instr](args, 0, "InstrSub::Single")
	if err != nil {
		return nil, err
	}
	rest, err := instrList(argOrEmptyList(args, 1), "InstrSub::Single tail")
	if err != nil {
		return nil, err
	}
	out := make([]Instr, 0, len(rest)+1)
	out = append(out, in)
	out = append(out, rest...)
	return wrapInstrList(out), nil
}

func resolveInstrSubList(args []astdef.Node) (astdef.Node, error) {
	return wrapInstrList(nil), nil
}

func wrapInstrList(in []Instr) astdef.List {
	out := make(astdef.List, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func resolveListEmpty(args []astdef.Node) (astdef.Node, error) { return astdef.List(nil), nil }

func resolveListCons(args []astdef.Node) (astdef.Node, error) {
	if len(args) < 1 {
		return nil, grammarErr("List::Cons: expected at least 1 argument")
	}
	head := args[0]
	var tail astdef.List
	if len(args) > 1 {
		t, ok := args[1].(astdef.List)
		if !ok {
			return nil, grammarErr("List::Cons: expected a List tail, got %T", args[1])
		}
		tail = t
	}
	out := make(astdef.List, 0, len(tail)+1)
	out = append(out, head)
	out = append(out, tail...)
	return out, nil
}

func resolveElseNone(args []astdef.Node) (astdef.Node, error) {
	return astdef.Data{Tag: "Else::None"}, nil
}

func resolveElseSome(args []astdef.Node) (astdef.Node, error) {
	body, err := instrList(argOrEmptyList(args, 0), "Else::Some")
	if err != nil {
		return nil, err
	}
	return astdef.Data{Tag: "Else::Some", Children: []astdef.Node{wrapInstrList(body)}}, nil
}

// timeLabelResolver builds one of the three TimeLabel::{Set,Add,Sub}
// resolvers: the grammar routes "N:", "N+:" and "N-:" to a distinct
// production each (spec.md §6.1), so the operator is known statically from
// which rule matched rather than from a synthesized token.
func timeLabelResolver(op TimeLabelOp) astdef.Resolver {
	return func(args []astdef.Node) (astdef.Node, error) {
		valTok, err := asNode[astdef.TokenNode](args, 0, "TimeLabel value")
		if err != nil {
			return nil, err
		}
		n, err := parseInt32(valTok.Tok.Text)
		if err != nil {
			return nil, grammarErr("TimeLabel: invalid integer %q", valTok.Tok.Text)
		}
		return Instr{Kind: InstrTimeLabel, TimeOp: op, TimeVal: n, Pos: valTok.Tok.Pos}, nil
	}
}

func resolveRankLabel(args []astdef.Node) (astdef.Node, error) {
	tok, err := asNode[astdef.TokenNode](args, 0, "RankLabel::New")
	if err != nil {
		return nil, err
	}
	mask, err := parseRankMask(tok.Tok.Text)
	if err != nil {
		return nil, err
	}
	return Instr{Kind: InstrRankLabel, RankMask: mask, Pos: tok.Tok.Pos}, nil
}

func resolveGoto(args []astdef.Node) (astdef.Node, error) {
	nameTok, err := asNode[astdef.TokenNode](args, 0, "Goto::New label")
	if err != nil {
		return nil, err
	}
	timeExpr, err := asNode[Expr](args, 1, "Goto::New time")
	if err != nil {
		return nil, err
	}
	return Instr{Kind: InstrGoto, Name: nameTok.Tok.Text, GotoTime: timeExpr, Pos: nameTok.Tok.Pos}, nil
}

func resolveIf(args []astdef.Node) (astdef.Node, error) {
	cond, err := asNode[Expr](args, 0, "If::New cond")
	if err != nil {
		return nil, err
	}
	then, err := instrList(argOrEmptyList(args, 1), "If::New then")
	if err != nil {
		return nil, err
	}
	var elseBody []Instr
	if len(args) > 2 {
		elseData, ok := args[2].(astdef.Data)
		if !ok {
			return nil, grammarErr("If::New: expected an Else node, got %T", args[2])
		}
		if elseData.Tag == "Else::Some" {
			elseBody, err = instrList(elseData.Children[0], "If::New else")
			if err != nil {
				return nil, err
			}
		}
	}
	return Instr{Kind: InstrIf, Cond: cond, Body: then, Else: elseBody}, nil
}

func resolveLoop(args []astdef.Node) (astdef.Node, error) {
	body, err := instrList(argOrEmptyList(args, 0), "Loop::New")
	if err != nil {
		return nil, err
	}
	return Instr{Kind: InstrLoop, Body: body}, nil
}

func resolveWhile(args []astdef.Node) (astdef.Node, error) {
	cond, err := asNode[Expr](args, 0, "While::New cond")
	if err != nil {
		return nil, err
	}
	body, err := instrList(argOrEmptyList(args, 1), "While::New body")
	if err != nil {
		return nil, err
	}
	return Instr{Kind: InstrWhile, Cond: cond, Body: body}, nil
}

func resolveDoWhile(args []astdef.Node) (astdef.Node, error) {
	body, err := instrList(argOrEmptyList(args, 0), "DoWhile::New body")
	if err != nil {
		return nil, err
	}
	cond, err := asNode[Expr](args, 1, "DoWhile::New cond")
	if err != nil {
		return nil, err
	}
	return Instr{Kind: InstrDoWhile, Cond: cond, Body: body}, nil
}

func resolveNewVarInt(args []astdef.Node) (astdef.Node, error) {
	return newVar(args, ParamInt)
}

func resolveNewVarFloat(args []astdef.Node) (astdef.Node, error) {
	return newVar(args, ParamFloat)
}

func newVar(args []astdef.Node, kind ParamKind) (astdef.Node, error) {
	nameTok, err := asNode[astdef.TokenNode](args, 0, "NewVar name")
	if err != nil {
		return nil, err
	}
	k := InstrVarInt
	if kind == ParamFloat {
		k = InstrVarFloat
	}
	in := Instr{Kind: k, Name: nameTok.Tok.Text, Pos: nameTok.Tok.Pos}
	if len(args) > 1 {
		if e, ok := args[1].(Expr); ok {
			in.Expr = e
			in.HasInit = true
		}
	}
	return in, nil
}

// resolveNoInit backs the grammar's VarInit epsilon alternative: a var
// declaration with no "= expr" tail resolves to this sentinel instead of an
// Expr, so newVar's type assertion above simply skips setting HasInit.
func resolveNoInit(args []astdef.Node) (astdef.Node, error) {
	return astdef.Data{Tag: "NoInit"}, nil
}

// resolveLabel backs a user-written "name:" statement label, the explicit
// surface syntax for a goto target (spec.md §6, desugar-synthesized labels
// reuse the same InstrLabel shape).
func resolveLabel(args []astdef.Node) (astdef.Node, error) {
	nameTok, err := asNode[astdef.TokenNode](args, 0, "Label name")
	if err != nil {
		return nil, err
	}
	return Instr{Kind: InstrLabel, Name: nameTok.Tok.Text, Pos: nameTok.Tok.Pos}, nil
}

func subCallResolver(mode SubCallMode) astdef.Resolver {
	return func(args []astdef.Node) (astdef.Node, error) {
		nameTok, err := asNode[astdef.TokenNode](args, 0, "SubCall name")
		if err != nil {
			return nil, err
		}
		var exprs []Expr
		argsIdx := 1
		var delay Expr
		if mode == SubCallAsyncDelay {
			d, err := asNode[Expr](args, 1, "SubCall delay")
			if err != nil {
				return nil, err
			}
			delay = d
			argsIdx = 2
		}
		if len(args) > argsIdx {
			list, err := asNode[astdef.List](args, argsIdx, "SubCall args")
			if err != nil {
				return nil, err
			}
			for _, n := range list {
				e, ok := n.(Expr)
				if !ok {
					return nil, grammarErr("SubCall: expected an Expr argument, got %T", n)
				}
				exprs = append(exprs, e)
			}
		}
		return Instr{Kind: InstrSubCall, SubName: nameTok.Tok.Text, Mode: mode, Delay: delay, Args: exprs, Pos: nameTok.Tok.Pos}, nil
	}
}

func resolveBreak(args []astdef.Node) (astdef.Node, error)    { return Instr{Kind: InstrBreak}, nil }
func resolveContinue(args []astdef.Node) (astdef.Node, error) { return Instr{Kind: InstrContinue}, nil }
func resolveReturn(args []astdef.Node) (astdef.Node, error)   { return Instr{Kind: InstrReturn}, nil }
func resolveDelete(args []astdef.Node) (astdef.Node, error)   { return Instr{Kind: InstrDelete}, nil }

func resolveExprId(args []astdef.Node) (astdef.Node, error) {
	tok, err := asNode[astdef.TokenNode](args, 0, "Expr::Id")
	if err != nil {
		return nil, err
	}
	return Expr{Kind: ExprId, Name: tok.Tok.Text, Pos: tok.Tok.Pos}, nil
}

func resolveExprInt(args []astdef.Node) (astdef.Node, error) {
	tok, err := asNode[astdef.TokenNode](args, 0, "Expr::Int")
	if err != nil {
		return nil, err
	}
	n, err := parseInt32(tok.Tok.Text)
	if err != nil {
		return nil, grammarErr("Expr::Int: invalid integer literal %q", tok.Tok.Text)
	}
	return Expr{Kind: ExprInt, IntVal: n, Type: TypeInt, Pos: tok.Tok.Pos}, nil
}

func resolveExprFloat(args []astdef.Node) (astdef.Node, error) {
	tok, err := asNode[astdef.TokenNode](args, 0, "Expr::Float")
	if err != nil {
		return nil, err
	}
	f, err := parseFloat32(tok.Tok.Text)
	if err != nil {
		return nil, grammarErr("Expr::Float: invalid float literal %q", tok.Tok.Text)
	}
	return Expr{Kind: ExprFloat, FloatVal: f, Type: TypeFloat, Pos: tok.Tok.Pos}, nil
}

func resolveExprStr(args []astdef.Node) (astdef.Node, error) {
	tok, err := asNode[astdef.TokenNode](args, 0, "Expr::Str")
	if err != nil {
		return nil, err
	}
	return Expr{Kind: ExprStr, StrVal: unescapeString(tok.Tok.Text), Type: TypeString, Pos: tok.Tok.Pos}, nil
}

func resolveExprVararg(args []astdef.Node) (astdef.Node, error) {
	list, err := asNode[astdef.List](args, 0, "Expr::Vararg")
	if err != nil {
		return nil, err
	}
	items := make([]Expr, 0, len(list))
	for _, n := range list {
		e, ok := n.(Expr)
		if !ok {
			return nil, grammarErr("Expr::Vararg: expected an Expr item, got %T", n)
		}
		items = append(items, e)
	}
	return Expr{Kind: ExprVararg, Items: items, Type: TypeVararg}, nil
}

func binaryExprResolver(kind ExprKind) astdef.Resolver {
	return func(args []astdef.Node) (astdef.Node, error) {
		l, err := asNode[Expr](args, 0, "Expr::Binary left")
		if err != nil {
			return nil, err
		}
		rhs, err := asNode[Expr](args, 1, "Expr::Binary right")
		if err != nil {
			return nil, err
		}
		return Expr{Kind: kind, Left: &l, Right: &rhs, Pos: l.Pos.Merge(rhs.Pos)}, nil
	}
}

func unaryExprResolver(kind ExprKind) astdef.Resolver {
	return func(args []astdef.Node) (astdef.Node, error) {
		o, err := asNode[Expr](args, 0, "Expr::Unary operand")
		if err != nil {
			return nil, err
		}
		return Expr{Kind: kind, Operand: &o, Pos: o.Pos}, nil
	}
}

func parseInt32(s string) (int32, error) {
	var n int64
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a number")
		}
		n = n*10 + int64(c-'0')
	}
	if neg {
		n = -n
	}
	return int32(n), nil
}

func parseFloat32(s string) (float32, error) {
	var whole, frac int64
	var fracDigits int
	neg := false
	i := 0
	if i < len(s) && s[i] == '-' {
		neg = true
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		whole = whole*10 + int64(s[i]-'0')
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			frac = frac*10 + int64(s[i]-'0')
			fracDigits++
			i++
		}
	}
	v := float64(whole)
	if fracDigits > 0 {
		div := 1.0
		for k := 0; k < fracDigits; k++ {
			div *= 10
		}
		v += float64(frac) / div
	}
	if neg {
		v = -v
	}
	return float32(v), nil
}

// unescapeString strips a STRING token's surrounding quotes and decodes
// its C-style escapes (spec.md §6.1: "\n \t \" \'").
func unescapeString(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"':
				out = append(out, '"')
			case '\'':
				out = append(out, '\'')
			default:
				out = append(out, s[i+1])
			}
			i++
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

// parseRankMask implements the "!...:" rank label syntax (spec.md §6.1):
// characters e n h l x o set bits 0..5; "192" is the base value; "all"
// sets every bit (0xFF).
func parseRankMask(s string) (uint8, error) {
	if s == "all" {
		return 0xFF, nil
	}
	var mask uint8 = 192
	for _, c := range s {
		bit := -1
		switch c {
		case 'e':
			bit = 0
		case 'n':
			bit = 1
		case 'h':
			bit = 2
		case 'l':
			bit = 3
		case 'x':
			bit = 4
		case 'o':
			bit = 5
		default:
			return 0, grammarErr("RankLabel::New: unrecognized rank character %q", c)
		}
		mask |= 1 << uint(bit)
	}
	return mask, nil
}
