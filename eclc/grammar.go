package eclc

// grammarSource is the bundled grammar file for the ECL source language
// (spec.md §6.1, §6.4). It follows the directive/rule syntax lang/grammar
// parses, with IDENT declared ahead of every keyword so the lexer's
// longest-match-wins / later-rule-wins-ties semantics (lang/lexer) let an
// exact keyword match beat the identifier rule, while a longer identifier
// that merely starts with a keyword (e.g. "ifcount") still loses the tie
// to IDENT because the keyword's trailing \b fails to match.
//
// The statement and expression grammars are left-factored by hand into
// LL(1) form: every place two surface forms share a leading token (an
// identifier-led call vs. assignment vs. label, or the three `@name(...)`
// subroutine-call spellings, or the classic left-recursive operator-
// precedence chain) is rewritten as a tail nonterminal whose alternatives
// start with distinct terminals, threading the already-consumed prefix
// down via `$paramN`/`.derive(...)`.
const grammarSource = `
!token STRING => "(?:[^"\\]|\\.)*"
!token FLOAT => [0-9]+\.[0-9]*f?|\.[0-9]+f?
!token INT => [0-9]+
!token IDENT => [a-zA-Z_][a-zA-Z0-9_]*

!token K_ECLI => ecli\b
!token K_ANMI => anmi\b
!token K_SUB => sub\b
!token K_INT => int\b
!token K_FLOAT => float\b
!token K_LOOP => loop\b
!token K_WHILE => while\b
!token K_DO => do\b
!token K_IF => if\b
!token K_ELSE => else\b
!token K_BREAK => break\b
!token K_CONTINUE => continue\b
!token K_RETURN => return\b
!token K_DELETE => delete\b
!token K_GOTO => goto\b
!token K_ASYNC => async\b
!token K_SIN => sin\b
!token K_COS => cos\b
!token K_SQRT => sqrt\b

!token LBRACE => \{
!token RBRACE => \}
!token LPAREN => \(
!token RPAREN => \)
!token LBRACKET => \[
!token RBRACKET => \]
!token COMMA => ,
!token SEMI => ;
!token COLON => :
!token AT => @
!token ASSIGN => =
!token PLUS => \+
!token MINUS => -
!token STAR => \*
!token SLASH => /
!token PERCENT => %
!token EQEQ => ==
!token NE => !=
!token LE => <=
!token GE => >=
!token LT => <
!token GT => >
!token ANDAND => &&
!token OROR => \|\|
!token AMP => &
!token PIPE => \|
!token CARET => \^
!token BANG => !

!ignore [ \t\r\n]+
!ignore //[^\n]*
!ignore /\*(?:[^*]|\*[^/])*\*/

Program ::= EcliOpt AnmiOpt SubList { Ecl::New($0,$1,$2) }

EcliOpt ::= K_ECLI LBRACE StrList RBRACE { $2 } | epsilon { List::Empty() }
AnmiOpt ::= K_ANMI LBRACE StrList RBRACE { $2 } | epsilon { List::Empty() }

StrList ::= STRING StrListTail { List::Cons($0,$1) } | epsilon { List::Empty() }
StrListTail ::= COMMA STRING StrListTail { List::Cons($1,$2) } | epsilon { List::Empty() }

SubList ::= Sub SubList { List::Cons($0,$1) } | epsilon { List::Empty() }

Sub ::= K_SUB IDENT LPAREN ParamList RPAREN LBRACE InstrSub RBRACE { Sub::New($1,$3,$6) }

ParamList ::= Param ParamListTail { List::Cons($0,$1) } | epsilon { List::Empty() }
ParamListTail ::= COMMA Param ParamListTail { List::Cons($1,$2) } | epsilon { List::Empty() }
Param ::= K_INT IDENT { Param::Int($1) } | K_FLOAT IDENT { Param::Float($1) }

InstrSub ::= Instr InstrSub { InstrSub::Single($0,$1) } | epsilon { InstrSub::List() }

Instr ::= K_LOOP LBRACE InstrSub RBRACE { Loop::New($2) }
        | K_WHILE LPAREN Expr RPAREN LBRACE InstrSub RBRACE { While::New($2,$5) }
        | K_DO LBRACE InstrSub RBRACE K_WHILE LPAREN Expr RPAREN SEMI { DoWhile::New($2,$6) }
        | K_IF LPAREN Expr RPAREN LBRACE InstrSub RBRACE ElseOpt { If::New($2,$5,$7) }
        | K_BREAK SEMI { Break::New() }
        | K_CONTINUE SEMI { Continue::New() }
        | K_RETURN SEMI { Return::New() }
        | K_DELETE SEMI { Delete::New() }
        | K_GOTO IDENT AT Expr SEMI { Goto::New($1,$3) }
        | K_INT IDENT VarInit SEMI { NewVarInt::New($1,$2) }
        | K_FLOAT IDENT VarInit SEMI { NewVarFloat::New($1,$2) }
        | LBRACE InstrSub RBRACE { Instr::Bloc($1) }
        | IDENT IdentTail { $1.derive($0) }
        | AT IDENT AsyncTail { $2.derive($1) }
        | INT TimeLabelTail { $1.derive($0) }
        | BANG IDENT COLON { RankLabel::New($1) }

ElseOpt ::= K_ELSE LBRACE InstrSub RBRACE { Else::Some($2) } | epsilon { Else::None() }

VarInit ::= ASSIGN Expr { $1 } | epsilon { NoInit::New() }

IdentTail ::= LPAREN ArgList RPAREN SEMI { Instr::Call($param0,$1) }
            | ASSIGN Expr SEMI { Instr::Affect($param0,$1) }
            | COLON { Label::New($param0) }

AsyncTail ::= LPAREN ArgList RPAREN SEMI { SubCall::Sync($param0,$1) }
            | AT K_ASYNC AsyncTail2 { $2.derive($param0) }
AsyncTail2 ::= LPAREN ArgList RPAREN SEMI { SubCall::Async($param0,$1) }
             | INT LPAREN ArgList RPAREN SEMI { SubCall::AsyncDelay($param0,Expr::Int($0),$2) }

TimeLabelTail ::= COLON { TimeLabel::Set($param0) }
                | PLUS COLON { TimeLabel::Add($param0) }
                | MINUS COLON { TimeLabel::Sub($param0) }

ArgList ::= Expr ArgListTail { List::Cons($0,$1) } | epsilon { List::Empty() }
ArgListTail ::= COMMA Expr ArgListTail { List::Cons($1,$2) } | epsilon { List::Empty() }

Expr ::= OrExpr { $0 }

OrExpr ::= AndExpr OrTail { $1.derive($0) }
OrTail ::= OROR AndExpr OrTail { $2.derive(Expr::Binary::Or($param0,$1)) } | epsilon { $param0 }

AndExpr ::= BitOrExpr AndTail { $1.derive($0) }
AndTail ::= ANDAND BitOrExpr AndTail { $2.derive(Expr::Binary::And($param0,$1)) } | epsilon { $param0 }

BitOrExpr ::= XorExpr BitOrTail { $1.derive($0) }
BitOrTail ::= PIPE XorExpr BitOrTail { $2.derive(Expr::Binary::BinOr($param0,$1)) } | epsilon { $param0 }

XorExpr ::= BitAndExpr XorTail { $1.derive($0) }
XorTail ::= CARET BitAndExpr XorTail { $2.derive(Expr::Binary::Xor($param0,$1)) } | epsilon { $param0 }

BitAndExpr ::= EqExpr BitAndTail { $1.derive($0) }
BitAndTail ::= AMP EqExpr BitAndTail { $2.derive(Expr::Binary::BinAnd($param0,$1)) } | epsilon { $param0 }

EqExpr ::= RelExpr EqTail { $1.derive($0) }
EqTail ::= EQEQ RelExpr EqTail { $2.derive(Expr::Binary::Eq($param0,$1)) }
         | NE RelExpr EqTail { $2.derive(Expr::Binary::Ne($param0,$1)) }
         | epsilon { $param0 }

RelExpr ::= AddExpr RelTail { $1.derive($0) }
RelTail ::= LT AddExpr RelTail { $2.derive(Expr::Binary::Lt($param0,$1)) }
          | LE AddExpr RelTail { $2.derive(Expr::Binary::Le($param0,$1)) }
          | GT AddExpr RelTail { $2.derive(Expr::Binary::Gt($param0,$1)) }
          | GE AddExpr RelTail { $2.derive(Expr::Binary::Ge($param0,$1)) }
          | epsilon { $param0 }

AddExpr ::= MulExpr AddTail { $1.derive($0) }
AddTail ::= PLUS MulExpr AddTail { $2.derive(Expr::Binary::Add($param0,$1)) }
          | MINUS MulExpr AddTail { $2.derive(Expr::Binary::Sub($param0,$1)) }
          | epsilon { $param0 }

MulExpr ::= Unary MulTail { $1.derive($0) }
MulTail ::= STAR Unary MulTail { $2.derive(Expr::Binary::Mul($param0,$1)) }
          | SLASH Unary MulTail { $2.derive(Expr::Binary::Div($param0,$1)) }
          | PERCENT Unary MulTail { $2.derive(Expr::Binary::Mod($param0,$1)) }
          | epsilon { $param0 }

Unary ::= MINUS Unary { Expr::Unary::Uminus($1) }
        | BANG Unary { Expr::Unary::Not($1) }
        | Primary { $0 }

Primary ::= INT { Expr::Int($0) }
          | FLOAT { Expr::Float($0) }
          | STRING { Expr::Str($0) }
          | IDENT { Expr::Id($0) }
          | LBRACKET IDENT RBRACKET { Expr::Id($1) }
          | LPAREN Expr RPAREN { $1 }
          | K_SIN LPAREN Expr RPAREN { Expr::Unary::Sin($2) }
          | K_COS LPAREN Expr RPAREN { Expr::Unary::Cos($2) }
          | K_SQRT LPAREN Expr RPAREN { Expr::Unary::Sqrt($2) }
`
