package asm

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is the top-level AST node
type Program struct {
	Lines []*Line `@@*`
}

// Line: [label ":"] [statement] newline
type Line struct {
	Pos lexer.Position

	Label     *string    `( @Ident ":" )?`
	Statement *Statement `@@?`
	EOL       string     `@EOL`
}

// Statement is a mnemonic or directive followed by comma separated operands.
type Statement struct {
	Pos lexer.Position

	Mnemonic string     `@Ident`
	Operands []*Operand `( @@ ( "," @@ )* )?`
}

// Operand: "[" I "]" | number | register or label
type Operand struct {
	Indirect *string `  "[" @Ident "]"`
	Number   *string `| @Number`
	Name     *string `| @Ident`
}

var asmLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `;[^\n]*`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},

	{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+|0[bB][01]+|[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[:,\[\]]`},
})

var parser = participle.MustBuild[Program](
	participle.Lexer(asmLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse parses assembler source into a Program AST. A missing trailing
// newline is tolerated.
func Parse(filename, source string) (*Program, error) {
	return parser.ParseString(filename, source+"\n")
}
