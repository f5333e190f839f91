package ast

// Tag identifies the lexical class of a token.
type Tag uint8

const (
	Invalid Tag = iota
	Identifier
	Keyword
	Builtin
	NumberLiteral
	StringLiteral
	MultilineStringLiteral
	CharLiteral
	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Semicolon // ;
	Comma     // ,
	Colon     // :
	Equal     // =
	Period    // .
	Operator
	EOF
)

var tagNames = [...]string{
	Invalid:                "invalid",
	Identifier:             "identifier",
	Keyword:                "keyword",
	Builtin:                "builtin",
	NumberLiteral:          "number",
	StringLiteral:          "string",
	MultilineStringLiteral: "multiline string",
	CharLiteral:            "char",
	LBrace:                 "'{'",
	RBrace:                 "'}'",
	LParen:                 "'('",
	RParen:                 "')'",
	LBracket:               "'['",
	RBracket:               "']'",
	Semicolon:              "';'",
	Comma:                  "','",
	Colon:                  "':'",
	Equal:                  "'='",
	Period:                 "'.'",
	Operator:               "operator",
	EOF:                    "end of file",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// Token is a lexical unit pointing back into Tree.Source.
type Token struct {
	Tag   Tag
	Start uint32
	End   uint32
}

// TokenIndex indexes Tree.Tokens.
type TokenIndex uint32

// NoToken marks an absent optional token, such as the name of an
// anonymous function.
const NoToken = ^TokenIndex(0)
