// SPDX-License-Identifier: MIT

package library

import "fmt"

// TokenType classifies a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNewline
	TokenIdent
	TokenNumber
	TokenString
	TokenEqual
	TokenLParen
	TokenRParen
	TokenComma
	TokenStar
	TokenPlus
)

// String names the token type for error messages.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of file"
	case TokenNewline:
		return "end of line"
	case TokenIdent:
		return "name"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenEqual:
		return "'='"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenStar:
		return "'*'"
	case TokenPlus:
		return "'+'"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

// Token is one lexeme with its position.
type Token struct {
	Type   TokenType
	Lexeme string // string tokens hold the unquoted text
	Line   int
	Column int
}

// Keywords of the library grammar.
const (
	kwConstruction = "Construction"
	kwInput        = "Input"
	kwAssume       = "Assume"
	kwSteps        = "Steps"
	kwForce        = "Force"
	kwOutput       = "Output"
	kwConclude     = "Conclude"
	kwDist         = "dist"
	kwAngle        = "angle"
	kwPi           = "PI"
)
