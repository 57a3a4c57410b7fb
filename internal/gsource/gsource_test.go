package gsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const arithmeticSrc = `
// classical arithmetic grammar
E ::= T Ep ;
Ep ::= "+" T Ep | ;
T : F Tp ;
Tp : "*" F Tp | ;
F : "(" E ")" | "id" ;
`

func Test_Parse_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(arithmeticSrc)
	if !assert.NoError(err) {
		return
	}
	assert.NoError(g.Validate())
	assert.Equal("E", g.StartSymbol())
	assert.ElementsMatch([]string{"E", "Ep", "T", "Tp", "F"}, g.NonTerminalNames())

	conflicts := g.Analyze()
	assert.Empty(conflicts)
}

func Test_Parse_UndeclaredIdentifierBecomesTerminal(t *testing.T) {
	assert := assert.New(t)

	g, err := Parse(`S ::= id ;`)
	if !assert.NoError(err) {
		return
	}
	assert.ElementsMatch([]string{"id"}, g.Terminals())
}

func Test_Parse_MissingEnd_Errors(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse(`S ::= "a"`)
	assert.Error(err)
}

func Test_Parse_DuplicateRule_Errors(t *testing.T) {
	assert := assert.New(t)
	_, err := Parse(`S ::= "a" ; S ::= "b" ;`)
	assert.Error(err)
}

func Test_Parse_EmptyAlternative(t *testing.T) {
	assert := assert.New(t)
	g, err := Parse(`S ::= A "x" ; A ::= ;`)
	if !assert.NoError(err) {
		return
	}
	g.Analyze()
	assert.True(g.NonTerminal("A").IsNullable)
}
