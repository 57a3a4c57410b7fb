package langtmpl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Wrapper_Wrap(t *testing.T) {
	assert := assert.New(t)
	w := Wrapper{Prefix: "fn foo() {\n", Suffix: "\n}\n"}
	assert.Equal("fn foo() {\nbody\n}\n", w.Wrap("body"))
}

func Test_Load_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "lang.json")
	content := `{
		"imports": "use std::fmt;",
		"parse_error": "ParseError",
		"class_def": "pub struct Parser",
		"class_body_wrapper": {"prefix": "{", "suffix": "}"},
		"required_functions": {
			"constructor": ["Parser", "new"],
			"error_func": ["Parser", "error"],
			"match_func": ["Parser", "match_token"],
			"current_func": ["Parser", "current"]
		},
		"func_call": {"prefix": "", "suffix": "()"},
		"match_call": {"prefix": "self.match_token(", "suffix": ")"},
		"error_call": {"prefix": "self.error(", "suffix": ")"},
		"condition": {"prefix": "if ", "suffix": " {"},
		"if_clause": {"prefix": "", "suffix": "}"},
		"elseif_clause": {"prefix": "else if ", "suffix": "}"},
		"else_clause": "else {}",
		"public_func_def": {"prefix": "pub fn ", "suffix": "}"},
		"private_func_def": {"prefix": "fn ", "suffix": "}"},
		"func_body": {"prefix": "{", "suffix": "}"},
		"empty_production_body": "/* epsilon */"
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lang, err := Load(path)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("ParseError", lang.ParseError)
	assert.Equal([]string{"Parser", "new"}, lang.RequiredFunctions.Constructor)
	assert.Equal("{body}", lang.ClassBodyWrapper.Wrap("body"))
}

func Test_Load_MissingFile(t *testing.T) {
	assert := assert.New(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(err)
}
