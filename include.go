package fractly

import (
	"bytes"
	"strings"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	paramTerminatorToken
	argsBlockToken
)

var (
	whitespaceMatcher      = parsly.NewToken(whitespaceToken, " ", matcher.NewWhiteSpace())
	paramTerminatorMatcher = parsly.NewToken(paramTerminatorToken, "colon", matcher.NewTerminator(':', true))
	argsBlockMatcher       = parsly.NewToken(argsBlockToken, "( .... )", matcher.NewBlock('(', ')', '\\'))
)

// ParamBag holds per include parameters i.e. author:limit(5|1) yields {"limit": ["5", "1"]}
type ParamBag map[string][]string

// Get returns parameter arguments
func (p ParamBag) Get(name string) []string {
	if p == nil {
		return nil
	}
	return p[name]
}

// First returns the first argument of a parameter or empty string
func (p ParamBag) First(name string) string {
	args := p.Get(name)
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// parseInclude splits an include fragment into a dotted path and its
// parameter bag; malformed parameters are dropped, never failing the request
func parseInclude(fragment string) (string, ParamBag) {
	cursor := parsly.NewCursor("", []byte(fragment), 0)
	path := matchIncludePath(cursor)
	if path == "" {
		return "", nil
	}
	var params ParamBag
	for cursor.Pos < len(cursor.Input) {
		name, args := matchIncludeParam(cursor)
		if name == "" {
			continue
		}
		if params == nil {
			params = ParamBag{}
		}
		params[name] = args
	}
	return path, params
}

func matchIncludePath(cursor *parsly.Cursor) string {
	match := cursor.MatchAfterOptional(whitespaceMatcher, paramTerminatorMatcher)
	if match.Code == paramTerminatorToken {
		value := match.Text(cursor)
		return strings.TrimSpace(value[:len(value)-1]) //exclude :
	}
	value := strings.TrimSpace(string(cursor.Input[cursor.Pos:]))
	cursor.Pos = len(cursor.Input)
	return value
}

func matchIncludeParam(cursor *parsly.Cursor) (string, []string) {
	parenIndex := bytes.IndexByte(cursor.Input[cursor.Pos:], '(')
	colonIndex := bytes.IndexByte(cursor.Input[cursor.Pos:], ':')
	if parenIndex == -1 || (colonIndex != -1 && colonIndex < parenIndex) {
		//bare parameter without arguments
		match := cursor.MatchAfterOptional(whitespaceMatcher, paramTerminatorMatcher)
		if match.Code == paramTerminatorToken {
			value := match.Text(cursor)
			return strings.TrimSpace(value[:len(value)-1]), nil //exclude :
		}
		value := strings.TrimSpace(string(cursor.Input[cursor.Pos:]))
		cursor.Pos = len(cursor.Input)
		return value, nil
	}
	name := strings.TrimSpace(string(cursor.Input[cursor.Pos : cursor.Pos+parenIndex]))
	cursor.Pos += parenIndex
	match := cursor.MatchAny(argsBlockMatcher)
	if match.Code != argsBlockToken {
		cursor.Pos = len(cursor.Input)
		return "", nil
	}
	block := match.Text(cursor)
	if strings.HasPrefix(block, "(") && strings.HasSuffix(block, ")") {
		block = block[1 : len(block)-1]
	}
	if cursor.Pos < len(cursor.Input) && cursor.Input[cursor.Pos] == ':' {
		cursor.Pos++ //skip parameter separator
	}
	var args []string
	for _, arg := range strings.Split(block, "|") {
		args = append(args, strings.TrimSpace(arg))
	}
	return name, args
}

// splitSpec expands comma separated fragments and trims surrounding whitespace
func splitSpec(specs []string) []string {
	var result []string
	for _, spec := range specs {
		for _, fragment := range strings.Split(spec, ",") {
			fragment = strings.TrimSpace(fragment)
			if fragment == "" {
				continue
			}
			result = append(result, fragment)
		}
	}
	return result
}
