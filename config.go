package sqf

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	KeywordCaseLower KeywordCase = `lower`
	KeywordCaseUpper KeywordCase = `upper`
)

/*
Case of the keywords emitted by the renderer, such as "select" or
"grouping sets". The zero value behaves like `KeywordCaseLower`. Text supplied
by callers is never re-cased.
*/
type KeywordCase string

// Parses from a string, which must be empty, "lower" or "upper", in any case.
func ParseKeywordCase(src string) (KeywordCase, error) {
	switch strings.ToLower(strings.TrimSpace(src)) {
	case ``, string(KeywordCaseLower):
		return KeywordCaseLower, nil
	case string(KeywordCaseUpper):
		return KeywordCaseUpper, nil
	default:
		return ``, ErrInvalidInput.while(`parsing keyword case`).becausef(
			`unrecognized keyword case %q`, src,
		)
	}
}

// Implement `yaml.Unmarshaler`.
func (self *KeywordCase) UnmarshalYAML(node *yaml.Node) error {
	var src string
	if err := node.Decode(&src); err != nil {
		return errors.WithStack(err)
	}
	val, err := ParseKeywordCase(src)
	if err != nil {
		return err
	}
	*self = val
	return nil
}

/*
Rendering configuration of a `Query`. May be decoded from YAML:

	dialect: mysql
	keyword_case: upper

The zero value renders lower-case keywords with Postgres-style placeholders.
*/
type Config struct {
	Dialect     Dialect     `yaml:"dialect"`
	KeywordCase KeywordCase `yaml:"keyword_case"`
}

// Parses YAML into a `Config`, validating dialect and keyword case.
func ParseConfig(src []byte) (Config, error) {
	var out Config
	if err := yaml.Unmarshal(src, &out); err != nil {
		var sqfErr Err
		if errors.As(err, &sqfErr) {
			return Config{}, sqfErr
		}
		return Config{}, ErrInvalidInput.while(`parsing config`).because(errors.WithStack(err))
	}
	return out, nil
}

// Reads and parses a YAML config file. See `ParseConfig`.
func LoadConfig(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, `failed to read config %q`, path)
	}
	return ParseConfig(src)
}
