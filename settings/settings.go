package settings

import (
	"io/ioutil"

	"github.com/lyraproj/invocat/evaluator"
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/semver/semver"
	"gopkg.in/yaml.v2"
)

// Settings controls how an interpreter is created. The zero value of Seed means that
// no seed was given and that choices are seeded from entropy.
type Settings struct {
	Seed     *string `yaml:"seed,omitempty"`
	Requires string  `yaml:"requires,omitempty"`
	LogLevel string  `yaml:"log_level,omitempty"`
	MaxDepth int     `yaml:"max_depth,omitempty"`
}

// Default returns the settings used when nothing has been configured
func Default() *Settings {
	return &Settings{LogLevel: string(evaluator.NOTICE), MaxDepth: evaluator.DefaultMaxDepth}
}

// Load reads settings in YAML format. Keys that are not recognized are errors. Values
// that are not given retain their defaults.
func Load(data []byte) (*Settings, error) {
	return load(`<string>`, data)
}

func LoadFile(path string) (*Settings, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, issue.NewReported(ParseError, issue.SEVERITY_ERROR, issue.H{`source`: path, `detail`: err.Error()}, nil)
	}
	return load(path, data)
}

func load(source string, data []byte) (*Settings, error) {
	s := Default()
	if err := yaml.UnmarshalStrict(data, s); err != nil {
		return nil, issue.NewReported(ParseError, issue.SEVERITY_ERROR, issue.H{`source`: source, `detail`: err.Error()}, nil)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// WithSeed returns a copy of the settings that uses the given seed
func (s *Settings) WithSeed(seed string) *Settings {
	c := *s
	c.Seed = &seed
	return &c
}

// Validate checks that the settings are consistent and that the language version
// satisfies the version range given by Requires.
func (s *Settings) Validate() error {
	if s.Requires != `` {
		r, err := semver.ParseVersionRange(s.Requires)
		if err != nil {
			return issue.NewReported(InvalidRequirement, issue.SEVERITY_ERROR, issue.H{`requires`: s.Requires, `detail`: err.Error()}, nil)
		}
		v, err := semver.ParseVersion(evaluator.LanguageVersion)
		if err != nil {
			panic(err)
		}
		if !r.Includes(v) {
			return issue.NewReported(UnsupportedVersion, issue.SEVERITY_ERROR, issue.H{`version`: evaluator.LanguageVersion, `requires`: s.Requires}, nil)
		}
	}
	if s.LogLevel != `` && evaluator.LogLevel(s.LogLevel).Severity() < 0 {
		return issue.NewReported(InvalidLogLevel, issue.SEVERITY_ERROR, issue.H{`level`: s.LogLevel}, nil)
	}
	if s.MaxDepth < 0 {
		return issue.NewReported(InvalidMaxDepth, issue.SEVERITY_ERROR, issue.H{`value`: s.MaxDepth}, nil)
	}
	return nil
}

// Logger returns a standard logger using the configured log level
func (s *Settings) Logger() evaluator.Logger {
	return evaluator.NewStdLogger(evaluator.LogLevel(s.LogLevel))
}
