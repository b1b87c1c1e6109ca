package settings

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/lyraproj/invocat/evaluator"
	"github.com/lyraproj/issue/issue"
)

func expectCode(t *testing.T, err error, code issue.Code) {
	t.Helper()
	ri, ok := err.(issue.Reported)
	if !ok {
		t.Fatalf("expected %s, got %v", code, err)
	}
	if ri.Code() != code {
		t.Errorf("expected %s, got %s", code, ri.Code())
	}
}

func TestLoad(t *testing.T) {
	s, err := Load([]byte("seed: dragons\nrequires: '>=1.0.0 <2.0.0'\nlog_level: debug\nmax_depth: 20\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Seed == nil || *s.Seed != `dragons` {
		t.Errorf("expected seed 'dragons', got %v", s.Seed)
	}
	if s.LogLevel != `debug` || s.MaxDepth != 20 {
		t.Errorf("unexpected settings %+v", s)
	}
}

func TestLoad_defaults(t *testing.T) {
	s, err := Load([]byte("seed: ''\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Seed == nil || *s.Seed != `` {
		t.Errorf("expected an empty seed to be retained, got %v", s.Seed)
	}
	if s.LogLevel != string(evaluator.NOTICE) || s.MaxDepth != evaluator.DefaultMaxDepth {
		t.Errorf("expected defaults, got %+v", s)
	}

	s, err = Load([]byte(``))
	if err != nil {
		t.Fatal(err)
	}
	if s.Seed != nil {
		t.Errorf("expected no seed, got %q", *s.Seed)
	}
}

func TestLoad_errors(t *testing.T) {
	_, err := Load([]byte("colour: red\n"))
	expectCode(t, err, ParseError)

	_, err = Load([]byte("max_depth: [1]\n"))
	expectCode(t, err, ParseError)

	_, err = Load([]byte("requires: '>=2.0.0'\n"))
	expectCode(t, err, UnsupportedVersion)

	_, err = Load([]byte("requires: garbage\n"))
	expectCode(t, err, InvalidRequirement)

	_, err = Load([]byte("log_level: loud\n"))
	expectCode(t, err, InvalidLogLevel)

	_, err = Load([]byte("max_depth: -1\n"))
	expectCode(t, err, InvalidMaxDepth)
}

func TestLoadFile(t *testing.T) {
	dir, err := ioutil.TempDir(``, `invocat`)
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, `settings.yaml`)
	if err = ioutil.WriteFile(path, []byte("seed: abc\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if *s.Seed != `abc` {
		t.Errorf("expected seed 'abc', got %q", *s.Seed)
	}

	_, err = LoadFile(filepath.Join(dir, `missing.yaml`))
	expectCode(t, err, ParseError)
}

func TestWithSeed(t *testing.T) {
	s := Default()
	c := s.WithSeed(`x`)
	if s.Seed != nil {
		t.Errorf("expected WithSeed to leave the original unchanged")
	}
	if *c.Seed != `x` || c.MaxDepth != s.MaxDepth {
		t.Errorf("unexpected copy %+v", c)
	}
}

func TestLogger(t *testing.T) {
	if Default().Logger() == nil {
		t.Errorf("expected a logger")
	}
}
