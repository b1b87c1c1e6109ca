package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestRun_status(t *testing.T) {
	dir, err := ioutil.TempDir(``, `invocat`)
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	good := filepath.Join(dir, `good.inv`)
	bad := filepath.Join(dir, `bad.inv`)
	ioutil.WriteFile(good, []byte("x :: a | b\n(x)\n"), 0644)
	ioutil.WriteFile(bad, []byte("{nothing}\n"), 0644)

	cases := []struct {
		args   []string
		status int
	}{
		{[]string{`invocat`, `-h`}, 0},
		{[]string{`invocat`, `-s`, `seed`, `-n`, `3`, `-e`, `hello`}, 0},
		{[]string{`invocat`, `-d`, good}, 0},
		{[]string{`invocat`, bad}, 1},
		{[]string{`invocat`, filepath.Join(dir, `missing.inv`)}, 1},
		{[]string{`invocat`, `-n`, `many`}, 2},
		{[]string{`invocat`, `-q`}, 2},
	}
	for _, c := range cases {
		if status := run(c.args); status != c.status {
			t.Errorf("expected %v to exit with %d, got %d", c.args, c.status, status)
		}
	}
}
