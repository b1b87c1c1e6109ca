package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/lyraproj/invocat/evaluator"
	"github.com/lyraproj/invocat/interpreter"
	"github.com/lyraproj/invocat/settings"
)

const usage = `usage: invocat [-s seed] [-c settings.yaml] [-n count] [-e text] [-d] [-v] [file...]

Evaluates each file in order through one interpreter and prints the output,
then evaluates the -e text count times.

  -s seed   make the output reproducible
  -c file   read settings from a YAML file
  -n count  number of times to evaluate the -e text (default 1)
  -e text   text to evaluate after all files
  -d        dump the final environment as YAML
  -v        log debug output
  -h        show this help
`

var errColor = color.New(color.FgRed)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	opts, optind, err := getopt.Getopts(args, "s:c:n:e:dvh")
	if err != nil {
		fail(err)
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	cfg := settings.Default()
	var seed *string
	var text *string
	count := 1
	dump := false
	verbose := false
	for _, opt := range opts {
		switch opt.Option {
		case 's':
			s := opt.Value
			seed = &s
		case 'c':
			if cfg, err = settings.LoadFile(opt.Value); err != nil {
				fail(err)
				return 1
			}
		case 'n':
			if count, err = strconv.Atoi(opt.Value); err != nil || count < 0 {
				fail(fmt.Errorf("invalid -n parameter '%s'", opt.Value))
				return 2
			}
		case 'e':
			t := opt.Value
			text = &t
		case 'd':
			dump = true
		case 'v':
			verbose = true
		case 'h':
			fmt.Print(usage)
			return 0
		}
	}
	if seed != nil {
		cfg = cfg.WithSeed(*seed)
	}
	if verbose {
		cfg.LogLevel = string(evaluator.DEBUG)
	}

	ip := interpreter.NewFromSettings(cfg, nil)
	status := 0
	for _, file := range args[optind:] {
		content, err := ioutil.ReadFile(file)
		if err != nil {
			fail(err)
			return 1
		}
		if !evalAndPrint(ip, file, string(content)) {
			status = 1
		}
	}
	if text != nil {
		for i := 0; i < count; i++ {
			if !evalAndPrint(ip, `<command line>`, *text) {
				status = 1
			}
		}
	}
	if dump {
		data, err := ip.Dump()
		if err != nil {
			fail(err)
			return 1
		}
		os.Stdout.Write(data)
	}
	return status
}

func evalAndPrint(ip *interpreter.Interpreter, file, text string) bool {
	output, err := ip.EvalFile(file, text)
	for _, line := range output {
		fmt.Println(line)
	}
	if err != nil {
		fail(err)
		return false
	}
	return true
}

func fail(err error) {
	errColor.Fprintln(os.Stderr, err.Error())
}
