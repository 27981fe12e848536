// Command loxtest runs every .lox script under testdata/ against the built
// `lox` binary and compares its output (stdout and stderr as one stream) and
// exit code to a recorded golden file. It is the single-binary descendant of the teacher's test framework,
// which instead diffed a reference `clox` binary against the Go target —
// there is no second-language reference here, so the comparison is against
// recorded golden output instead.
package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
)

var target = flag.String("target", "./lox", "path to the lox binary under test")

func main() {
	flag.Parse()

	cases, err := collectCases("testdata")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })

	failed := 0
	for _, tc := range cases {
		golden, err := loadGolden(tc.GoldenPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", tc.Name, err)
			failed++
			continue
		}
		actual := runCase(*target, tc.ScriptPath)
		if printResult(tc.Name, golden, actual) {
			failed++
		}
	}

	fmt.Println(strings.Repeat("-", width))
	fmt.Printf("%d/%d passed\n", len(cases)-failed, len(cases))
	if failed > 0 {
		os.Exit(1)
	}
}

func collectCases(dir string) ([]testCase, error) {
	var cases []testCase
	err := walkLoxScripts(dir, func(scriptPath string) {
		base := strings.TrimSuffix(scriptPath, ".lox")
		cases = append(cases, testCase{
			Name:       path.Base(base),
			ScriptPath: scriptPath,
			GoldenPath: base + ".golden",
		})
	})
	return cases, err
}
