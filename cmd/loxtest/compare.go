package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const width = 100

func printResult(name string, expected, actual result) bool {
	if expected.ExitCode == actual.ExitCode && expected.Stdout == actual.Stdout {
		fmt.Printf("  [%s] %s\n", color.GreenString("passed"), name)
		return false
	}

	fmt.Printf("  [%s] %s\n", color.RedString("failed"), name)
	if expected.ExitCode != actual.ExitCode {
		fmt.Printf("    expected exit code %d, got %d\n", expected.ExitCode, actual.ExitCode)
	} else {
		fmt.Println("    output mismatch:")
		printDiff(expected.Stdout, actual.Stdout)
	}
	return true
}

func printDiff(expected, actual string) {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	spacing := func(s string) string {
		n := width/2 - len(s)
		if n < 1 {
			n = 1
		}
		return strings.Repeat(" ", n)
	}

	for i := 0; i < len(expectedLines) || i < len(actualLines); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		fmt.Printf("    %s%s%s\n", e, spacing(e), a)
	}
}
