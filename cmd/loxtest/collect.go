package main

import (
	"io/fs"
	"path/filepath"
	"strings"
)

type testCase struct {
	Name       string
	ScriptPath string
	GoldenPath string
}

// walkLoxScripts visits every *.lox file under dir, suite subdirectories
// included, mirroring the teacher's one-level-deep suite collection but
// generalized to arbitrary nesting since golden files live beside their
// scripts instead of in a parallel reference tree.
func walkLoxScripts(dir string, visit func(scriptPath string)) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".lox") {
			visit(p)
		}
		return nil
	})
}
