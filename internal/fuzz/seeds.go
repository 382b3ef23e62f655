package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

// inlineSeeds cover the lexical corners: every literal form, escapes,
// unterminated constructs and stray bytes.
var inlineSeeds = []string{
	"",
	"\ufeff",
	"Command Drive(Real x);\n",
	"StartCondition Start EndCondition End",
	"0 07 0x 0x1F 0o17 0b101 0b2 1.5e-3 .5 42. 42... 7.e2 1e",
	`"a\n\t\"\\\101é" 'x' "\q" "open`,
	"/* block */ // line\r\n/* open",
	"#( ) == != <= >= && || ! ... = < > + - * / %",
	"x $ y @ z \x80\xff",
	"NCName_1 ünï ŝ",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все файлы планов
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".ple" && ext != ".plp" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
