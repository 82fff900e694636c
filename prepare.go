package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

func createDir(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "create dir")
		}
	}
	return nil
}

// scriptPath keeps a directory component so bash never resolves the script from PATH.
func scriptPath(scriptsDir, name string) string {
	var path = filepath.Join(scriptsDir, name)
	if !strings.ContainsRune(path, filepath.Separator) {
		path = "." + string(filepath.Separator) + path
	}
	return path
}
