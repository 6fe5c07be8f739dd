package controller

import "os"

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// writeFileTruncate writes b to path, creating or truncating it —
// unlike nibtb.NewFile, the controller state file is rewritten every
// iteration rather than created once.
func writeFileTruncate(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}
