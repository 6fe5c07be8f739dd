package nibtb

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// readFile reads an entire file into memory.
func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Exists returns whether a file or directory exists at the given path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// NewFile creates a new file at the given path, failing if it already
// exists.
func NewFile(path string, b []byte) error {
	if exists, _ := Exists(path); exists {
		return fmt.Errorf("%s already exists", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}

// AppendToFile creates the file at path if it does not exist, or
// appends to it if it does.
func AppendToFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}

// KeyValueLines reads a key=value configuration file, skipping blank
// lines and lines starting with '#'. Keys and values are trimmed of
// surrounding whitespace; repeated keys overwrite earlier ones.
func KeyValueLines(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening config file %s", path)
	}
	defer f.Close()

	kv, err := parseKeyValueScanner(bufio.NewScanner(f))
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	return kv, nil
}

// ParseKeyValueBody parses an in-memory key=value document in the
// same format KeyValueLines reads from disk — used for the parameters
// file body a controller iteration builds before it is ever written
// out.
func ParseKeyValueBody(body string) (map[string]string, error) {
	return parseKeyValueScanner(bufio.NewScanner(strings.NewReader(body)))
}

func parseKeyValueScanner(scanner *bufio.Scanner) (map[string]string, error) {
	kv := make(map[string]string)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			return nil, errors.Errorf("line %d: expected key=value, got %q", lineNum, line)
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		kv[key] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return kv, nil
}

// ValidateKnownKeys rejects a parsed key=value map containing any key
// outside known (§9: "a parser that rejects unknown keys"). Callers
// pass every key their format recognizes, including optional ones;
// an unrecognized or misspelled key fails loudly instead of being
// silently ignored.
func ValidateKnownKeys(kv map[string]string, known []string) error {
	allowed := make(map[string]bool, len(known))
	for _, k := range known {
		allowed[k] = true
	}
	var unknown []string
	for k := range kv {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf(UnknownConfigKeyError, unknown[0])
}

// requireKey pulls a mandatory key out of a parsed key=value map.
func requireKey(kv map[string]string, key string) (string, error) {
	v, ok := kv[key]
	if !ok {
		return "", fmt.Errorf(MissingConfigKeyError, key)
	}
	return v, nil
}

// parseIntKey parses a mandatory integer key.
func parseIntKey(kv map[string]string, key string) (int, error) {
	raw, err := requireKey(kv, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", key)
	}
	return v, nil
}

// parseFloatKey parses a mandatory float64 key.
func parseFloatKey(kv map[string]string, key string) (float64, error) {
	raw, err := requireKey(kv, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", key)
	}
	return v, nil
}

// parseBoolKey parses a mandatory boolean key.
func parseBoolKey(kv map[string]string, key string) (bool, error) {
	raw, err := requireKey(kv, key)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(err, "parsing %s", key)
	}
	return v, nil
}

// optionalFloatKey parses an optional float64 key, returning ok=false
// when the key is absent.
func optionalFloatKey(kv map[string]string, key string) (v float64, ok bool, err error) {
	raw, present := kv[key]
	if !present {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, errors.Wrapf(err, "parsing %s", key)
	}
	return v, true, nil
}

// optionalIntKey parses an optional integer key, returning ok=false
// when the key is absent.
func optionalIntKey(kv map[string]string, key string) (v int, ok bool, err error) {
	raw, present := kv[key]
	if !present {
		return 0, false, nil
	}
	v, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, errors.Wrapf(err, "parsing %s", key)
	}
	return v, true, nil
}

// parseRange parses a "lo:hi" range value into two float64s.
func parseRange(raw string) (lo, hi float64, err error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected lo:hi range, got %q", raw)
	}
	lo, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing range lower bound %q", raw)
	}
	hi, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing range upper bound %q", raw)
	}
	return lo, hi, nil
}
