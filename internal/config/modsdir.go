package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ModsDirKey names both the environment variable and the deploy.config entry.
const ModsDirKey = "MODS_DIR"

// ErrModsDirUnset means neither the environment nor the deploy config names
// a destination directory.
var ErrModsDirUnset = errors.New("MODS_DIR not set: set it in deploy.config or env, see scripts/deploy.config.example")

// ResolveModsDir returns the absolute destination directory. MODS_DIR from
// the environment wins over the entry in configFile.
func ResolveModsDir(configFile string) (string, error) {
	if v := os.Getenv(ModsDirKey); v != "" {
		return absPath(v)
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrModsDirUnset
		}
		return "", fmt.Errorf("reading deploy config: %w", err)
	}

	v := lookupKey(data, ModsDirKey)
	if v == "" {
		return "", ErrModsDirUnset
	}
	return absPath(expandVars(v))
}

var varRef = regexp.MustCompile(`\$(\w+|\{[^}]*\})`)

// expandVars substitutes $NAME and ${NAME} from the environment. References
// to unset variables are kept as written.
func expandVars(v string) string {
	return varRef.ReplaceAllStringFunc(v, func(ref string) string {
		name := strings.Trim(ref[1:], "{}")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return ref
	})
}

// lookupKey scans KEY=value lines, ignoring everything after '#'.
// The first non-empty value for key wins.
func lookupKey(data []byte, key string) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	prefix := key + "="
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		if v := strings.TrimSpace(line[len(prefix):]); v != "" {
			return v
		}
	}
	return ""
}

func absPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home directory: %w", err)
		}
		p = filepath.Join(home, p[1:])
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	return abs, nil
}
