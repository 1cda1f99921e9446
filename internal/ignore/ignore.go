// Package ignore reads .stegoignore files: one glob per line, '#' comments,
// a trailing '/' for directories. Patterns use doublestar syntax.
package ignore

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore file looked up at the scan root.
const FileName = ".stegoignore"

// Matcher holds parsed ignore patterns. The zero value matches nothing.
type Matcher struct {
	patterns []pattern
}

type pattern struct {
	glob string
	dir  bool
}

// Load parses the ignore file at p.
func Load(p string) (Matcher, error) {
	f, err := os.Open(p)
	if err != nil {
		return Matcher{}, err
	}
	defer f.Close()
	var m Matcher
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pt := pattern{glob: strings.TrimPrefix(line, "/")}
		if strings.HasSuffix(pt.glob, "/") {
			pt.dir = true
			pt.glob = strings.TrimSuffix(pt.glob, "/")
		}
		m.patterns = append(m.patterns, pt)
	}
	return m, sc.Err()
}

// Match reports whether the slash-separated relative path is ignored.
func (m Matcher) Match(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	for _, pt := range m.patterns {
		if pt.dir {
			if matchDir(pt.glob, rel) {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(pt.glob, rel); ok {
			return true
		}
		if !strings.Contains(pt.glob, "/") {
			if ok, _ := doublestar.Match(pt.glob, path.Base(rel)); ok {
				return true
			}
		}
	}
	return false
}

// matchDir reports whether any parent directory of rel matches glob.
func matchDir(glob, rel string) bool {
	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], "/")
		if ok, _ := doublestar.Match(glob, prefix); ok {
			return true
		}
		if !strings.Contains(glob, "/") {
			if ok, _ := doublestar.Match(glob, parts[i-1]); ok {
				return true
			}
		}
	}
	return false
}

// Append adds pattern to the ignore file under root unless a line with the
// same pattern is already there. The file is created when missing.
func Append(root, pattern string) error {
	p := filepath.Join(root, FileName)
	var last byte = '\n'
	if b, err := os.ReadFile(p); err == nil {
		sc := bufio.NewScanner(strings.NewReader(string(b)))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) == pattern {
				return nil
			}
		}
		if len(b) > 0 {
			last = b[len(b)-1]
		}
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	line := pattern + "\n"
	if last != '\n' {
		line = "\n" + line
	}
	_, err = f.WriteString(line)
	return err
}
