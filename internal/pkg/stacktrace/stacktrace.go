package stacktrace

import "strings"

// InternalPaths filters a raw debug.Stack dump down to the frames inside
// this module's internal packages, trimmed to "internal/...file.go:line".
// Panic logs stay one screen tall instead of dumping runtime frames.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines))

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		idx := strings.Index(line, ".go:")
		if idx == -1 || !strings.Contains(line, "/internal/") {
			continue
		}

		end := strings.Index(line[idx:], " ")
		if end == -1 {
			end = len(line)
		} else {
			end += idx
		}

		if cut := strings.Index(line[:end], "/internal/"); cut != -1 {
			paths = append(paths, line[cut+1:end])
		}
	}

	return paths
}
