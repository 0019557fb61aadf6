package java

import (
	"strings"
)

// joinLines joins leading comments preserving their raw form
func joinLines(comments []string) string {
	return strings.Join(comments, "\n")
}

// CleanComment removes comment markers from a raw comment block
func CleanComment(comment string) string {
	comment = strings.TrimSpace(comment)
	if strings.HasPrefix(comment, "/*") && strings.HasSuffix(comment, "*/") {
		comment = comment[2 : len(comment)-2]
	}
	lines := strings.Split(comment, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, "*")
		if line = strings.TrimSpace(line); line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// reindent shifts a raw comment block so that every line starts with indent
func reindent(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "*") {
			trimmed = " " + trimmed
		}
		lines[i] = indent + trimmed
	}
	return strings.Join(lines, "\n")
}
