package watch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargets_relevant(t *testing.T) {
	t.Parallel()

	root := filepath.Join("work", "kernels")
	targets := Targets{
		SourceRoot: root,
		Files:      []string{filepath.Join(root, "README.md"), "site.yaml"},
		Dirs:       []string{"templates"},
	}

	tests := []struct {
		name string
		want bool
	}{
		{filepath.Join(root, "README.md"), true},
		{"site.yaml", true},
		{filepath.Join("templates", "day.html"), true},
		{filepath.Join(root, "day 03"), true},
		{filepath.Join(root, "day 03", "sub", "kernel.cu"), true},
		{filepath.Join(root, "docs", "day-3.html"), false},
		{filepath.Join(root, "notes.txt"), false},
		{filepath.Join(root, "daylight"), false},
		{root, false},
		{"elsewhere", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, targets.relevant(tt.name), tt.name)
	}
}
