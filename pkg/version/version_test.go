package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	buildInfo := Get()

	if buildInfo.Version == "" {
		t.Error("Expected Version to be populated")
	}

	if !strings.HasPrefix(buildInfo.GoVersion, "go") {
		t.Errorf("Expected GoVersion to start with 'go', got: %s", buildInfo.GoVersion)
	}

	expectedPlatform := runtime.GOOS + "/" + runtime.GOARCH
	if buildInfo.Platform != expectedPlatform {
		t.Errorf("Expected Platform '%s', got '%s'", expectedPlatform, buildInfo.Platform)
	}
}

func TestGetUsesInjectedVersion(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.4.0"
	if got := Get().Version; got != "v1.4.0" {
		t.Errorf("Expected injected version, got %q", got)
	}
}

func TestModuleVersion(t *testing.T) {
	cases := map[string]string{
		"":          "dev",
		"(devel)":   "dev",
		"v0.3.1":    "v0.3.1",
		"v1.0.0-rc": "v1.0.0-rc",
	}
	for in, want := range cases {
		if got := moduleVersion(in); got != want {
			t.Errorf("moduleVersion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildInfoString(t *testing.T) {
	tests := []struct {
		name      string
		buildInfo BuildInfo
		expected  []string
		absent    []string
	}{
		{
			name: "complete build info",
			buildInfo: BuildInfo{
				Version:   "1.0.0",
				GitCommit: "abc123",
				BuildDate: "2023-01-01",
				GoVersion: "go1.21.0",
				Platform:  "linux/amd64",
			},
			expected: []string{"confreplace version 1.0.0", "(abc123)", "built on 2023-01-01", "go1.21.0", "linux/amd64"},
		},
		{
			name: "minimal build info (dev)",
			buildInfo: BuildInfo{
				Version:   "dev",
				GoVersion: "go1.21.0",
				Platform:  "darwin/arm64",
			},
			expected: []string{"confreplace version dev", "go1.21.0", "darwin/arm64"},
			absent:   []string{"(", "built on"},
		},
		{
			name: "with build date but no commit",
			buildInfo: BuildInfo{
				Version:   "v2.0.0",
				BuildDate: "2023-12-25",
				GoVersion: "go1.21.5",
				Platform:  "linux/arm64",
			},
			expected: []string{"confreplace version v2.0.0", "built on 2023-12-25"},
			absent:   []string{"("},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.buildInfo.String()
			for _, want := range tt.expected {
				if !strings.Contains(result, want) {
					t.Errorf("Expected result to contain '%s', got: %s", want, result)
				}
			}
			for _, notWant := range tt.absent {
				if strings.Contains(result, notWant) {
					t.Errorf("Expected result to not contain '%s', got: %s", notWant, result)
				}
			}
		})
	}
}

func TestBuildInfoStringFormat(t *testing.T) {
	buildInfo := BuildInfo{
		Version:   "1.2.3",
		GitCommit: "abcd1234",
		BuildDate: "2023-06-15",
		GoVersion: "go1.20.0",
		Platform:  "linux/amd64",
	}

	expected := "confreplace version 1.2.3 (abcd1234) built on 2023-06-15 go1.20.0 linux/amd64"
	if result := buildInfo.String(); result != expected {
		t.Errorf("Expected exact format:\n%s\nGot:\n%s", expected, result)
	}
}
