//go:build unix

package ptyshell

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

var shellsimBinaryPath string

// TestMain builds cmd/shellsim once before any tests run.
func TestMain(m *testing.M) {
	buildDir := filepath.Join(os.TempDir(), fmt.Sprintf("ptyshell-test-%d", os.Getpid()))
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create build dir: %v\n", err)
		os.Exit(1)
	}

	shellsimBinaryPath = filepath.Join(buildDir, "shellsim")

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		fmt.Fprintf(os.Stderr, "Failed to determine source file path\n")
		os.Exit(1)
	}
	sourceDir := filepath.Join(filepath.Dir(thisFile), "..", "..", "cmd", "shellsim")

	fmt.Printf("TestMain: building shellsim to %s\n", shellsimBinaryPath)
	cmd := exec.Command("go", "build", "-o", shellsimBinaryPath, ".")
	cmd.Dir = sourceDir
	if output, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build shellsim: %v\nOutput:\n%s", err, string(output))
		os.Exit(1)
	}

	exitCode := m.Run()

	fmt.Printf("TestMain: cleaning up build directory %s\n", buildDir)
	if err := os.RemoveAll(buildDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to clean up build directory: %v\n", err)
	}

	os.Exit(exitCode)
}

func getShellsimBinaryPath(tb testing.TB) string {
	tb.Helper()
	if shellsimBinaryPath == "" {
		tb.Fatal("shellsimBinaryPath not initialized - TestMain did not run?")
	}
	return shellsimBinaryPath
}
