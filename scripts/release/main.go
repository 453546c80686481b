// Release bumps the version constant, commits it, tags the commit and
// optionally pushes both.
//
//	go run ./scripts/release 1.2.0
package main

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/ImGajeed76/vibepalette/internal/ui"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/console"
)

const versionFile = "pkg/constants.go"

var (
	semverPattern  = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?$`)
	versionPattern = regexp.MustCompile(`(?m)^var Version = ".*"$`)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./scripts/release <version>")
		os.Exit(1)
	}

	version, err := normalizeVersion(os.Args[1])
	if err != nil {
		fail(err)
	}
	tag := "v" + version

	ui.Status(os.Stdout, ui.Info, fmt.Sprintf("Release %s: update %s, commit, tag %s", version, versionFile, tag))
	if !confirm("Continue?") {
		ui.Status(os.Stdout, ui.Warning, "Aborted")
		return
	}

	if dirty() {
		fail(fmt.Errorf("uncommitted changes, commit or stash them first"))
	}

	content, err := os.ReadFile(versionFile)
	if err != nil {
		fail(err)
	}
	updated, err := setVersion(string(content), version)
	if err != nil {
		fail(err)
	}
	if err := os.WriteFile(versionFile, []byte(updated), 0644); err != nil {
		fail(err)
	}
	ui.Status(os.Stdout, ui.Success, "Updated "+versionFile)

	steps := [][]string{
		{"git", "add", versionFile},
		{"git", "commit", "-m", "chore: bump version to " + tag},
		{"git", "tag", "-a", tag, "-m", "Release " + tag},
	}
	for _, step := range steps {
		if err := run(step...); err != nil {
			fail(err)
		}
	}
	ui.Status(os.Stdout, ui.Success, "Tagged "+tag)

	if !confirm("Push to remote?") {
		ui.Status(os.Stdout, ui.Warning, fmt.Sprintf("Not pushed: git push origin HEAD && git push origin %s", tag))
		return
	}
	for _, step := range [][]string{{"git", "push", "origin", "HEAD"}, {"git", "push", "origin", tag}} {
		if err := run(step...); err != nil {
			fail(err)
		}
	}
	ui.Status(os.Stdout, ui.Success, "Released "+tag)
}

// normalizeVersion accepts "1.2.3" or "v1.2.3" and returns "1.2.3".
func normalizeVersion(arg string) (string, error) {
	version := strings.TrimPrefix(strings.TrimSpace(arg), "v")
	if !semverPattern.MatchString(version) {
		return "", fmt.Errorf("invalid version %q, use 1.2.3 or v1.2.3", arg)
	}
	return version, nil
}

// setVersion rewrites the Version declaration in a constants file.
func setVersion(content, version string) (string, error) {
	if !versionPattern.MatchString(content) {
		return "", fmt.Errorf("no Version declaration in %s", versionFile)
	}
	return versionPattern.ReplaceAllString(content, fmt.Sprintf("var Version = %q", version)), nil
}

func dirty() bool {
	out, err := exec.Command("git", "status", "--porcelain").Output()
	return err == nil && len(strings.TrimSpace(string(out))) > 0
}

func run(name ...string) error {
	cmd := exec.Command(name[0], name[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", strings.Join(name, " "), err)
	}
	return nil
}

func confirm(question string) bool {
	options := console.DefaultYesNoOptions()
	options.Prompt = question
	options.DefaultYes = false
	ok, err := console.YesNo(options)
	return err == nil && ok
}

func fail(err error) {
	ui.Status(os.Stderr, ui.Error, err.Error())
	os.Exit(1)
}
