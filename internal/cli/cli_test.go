package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/modforge/modforge/internal/history"
	"github.com/modforge/modforge/internal/testutil"
)

const (
	commonSrc = "shared/common/src/main/java/"
	fabricSrc = "shared/fabric/src/main/java/"
	scope     = "versions/1.20.1/"
)

// runCLI executes the command tree in-process.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = execute(cmd, args)
	return out.String(), errOut.String(), err
}

type envelope struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
}

func decode(t *testing.T, out string) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	return env
}

func hasWarning(env envelope, code string) bool {
	for _, w := range env.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func swordProject(t *testing.T) *testutil.TestProject {
	t.Helper()
	return testutil.NewTestProject(t).
		WithConfig("testmod", "com.testmod").
		WithFile(commonSrc+"com/testmod/items/RubySword.java",
			testutil.ComponentClass("com.testmod", "items", "RubySword", "ruby_sword", "SwordItem")).
		WithFile(fabricSrc+"com/testmod/platform/fabric/RubySwordFabric.java",
			testutil.PlatformClass("com.testmod", "fabric", "RubySword", "Fabric", "items")).
		WithFile(scope+"assets/testmod/models/item/ruby_sword.json", testutil.ItemModel("testmod", "ruby_sword")).
		WithFile(scope+"assets/testmod/lang/en_us.json", testutil.Lang("item.testmod.ruby_sword", "Ruby Sword")).
		Build()
}

func TestRenameJSON(t *testing.T) {
	p := swordProject(t)

	out, _, err := runCLI(t, "rename", "item", "ruby_sword", "ruby_blade", "--project", p.Path, "--json")
	if err != nil {
		t.Fatalf("rename: %v\n%s", err, out)
	}
	env := decode(t, out)
	if !env.OK {
		t.Fatalf("expected ok, got %+v", env.Error)
	}

	var report renameReport
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if report.Kind != "item" || report.NewName != "ruby_blade" || report.DryRun {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Operations) == 0 || report.Result == nil || !report.Result.Success {
		t.Fatalf("expected executed operations, got %+v", report)
	}
	if report.Validated == nil || !*report.Validated {
		t.Fatal("expected validated=true")
	}
	if report.HistoryID == 0 {
		t.Fatal("expected a history entry")
	}
	for _, op := range report.Operations {
		if strings.HasPrefix(op.Path, "/") {
			t.Fatalf("operation path should be project-relative: %s", op.Path)
		}
	}

	p.AssertFileExists(commonSrc + "com/testmod/items/RubyBlade.java")
	p.AssertFileNotExists(commonSrc + "com/testmod/items/RubySword.java")
	p.AssertFileContains(scope+"assets/testmod/lang/en_us.json", `"item.testmod.ruby_blade": "Ruby Blade"`)
	p.AssertFileExists(history.Dir + "/" + history.FileName)
}

func TestRenameNormalizesComponentNames(t *testing.T) {
	p := swordProject(t)

	out, _, err := runCLI(t, "rename", "item", "Ruby Sword", "RubyBlade", "-p", p.Path, "--json")
	if err != nil {
		t.Fatalf("rename: %v\n%s", err, out)
	}
	var report renameReport
	if err := json.Unmarshal(decode(t, out).Data, &report); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if report.OldName != "ruby_sword" || report.NewName != "ruby_blade" {
		t.Fatalf("names not normalized: %q -> %q", report.OldName, report.NewName)
	}
	p.AssertFileExists(commonSrc + "com/testmod/items/RubyBlade.java")
	p.AssertFileExists(scope + "assets/testmod/models/item/ruby_blade.json")
}

func TestRenameDryRunText(t *testing.T) {
	p := swordProject(t)
	before := p.HashTree()

	out, _, err := runCLI(t, "rename", "item", "ruby_sword", "ruby_blade", "-p", p.Path, "--dry-run")
	if err != nil {
		t.Fatalf("rename --dry-run: %v", err)
	}
	if !strings.Contains(out, "Dry run:") || !strings.Contains(out, "RubyBlade.java") {
		t.Fatalf("expected a preview, got:\n%s", out)
	}
	if p.HashTree() != before {
		t.Fatal("dry run changed the project")
	}
	if p.FileExists(history.Dir + "/" + history.FileName) {
		t.Fatal("dry run must not create the history database")
	}
}

func TestRenameConflict(t *testing.T) {
	p := swordProject(t)
	p.WriteFile(commonSrc+"com/testmod/items/RubyBlade.java", "package com.testmod.items;\n\nclass RubyBlade {}\n")
	before := p.HashTree()

	out, _, err := runCLI(t, "rename", "item", "ruby_sword", "ruby_blade", "-p", p.Path, "--json")
	var reported *reportedError
	if !errors.As(err, &reported) {
		t.Fatalf("expected a reported error, got %v", err)
	}
	env := decode(t, out)
	if env.OK || env.Error == nil || env.Error.Code != ErrConflict {
		t.Fatalf("expected CONFLICT, got %+v", env.Error)
	}
	if env.Error.Suggestion == "" {
		t.Fatal("expected a suggestion")
	}
	if p.HashTree() != before {
		t.Fatal("a blocked rename changed the project")
	}
}

func TestRenameConflictText(t *testing.T) {
	p := swordProject(t)
	p.WriteFile(commonSrc+"com/testmod/items/RubyBlade.java", "package com.testmod.items;\n\nclass RubyBlade {}\n")

	out, stderr, err := runCLI(t, "rename", "item", "ruby_sword", "ruby_blade", "-p", p.Path)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(out, "Conflicts") || !strings.Contains(out, "RubyBlade.java") {
		t.Fatalf("expected the conflict list on stdout, got:\n%s", out)
	}
	if !strings.Contains(stderr, "--force") {
		t.Fatalf("expected a --force hint on stderr, got:\n%s", stderr)
	}
}

func TestRenameErrorCodes(t *testing.T) {
	p := swordProject(t)
	bare := testutil.NewTestProject(t).
		WithFile(commonSrc+"com/testmod/items/RubySword.java",
			testutil.ComponentClass("com.testmod", "items", "RubySword", "ruby_sword", "Item")).
		Build()

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown kind", []string{"rename", "potion", "a", "b", "-p", p.Path}, ErrInvalidInput},
		{"invalid new name", []string{"rename", "item", "ruby_sword", "Ruby Blade", "-p", p.Path}, ErrInvalidInput},
		{"nothing to rename", []string{"rename", "item", "emerald_axe", "jade_axe", "-p", p.Path}, ErrNothingToRename},
		{"unknown version scope", []string{"rename", "item", "ruby_sword", "ruby_blade", "-p", p.Path, "--version-scope", "9.9"}, ErrInvalidInput},
		{"missing config", []string{"rename", "item", "ruby_sword", "ruby_blade", "-p", bare.Path}, ErrConfigInvalid},
		{"missing project", []string{"rename", "item", "ruby_sword", "ruby_blade", "-p", p.Abs("nope")}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, append(tt.args, "--json")...)
			if err == nil {
				t.Fatal("expected an error")
			}
			env := decode(t, out)
			if env.Error == nil || env.Error.Code != tt.code {
				t.Fatalf("code = %+v, want %s", env.Error, tt.code)
			}
		})
	}
}

func TestRenameWithConfigOverrides(t *testing.T) {
	bare := testutil.NewTestProject(t).
		WithFile(commonSrc+"com/testmod/items/RubySword.java",
			testutil.ComponentClass("com.testmod", "items", "RubySword", "ruby_sword", "Item")).
		Build()

	out, _, err := runCLI(t, "rename", "item", "ruby_sword", "ruby_blade",
		"-p", bare.Path, "--mod-id", "testmod", "--package", "com.testmod", "--no-history", "--json")
	if err != nil {
		t.Fatalf("rename: %v\n%s", err, out)
	}
	if !decode(t, out).OK {
		t.Fatal("expected ok")
	}
	bare.AssertFileExists(commonSrc + "com/testmod/items/RubyBlade.java")
	if bare.FileExists(history.Dir + "/" + history.FileName) {
		t.Fatal("--no-history must not record")
	}
}

func TestOverrideWarning(t *testing.T) {
	p := swordProject(t)
	out, _, err := runCLI(t, "refs", "item", "ruby_sword", "-p", p.Path, "--mod-id", "othermod", "--json")
	if err != nil {
		t.Fatalf("refs: %v", err)
	}
	if !hasWarning(decode(t, out), WarnConfigOverridden) {
		t.Fatalf("expected %s warning:\n%s", WarnConfigOverridden, out)
	}
}

func TestRefs(t *testing.T) {
	p := swordProject(t)
	p.WriteFile("shared/quilt/src/main/java/com/testmod/platform/quilt/RubySwordQuilt.java",
		testutil.PlatformClass("com.testmod", "quilt", "RubySword", "Quilt", "items"))
	before := p.HashTree()

	out, _, err := runCLI(t, "refs", "item", "ruby_sword", "-p", p.Path, "--json")
	if err != nil {
		t.Fatalf("refs: %v", err)
	}
	env := decode(t, out)
	var report refsReport
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !contains(report.Files, commonSrc+"com/testmod/items/RubySword.java") {
		t.Fatalf("files = %v", report.Files)
	}
	if len(report.References) == 0 || len(report.Patterns) == 0 {
		t.Fatalf("expected references and patterns: %+v", report)
	}
	if !hasWarning(env, WarnLoaderNotConfigured) {
		t.Fatalf("expected %s for shared/quilt", WarnLoaderNotConfigured)
	}
	if p.HashTree() != before {
		t.Fatal("refs changed the project")
	}
}

func TestRefsYAMLAndText(t *testing.T) {
	p := swordProject(t)

	out, _, err := runCLI(t, "refs", "item", "ruby_sword", "-p", p.Path, "--format", "yaml")
	if err != nil {
		t.Fatalf("refs --format yaml: %v", err)
	}
	var resp struct {
		OK   bool `yaml:"ok"`
		Data struct {
			Kind  string   `yaml:"kind"`
			Files []string `yaml:"files"`
		} `yaml:"data"`
	}
	if err := yaml.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if !resp.OK || resp.Data.Kind != "item" || len(resp.Data.Files) == 0 {
		t.Fatalf("unexpected YAML response: %+v", resp)
	}

	out, _, err = runCLI(t, "refs", "item", "ruby_sword", "-p", p.Path)
	if err != nil {
		t.Fatalf("refs: %v", err)
	}
	if !strings.Contains(out, "## References") || !strings.Contains(out, "RubySwordFabric.java") {
		t.Fatalf("unexpected text output:\n%s", out)
	}

	out, _, err = runCLI(t, "refs", "item", "emerald_axe", "-p", p.Path)
	if err != nil {
		t.Fatalf("refs: %v", err)
	}
	if !strings.Contains(out, "Nothing found") {
		t.Fatalf("unexpected text output:\n%s", out)
	}
}

func TestHistory(t *testing.T) {
	p := swordProject(t)

	out, _, err := runCLI(t, "history", "-p", p.Path, "--json")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if got := string(decode(t, out).Data); got != "[]" {
		t.Fatalf("expected empty history, got %s", got)
	}
	if p.FileExists(history.Dir) {
		t.Fatal("listing history must not create the database")
	}

	if _, _, err := runCLI(t, "rename", "item", "ruby_sword", "ruby_blade", "-p", p.Path); err != nil {
		t.Fatalf("rename: %v", err)
	}

	out, _, err = runCLI(t, "history", "-p", p.Path, "--json")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var entries []history.Entry
	if err := json.Unmarshal(decode(t, out).Data, &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 1 || entries[0].OldName != "ruby_sword" || entries[0].Status != history.StatusCommitted {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	out, _, err = runCLI(t, "history", "-p", p.Path, "--show", "1", "--json")
	if err != nil {
		t.Fatalf("history --show: %v", err)
	}
	var detail struct {
		Kind string `json:"kind"`
		Ops  []struct {
			Kind string `json:"kind"`
		} `json:"ops"`
		UndoCommand string `json:"undo_command"`
	}
	if err := json.Unmarshal(decode(t, out).Data, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Kind != "item" || len(detail.Ops) != entries[0].Operations {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if detail.UndoCommand != "modforge rename item ruby_blade ruby_sword" {
		t.Fatalf("undo command = %q", detail.UndoCommand)
	}

	out, _, err = runCLI(t, "history", "-p", p.Path)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "ruby_sword") || !strings.Contains(out, "committed") {
		t.Fatalf("unexpected text output:\n%s", out)
	}

	if _, _, err := runCLI(t, "history", "-p", p.Path, "--show", "42"); err == nil {
		t.Fatal("expected an error for an unknown rename")
	}
}

func TestHistoryDisabledInConfig(t *testing.T) {
	p := swordProject(t)
	p.WriteFile("modforge.toml", "mod_id = \"testmod\"\npackage_name = \"com.testmod\"\nloaders = [\"fabric\"]\n\n[rename]\nhistory = false\n")

	if _, _, err := runCLI(t, "rename", "item", "ruby_sword", "ruby_blade", "-p", p.Path); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if p.FileExists(history.Dir + "/" + history.FileName) {
		t.Fatal("history = false must not record")
	}
}

func TestUnknownFormat(t *testing.T) {
	_, stderr, err := runCLI(t, "version", "--format", "xml")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errorCode(err) != ErrInvalidInput || !strings.Contains(stderr, "unknown output format") {
		t.Fatalf("unexpected error %v, stderr:\n%s", err, stderr)
	}
}

func TestDocs(t *testing.T) {
	out, _, err := runCLI(t, "docs", "--json")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	var topics []docsTopic
	if err := json.Unmarshal(decode(t, out).Data, &topics); err != nil {
		t.Fatalf("decode topics: %v", err)
	}
	if len(topics) == 0 || topics[0].ID != "renaming" {
		t.Fatalf("unexpected topics: %+v", topics)
	}

	out, _, err = runCLI(t, "docs", "renaming")
	if err != nil {
		t.Fatalf("docs renaming: %v", err)
	}
	if !strings.Contains(out, "# Renaming components") {
		t.Fatalf("unexpected topic output:\n%s", out)
	}

	out, _, err = runCLI(t, "docs", "nope", "--json")
	if err == nil || decode(t, out).Error.Code != ErrInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v\n%s", err, out)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
