// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen writes markdown and man pages for every snapdiff subcommand,
// taken from the live command tree. Examples come from <docs>/examples.yaml
// when present.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/staranto/snapdiff/internal/command"
)

type Subcommand struct {
	ID       string
	Short    string
	Usage    string
	Flags    []Flag
	Examples []Example
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template *template.Template
	Folder   string
	Prefix   string
	Suffix   string
}

var mdTemplate = template.Must(template.New("md").Parse(`# snapdiff {{.ID}}

{{.Short}}

## Usage

` + "```" + `
{{.Usage}}
` + "```" + `

## Flags
{{range .Flags}}
- ` + "`{{.Syntax}}`" + ` {{.Description}}{{if .Default}} (default ` + "`{{.Default}}`" + `){{end}}
{{- end}}
{{if .Examples}}
## Examples
{{range .Examples}}
{{.Description}}

` + "```" + `
{{.Command}}
` + "```" + `
{{end}}{{end}}
_snapdiff {{.Version}}, {{.Date}}_
`))

var manTemplate = template.Must(template.New("man").Parse(`.TH SNAPDIFF-{{.IDUpper}} 1 "{{.Date}}" "snapdiff {{.Version}}"
.SH NAME
snapdiff-{{.ID}} \- {{.Short}}
.SH SYNOPSIS
{{.Usage}}
.SH OPTIONS
{{- range .Flags}}
.TP
.B {{.Syntax}}
{{.Description}}{{if .Default}} (default {{.Default}}){{end}}
{{- end}}
{{- if .Examples}}
.SH EXAMPLES
{{- range .Examples}}
.PP
{{.Description}}
.IP
{{.Command}}
{{- end}}
{{- end}}
`))

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCSDIR")
		os.Exit(1)
	}
	docs := os.Args[1]

	app, err := command.InitApp(context.Background(), []string{"snapdiff"})
	if err != nil {
		panic(err)
	}

	examples, err := loadExamples(filepath.Join(docs, "examples.yaml"))
	if err != nil {
		panic(err)
	}

	version := getVersion()
	date := time.Now().Format("January 2, 2006")

	for _, sub := range subcommands(app, examples) {
		metadata := TemplateData{
			Subcommand: sub,
			Date:       date,
			Version:    version,
			IDUpper:    strings.ToUpper(sub.ID),
		}

		types := []Outputs{
			{Template: mdTemplate, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
			{Template: manTemplate, Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "snapdiff-", Suffix: ".1"},
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0755); err != nil {
				panic(err)
			}

			path := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Println("Generating", path)
			if err := writeFile(path, t.Template, metadata); err != nil {
				panic(err)
			}
		}
	}
}

func writeFile(path string, tmpl *template.Template, data TemplateData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close() //nolint:errcheck

	return render(file, tmpl, data)
}

func render(w io.Writer, tmpl *template.Template, data TemplateData) error {
	return tmpl.Execute(w, data)
}

// loadExamples reads a map of subcommand to examples. A missing file yields
// no examples.
func loadExamples(path string) (map[string][]Example, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var examples map[string][]Example
	if err := yaml.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return examples, nil
}

// subcommands describes each subcommand of app with flags sorted by name.
func subcommands(app *cli.Command, examples map[string][]Example) []Subcommand {
	var subs []Subcommand
	for _, cmd := range app.Commands {
		sub := Subcommand{
			ID:       cmd.Name,
			Short:    cmd.Usage,
			Usage:    cmd.UsageText,
			Examples: examples[cmd.Name],
		}

		for _, f := range cmd.Flags {
			sub.Flags = append(sub.Flags, describeFlag(f))
		}
		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})

		subs = append(subs, sub)
	}
	return subs
}

func describeFlag(f cli.Flag) Flag {
	names := f.Names()
	fl := Flag{ID: names[0]}

	var syntax []string
	for _, n := range names {
		if len(n) == 1 {
			syntax = append(syntax, "-"+n)
		} else {
			syntax = append(syntax, "--"+n)
		}
	}
	fl.Syntax = strings.Join(syntax, ", ")

	if df, ok := f.(cli.DocGenerationFlag); ok {
		fl.Description = df.GetUsage()
		if df.TakesValue() {
			fl.Syntax += " " + strings.ToUpper(names[0])
			fl.Default = strings.Trim(df.GetValue(), `"`)
		}
	}
	return fl
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
