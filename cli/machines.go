package cli

// This file contains the machines command for displaying the known machine
// defaults.

import (
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/esmtest/esmtest/launcher"
	"github.com/esmtest/esmtest/machine"
)

func (a *App) machines(ctx *cli.Context) error {
	registry := machine.DefaultRegistry()
	if configPath := ctx.String("machine-config"); configPath != "" {
		if err := registry.MergeFile(configPath); err != nil {
			return err
		}
	}
	renderMachines(os.Stdout, registry)
	return nil
}

// renderMachines writes the registry as a table, one row per machine, sorted
// by name.
func renderMachines(out io.Writer, registry machine.Registry) {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Machine", "Launcher", "Scratch Dir", "Baseline Dir", "Account Required", "Queue", "Walltime"})
	for _, name := range names {
		defaults := registry[name]
		launcherType := defaults.Launcher
		if launcherType == "" {
			launcherType = launcher.TypeNoBatch
		}
		t.AppendRow(table.Row{
			name,
			string(launcherType),
			defaults.ScratchDir,
			defaults.BaselineDir,
			defaults.AccountRequired,
			defaults.LauncherQueue,
			defaults.LauncherWalltime,
		})
	}
	t.Render()
}
