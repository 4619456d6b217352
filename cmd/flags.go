package cmd

import (
	"github.com/spf13/cobra"

	"perkgrid/internal/widget"
)

// widgetFlags are the attribute flags shared by the commands that render a
// perk grid.
type widgetFlags struct {
	display   string
	gridTitle string
	attrs     map[string]string

	offline     bool
	fixturesDir string
}

func (f *widgetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.display, "display", "", "Grid display: grid, list or responsive")
	cmd.Flags().StringVar(&f.gridTitle, "grid-title", "", "Title shown in the grid's corner cell")
	cmd.Flags().StringToStringVar(&f.attrs, "attr", nil, "Any perk-grid attribute, e.g. --attr min-width-perk=250")
	cmd.Flags().BoolVar(&f.offline, "offline", false, "Serve the built-in sample instead of calling the API")
	cmd.Flags().StringVar(&f.fixturesDir, "fixtures", "", "Directory of <event-id>.json fixtures to use instead of the API")
}

// dataset returns the attribute overrides given on the command line, keyed
// by dataset name. --display and --grid-title win over --attr.
func (f *widgetFlags) dataset() map[string]string {
	out := make(map[string]string, len(f.attrs)+2)
	for k, v := range f.attrs {
		out[widget.DatasetKey(k)] = v
	}
	if f.display != "" {
		out["display"] = f.display
	}
	if f.gridTitle != "" {
		out["gridTitle"] = f.gridTitle
	}
	return out
}
