package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/typepipe/config"
	"github.com/jonwraymond/typepipe/flush"
	"github.com/jonwraymond/typepipe/health"
)

// Version is set at build time.
var Version = "dev"

var (
	errVerifyFailed = errors.New("manifests do not match the configured participant configuration")
	errUnhealthy    = errors.New("unhealthy")
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed, color.Bold)
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "typepipe",
		Short:         "Inspect and verify flushed typepipe assemblies",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("no-color", false, "disable colored output")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
	}

	root.AddCommand(newInspectCommand())
	root.AddCommand(newVerifyCommand())
	root.AddCommand(newHealthCommand())
	return root
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <manifest|dir>...",
		Short: "Print the configuration ID and types of flushed manifests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPaths(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range paths {
				m, err := flush.Read(path)
				if err != nil {
					return err
				}
				printManifest(out, path, m)
			}
			return nil
		},
	}
}

func newVerifyCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "verify [manifest|dir]...",
		Short: "Check that manifests were generated with the configured participant configuration",
		Long: `Verify reads the participant configuration ID from the config file and
compares it with every manifest. Without arguments the configured flush
directory is checked. Any mismatch exits with a non-zero status.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{cfg.FlushDirectory}
			}
			paths, err := expandPaths(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			mismatches := 0
			for _, path := range paths {
				m, err := flush.Read(path)
				if err != nil {
					return err
				}
				if m.ConfigurationID == cfg.ParticipantConfigurationID {
					okColor.Fprintf(out, "ok       %s\n", path)
					continue
				}
				mismatches++
				failColor.Fprintf(out, "mismatch %s (%q, want %q)\n", path, m.ConfigurationID, cfg.ParticipantConfigurationID)
			}
			if mismatches > 0 {
				return fmt.Errorf("%w: %d of %d", errVerifyFailed, mismatches, len(paths))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "typepipe.toml", "path to the typepipe configuration file")
	return cmd
}

func newHealthCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the configured flush directory is usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			agg := health.NewAggregator()
			agg.Register(health.NewFlushDirectoryChecker(cfg.FlushDirectory))
			results := agg.CheckAll(cmd.Context())
			printHealth(cmd.OutOrStdout(), results)

			if health.OverallStatus(results) == health.StatusUnhealthy {
				return errUnhealthy
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "typepipe.toml", "path to the typepipe configuration file")
	return cmd
}

// expandPaths replaces directories by the manifests they contain.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		listed, err := flush.List(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, listed...)
	}
	return paths, nil
}

func printManifest(out io.Writer, path string, m *flush.Manifest) {
	headingColor.Fprintln(out, path)
	labelColor.Fprint(out, "  configuration: ")
	fmt.Fprintln(out, m.ConfigurationID)
	labelColor.Fprint(out, "  schema:        ")
	fmt.Fprintln(out, m.Schema)

	labelColor.Fprintf(out, "  proxy types (%d)\n", len(m.ProxyTypes))
	for _, p := range m.ProxyTypes {
		fmt.Fprintf(out, "    %s -> %s\n", p.Name, p.RequestedType)
	}
	labelColor.Fprintf(out, "  additional types (%d)\n", len(m.AdditionalTypes))
	for _, name := range m.AdditionalTypes {
		fmt.Fprintf(out, "    %s\n", name)
	}
}

func printHealth(out io.Writer, results map[string]health.Result) {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r := results[name]
		c := okColor
		switch r.Status {
		case health.StatusDegraded:
			c = warnColor
		case health.StatusUnhealthy:
			c = failColor
		}
		c.Fprintf(out, "%-9s %s: %s", r.Status, name, r.Message)
		if r.Error != nil {
			fmt.Fprintf(out, " (%v)", r.Error)
		}
		fmt.Fprintln(out)
	}
}
