package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	config "github.com/edward-ap/scopeview/internal/config"
	events "github.com/edward-ap/scopeview/internal/events"
	fonts "github.com/edward-ap/scopeview/internal/fonts"
	logging "github.com/edward-ap/scopeview/internal/logging"
	options "github.com/edward-ap/scopeview/internal/options"
)

// createOptionsCommand groups the display options subcommands.
func createOptionsCommand(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Inspect or change display options",
	}
	cmd.AddCommand(
		createOptionsShowCommand(fs),
		createOptionsSetCommand(fs),
	)
	return cmd
}

// openCLISession is openSession with the log going to stderr instead of the
// rotating file.
func openCLISession(cmd *cobra.Command, fs afero.Fs) (*session, error) {
	return openSession(cmd, fs, logging.Config{
		Writer: zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: color.NoColor},
	})
}

func createOptionsShowCommand(fs afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current display options as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openCLISession(cmd, fs)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(s.store.Options()); err != nil {
				return fmt.Errorf("failed to encode options: %w", err)
			}
			return enc.Close()
		},
	}
}

func createOptionsSetCommand(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change display options",
		Long: "Change display options the same way the options dialog does.\n" +
			"Only the flags given are changed; the config is saved once if anything differs.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openCLISession(cmd, fs)
			if err != nil {
				return err
			}
			edited, err := editedFromFlags(cmd, s.store.Options())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("font") {
				if err := checkFontFamily(newFontProvider(fs, s.log), edited.FontName); err != nil {
					return err
				}
			}

			ch, err := options.NewController(s.store, events.NewBus(), s.log).Apply(edited)
			if err != nil {
				return fmt.Errorf("failed to apply options: %w", err)
			}

			out := cmd.OutOrStdout()
			if !ch.Any() {
				_, err = fmt.Fprintln(out, color.YellowString("no changes"))
				return err
			}
			_, err = fmt.Fprintf(out, "%s %s\n", color.GreenString("updated:"), ch)
			return err
		},
	}

	f := cmd.Flags()
	f.Bool("quick-scroll", false, "Quick scroll")
	f.Bool("trig-in-middle", false, "Show the trigger position in the middle")
	f.Bool("profile-in-bar", false, "Show the device profile in the toolbar")
	f.Bool("swap-back-buffer", false, "Use abort data")
	f.Bool("auto-scroll-latest", false, "Auto scroll to the latest data")
	f.Float64("font-size", config.DefaultFontSize, "UI font size")
	f.Float64("tooltip-font-size", config.DefaultFontSize, "Tooltip font size")
	f.String("font", "", "Installed UI font family (empty for the default)")
	return cmd
}

// editedFromFlags copies the explicitly passed flags over current.
func editedFromFlags(cmd *cobra.Command, current config.AppOptions) (config.AppOptions, error) {
	flags := cmd.Flags()
	edited := current

	bools := []struct {
		name string
		dst  *bool
	}{
		{"quick-scroll", &edited.QuickScroll},
		{"trig-in-middle", &edited.TrigPosDisplayInMid},
		{"profile-in-bar", &edited.DisplayProfileInBar},
		{"swap-back-buffer", &edited.SwapBackBufferAlways},
		{"auto-scroll-latest", &edited.AutoScrollLatestData},
	}
	for _, b := range bools {
		if !flags.Changed(b.name) {
			continue
		}
		v, err := flags.GetBool(b.name)
		if err != nil {
			return current, fmt.Errorf("failed to get %s flag: %w", b.name, err)
		}
		*b.dst = v
	}

	sizes := []struct {
		name string
		dst  *float64
	}{
		{"font-size", &edited.FontSize},
		{"tooltip-font-size", &edited.TooltipFontSize},
	}
	for _, sz := range sizes {
		if !flags.Changed(sz.name) {
			continue
		}
		v, err := flags.GetFloat64(sz.name)
		if err != nil {
			return current, fmt.Errorf("failed to get %s flag: %w", sz.name, err)
		}
		*sz.dst = v
	}

	if flags.Changed("font") {
		v, err := flags.GetString("font")
		if err != nil {
			return current, fmt.Errorf("failed to get font flag: %w", err)
		}
		edited.FontName = strings.TrimSpace(v)
	}
	return edited, nil
}

// checkFontFamily rejects a family the provider does not list. Empty selects
// the default font and is always accepted.
func checkFontFamily(p fonts.Provider, family string) error {
	if family == "" {
		return nil
	}
	for _, name := range p.Families() {
		if name == family {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", fonts.ErrUnknownFamily, family)
}
