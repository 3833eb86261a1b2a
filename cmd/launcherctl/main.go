// Command launcherctl drives the launcher library from a terminal: manifest
// acquisition, service status and token validation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	gocmd "github.com/goliatone/go-command"
	launcher "github.com/goliatone/go-launcher"
	launchercommand "github.com/goliatone/go-launcher/command"
	"github.com/goliatone/go-launcher/core"
	launcherquery "github.com/goliatone/go-launcher/query"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath  string
	launcherDir string
	remoteURL   string
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:          "launcherctl",
		Short:        "Inspect launcher distribution and auth services",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&flags.launcherDir, "launcher-dir", "", "launcher data directory")
	root.PersistentFlags().StringVar(&flags.remoteURL, "remote-url", "", "distribution manifest url")

	root.AddCommand(
		newDistributionCommand(flags),
		newStatusCommand(flags),
		newValidateCommand(flags),
	)
	return root
}

func newDistributionCommand(flags *rootFlags) *cobra.Command {
	var local, dev, refresh bool
	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Print the distribution manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := flags.launcher(cmd.Context())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if dev {
				if err := l.Commands().SetDevMode.Execute(ctx, launchercommand.SetDevModeMessage{Enabled: true}); err != nil {
					return err
				}
			}

			var doc json.RawMessage
			switch {
			case refresh:
				ctx = gocmd.ContextWithResult(ctx, gocmd.NewResult[json.RawMessage]())
				if err := l.Commands().RefreshDistribution.Execute(ctx, launchercommand.RefreshDistributionMessage{}); err != nil {
					return err
				}
				doc, _ = gocmd.ResultFromContext[json.RawMessage](ctx).Load()
			case local:
				doc, err = l.Queries().GetLocalDistribution.Query(ctx, launcherquery.GetLocalDistributionMessage{})
			default:
				doc, err = l.Queries().GetDistribution.Query(ctx, launcherquery.GetDistributionMessage{})
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "read the manifest from disk only")
	cmd.Flags().BoolVar(&dev, "dev", false, "use the dev manifest file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "force a fresh acquisition")
	cmd.MarkFlagsMutuallyExclusive("local", "refresh")
	return cmd
}

func newStatusCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the auth service status table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := flags.launcher(cmd.Context())
			if err != nil {
				return err
			}
			res, err := l.Queries().ServiceStatus.Query(cmd.Context(), launcherquery.ServiceStatusMessage{})
			if err != nil {
				return err
			}
			if !res.OK() {
				fmt.Fprintf(cmd.ErrOrStderr(), "status check failed: %v\n", res.Error)
			}
			return writeJSON(cmd.OutOrStdout(), res.Data)
		},
	}
}

func newValidateCommand(flags *rootFlags) *cobra.Command {
	var accessToken, clientToken string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check whether an access token is still valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := flags.launcher(cmd.Context())
			if err != nil {
				return err
			}
			res, err := l.Queries().ValidateMojang.Query(cmd.Context(), launcherquery.ValidateMojangMessage{
				AccessToken: accessToken,
				ClientToken: clientToken,
			})
			if err != nil {
				return err
			}
			if !res.OK() {
				return fmt.Errorf("validate: %s: %w", res.ErrorCode(), res.Error)
			}
			return writeJSON(cmd.OutOrStdout(), map[string]bool{"valid": res.Data})
		},
	}
	cmd.Flags().StringVar(&accessToken, "access-token", "", "access token to validate")
	cmd.Flags().StringVar(&clientToken, "client-token", "", "client token bound to the access token")
	_ = cmd.MarkFlagRequired("access-token")
	_ = cmd.MarkFlagRequired("client-token")
	return cmd
}

func (f *rootFlags) launcher(ctx context.Context) (*launcher.Launcher, error) {
	opts := []launcher.Option{}
	if f.configPath != "" {
		opts = append(opts, launcher.WithConfigProvider(core.NewCfgxConfigProvider(core.YAMLFileLoader{Path: f.configPath})))
	}
	return launcher.New(ctx, launcher.Config{
		LauncherDir: f.launcherDir,
		RemoteURL:   f.remoteURL,
	}, opts...)
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
