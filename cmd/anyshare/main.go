package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anyproto/any-share/accountservice"
	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/config"
	"github.com/anyproto/any-share/corenode/corenodeclient"
	"github.com/anyproto/any-share/corenode/inboxclient"
	"github.com/anyproto/any-share/dht/dhtclient"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/localstore"
	"github.com/anyproto/any-share/metric"
	"github.com/anyproto/any-share/usercontext"
	"github.com/anyproto/any-share/util/crypto"
)

var log = logger.NewNamed("main")

var (
	configPath   string
	removeAfter  bool
	closeTimeout = time.Minute
)

var rootCmd = &cobra.Command{
	Use:           "anyshare",
	Short:         "Identity directory and follow request client",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       app.VersionDescription(),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "etc/anyshare.yml", "path to config file")
	requestsCmd.Flags().BoolVar(&removeAfter, "remove", false, "remove decoded requests from the core node")
	rootCmd.AddCommand(keygenCmd, whoamiCmd, registerCmd, followCmd, requestsCmd, reconcileCmd, listenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Print a random identity for the account section of the config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := identity.Random()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "publicKeys: %s\nsecretKeys: %s\n", id.Public(), crypto.EncodeKeyToString(id))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the configured account and its registration",
	Args:  cobra.NoArgs,
	RunE: withUser(func(ctx context.Context, cmd *cobra.Command, a *app.App, user usercontext.UserContext) error {
		acc := app.MustComponent[accountservice.Service](a).Account()
		registered, err := user.IsRegistered(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "username:   %s\n", acc.Username)
		fmt.Fprintf(out, "publicKeys: %s\n", acc.Identity.Public())
		fmt.Fprintf(out, "registered: %v\n", registered)
		fmt.Fprintf(out, "directory:  version %d, %d entries\n", user.StaticData().Version(), user.StaticData().Len())
		return nil
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the account username",
	Args:  cobra.NoArgs,
	RunE: withUser(func(ctx context.Context, cmd *cobra.Command, a *app.App, user usercontext.UserContext) error {
		return user.Register(ctx)
	}),
}

var followCmd = &cobra.Command{
	Use:   "follow <username>",
	Short: "Grant a user write access to a new shared location",
	Args:  cobra.ExactArgs(1),
	RunE: withUser(func(ctx context.Context, cmd *cobra.Command, a *app.App, user usercontext.UserContext) error {
		if _, err := user.LoadStaticData(ctx); err != nil {
			return fmt.Errorf("load directory: %w", err)
		}
		res, err := user.SendFollowRequestTo(ctx, args0(cmd))
		if res != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "op %s: %s (reached %s)\n", res.OpId, res.State, res.Reached)
		}
		return err
	}),
}

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List follow requests addressed to the account",
	Args:  cobra.NoArgs,
	RunE: withUser(func(ctx context.Context, cmd *cobra.Command, a *app.App, user usercontext.UserContext) error {
		raws, err := user.GetFollowRequests(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, d := range user.DecodeFollowRequests(raws) {
			if d.Err != nil {
				fmt.Fprintf(out, "%d: %v\n", i, d.Err)
				continue
			}
			fmt.Fprintf(out, "%d: owner %s writer %s\n", i, d.Capability.Owner(), d.Capability.Writer())
			if removeAfter {
				if err = user.RemoveFollowRequest(ctx, d.Envelope); err != nil {
					return err
				}
			}
		}
		return nil
	}),
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Report sharing keys authorized without a directory entry",
	Args:  cobra.NoArgs,
	RunE: withUser(func(ctx context.Context, cmd *cobra.Command, a *app.App, user usercontext.UserContext) error {
		if _, err := user.LoadStaticData(ctx); err != nil {
			return fmt.Errorf("load directory: %w", err)
		}
		orphans, err := user.Reconcile(ctx)
		if err != nil {
			return err
		}
		for _, o := range orphans {
			fmt.Fprintf(cmd.OutOrStdout(), "orphan %s local=%v\n", o.Writer, o.Local)
		}
		return nil
	}),
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Poll the inbox and print new follow requests until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := bootstrap()
		if err != nil {
			return err
		}
		inbox := inboxclient.New()
		a.Register(inbox)
		out := cmd.OutOrStdout()
		if err = inbox.SetMessageReceiver(func(requests []inboxclient.Request) {
			for _, r := range requests {
				fmt.Fprintf(out, "follow request: owner %s writer %s\n", r.Capability.Owner(), r.Capability.Writer())
			}
		}); err != nil {
			return err
		}
		if err = a.Start(ctx); err != nil {
			return fmt.Errorf("can't start app: %w", err)
		}
		log.Info("listening", zap.String("version", a.Version()))

		exit := make(chan os.Signal, 1)
		signal.Notify(exit, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
		sig := <-exit
		log.Info("received exit signal, stop app", zap.String("signal", fmt.Sprint(sig)))
		return closeApp(a)
	},
}

type userFunc func(ctx context.Context, cmd *cobra.Command, a *app.App, user usercontext.UserContext) error

// withUser starts the application for a single command and closes it after.
func withUser(f userFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := context.Background()
		a, err := bootstrap()
		if err != nil {
			return err
		}
		if err = a.Start(ctx); err != nil {
			return fmt.Errorf("can't start app: %w", err)
		}
		defer func() {
			if closeErr := closeApp(a); err == nil {
				err = closeErr
			}
		}()
		return f(ctx, cmd, a, app.MustComponent[usercontext.UserContext](a))
	}
}

func args0(cmd *cobra.Command) string {
	return cmd.Flags().Arg(0)
}

func bootstrap() (*app.App, error) {
	conf, err := config.NewFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("can't open config file: %w", err)
	}
	conf.GetLog().ApplyGlobal()
	a := new(app.App)
	a.Register(conf).
		Register(metric.New()).
		Register(accountservice.New()).
		Register(corenodeclient.New()).
		Register(dhtclient.New()).
		Register(localstore.New()).
		Register(usercontext.New())
	return a, nil
}

func closeApp(a *app.App) error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return a.Close(ctx)
}
