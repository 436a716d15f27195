package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/viant/authclient"
	"github.com/viant/authclient/client"
	"github.com/viant/authclient/client/auth/navigation"
	"github.com/viant/scy"
	"github.com/viant/scy/cred"
)

// Run executes command line args, writing command output to stdout
func Run(args []string, stdout io.Writer) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			_, err = fmt.Fprintln(stdout, flagsErr.Message)
			return err
		}
		return err
	}
	level := slog.LevelInfo
	if options.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	loaded, err := authclient.LoadOptions(options.ConfigFile)
	if err != nil {
		return err
	}
	options.Options.Merge(loaded)
	if options.CookieJarURL == "" {
		options.CookieJarURL = defaultJarLocation()
	}
	ctx := context.Background()
	srv, err := authclient.New(ctx, &options.Options, newNavigator(options))
	if err != nil {
		return err
	}
	switch parser.Active.Name {
	case "login":
		return login(ctx, srv, options.Login, stdout)
	case "logout":
		srv.Logout(ctx)
		_, err = fmt.Fprintln(stdout, "signed out")
		return err
	case "status":
		state := "anonymous"
		if srv.Session().Authenticated() {
			state = "signed in"
		}
		_, err = fmt.Fprintf(stdout, "%s (%s)\n", state, options.APIBaseURL)
		return err
	case "get":
		return get(ctx, srv, options.Get, stdout)
	}
	return fmt.Errorf("unsupported command: %v", parser.Active.Name)
}

// newNavigator logs the login location, or opens it when --browser is set
func newNavigator(options *Options) navigation.Navigator {
	if options.Browser {
		return navigation.NewBrowser(options.FrontendURL, slog.Default())
	}
	return &navigation.Log{FrontendURL: options.FrontendURL, Logger: slog.Default()}
}

func login(ctx context.Context, srv *authclient.Service, command *LoginCommand, stdout io.Writer) error {
	email, password := command.Email, command.Password
	if command.SecretURL != "" {
		basic, err := loadCredentials(ctx, command.SecretURL, command.SecretKey)
		if err != nil {
			return err
		}
		email, password = basic.Username, basic.Password
	}
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required, use --email/--password or --secret")
	}
	if _, err := srv.Login(ctx, email, password); err != nil {
		return fmt.Errorf("failed to sign in %v: %w", email, err)
	}
	_, err := fmt.Fprintf(stdout, "signed in as %s\n", email)
	return err
}

func loadCredentials(ctx context.Context, URL, key string) (*cred.Basic, error) {
	secrets := scy.New()
	secret, err := secrets.Load(ctx, scy.NewResource(&cred.Basic{}, URL, key))
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials %v: %w", URL, err)
	}
	basic, ok := secret.Target.(*cred.Basic)
	if !ok {
		return nil, fmt.Errorf("unexpected credentials type: %T", secret.Target)
	}
	return basic, nil
}

func get(ctx context.Context, srv *authclient.Service, command *GetCommand, stdout io.Writer) error {
	var target *client.Client
	switch command.API {
	case "github":
		target = srv.GitHub()
	case "internal":
		target = srv.Internal()
	default:
		target = srv.App()
	}
	var body []byte
	if _, err := target.Get(ctx, command.Args.Path, &body); err != nil {
		return err
	}
	_, err := fmt.Fprintln(stdout, string(body))
	return err
}

func defaultJarLocation() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".authclient", "cookies.json")
}
