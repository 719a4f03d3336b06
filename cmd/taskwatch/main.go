// Command taskwatch logs in to a task management server and prints task
// notifications for the logged-in user as they arrive.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/BetulAktoprak/task-management-system/internal/config"
	"github.com/BetulAktoprak/task-management-system/internal/events"
	"github.com/BetulAktoprak/task-management-system/internal/notifyclient"
	"github.com/BetulAktoprak/task-management-system/internal/platform/logger"
)

type options struct {
	server     string
	email      string
	password   string
	logLevel   string
	window     time.Duration
	maxRetries uint64
}

func parseFlags(args []string) (options, error) {
	opts := options{password: os.Getenv("TASKWATCH_PASSWORD")}

	flags := pflag.NewFlagSet("taskwatch", pflag.ContinueOnError)
	flags.StringVarP(&opts.server, "server", "s", "http://localhost:8080", "server base URL")
	flags.StringVarP(&opts.email, "email", "e", "", "account email")
	flags.StringVarP(&opts.password, "password", "p", opts.password, "account password (default $TASKWATCH_PASSWORD)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.DurationVar(&opts.window, "dedup-window", notifyclient.DefaultDedupWindow, "suppress repeats of an event within this window")
	flags.Uint64Var(&opts.maxRetries, "max-retries", 10, "reconnect attempts after the channel drops")
	if err := flags.Parse(args); err != nil {
		return opts, err
	}

	if opts.email == "" || opts.password == "" {
		return opts, errors.New("--email and --password (or $TASKWATCH_PASSWORD) are required")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "taskwatch:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out, logOut io.Writer) error {
	log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: opts.logLevel}, logOut)
	if err != nil {
		return err
	}

	session, err := login(ctx, opts.server, opts.email, opts.password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "logged in as %s (%s), credential valid until %s\n",
		session.Name, session.Role, session.Expiration.Local().Format(time.Kitchen))

	hubURL, err := hubURL(opts.server)
	if err != nil {
		return err
	}

	filter := notifyclient.NewFilter(session.UserID, printer(out),
		notifyclient.WithWindow(opts.window),
		notifyclient.WithFilterLogger(log))

	stateChanges := make(chan notifyclient.State, 8)
	mgr := notifyclient.NewManager(notifyclient.NewWSDialer(hubURL), notifyclient.Options{
		MaxRetries: opts.maxRetries,
		Logger:     log,
		OnStateChange: func(_, to notifyclient.State) {
			select {
			case stateChanges <- to:
			default:
			}
		},
	})
	defer mgr.Close()

	if _, err := mgr.Open(ctx, session.AccessToken, filter.Handle); err != nil {
		return err
	}
	fmt.Fprintln(out, "watching for task notifications, press Ctrl+C to stop")

	for {
		select {
		case <-ctx.Done():
			return nil
		case state := <-stateChanges:
			fmt.Fprintf(out, "channel %s\n", state)
			if state == notifyclient.StateDisconnected {
				return errors.New("notification channel lost; log in again to resume")
			}
		}
	}
}

func printer(out io.Writer) func(events.Message) {
	return func(msg events.Message) {
		p := msg.Payload
		assignee := "unassigned"
		if p.AssignedUserName != nil {
			assignee = *p.AssignedUserName
		}
		switch msg.Name {
		case events.TaskAssigned:
			fmt.Fprintf(out, "[assigned to you] #%d %s (%s)\n", p.ID, p.Title, p.ProjectName)
		default:
			fmt.Fprintf(out, "[updated] #%d %s (%s) status=%s assignee=%s\n",
				p.ID, p.Title, p.ProjectName, p.Status, assignee)
		}
	}
}
