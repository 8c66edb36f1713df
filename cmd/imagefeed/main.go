package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"imagefeed/pkg/client"
	"imagefeed/pkg/feed"
	"imagefeed/pkg/session"
	"imagefeed/pkg/upload"
	"imagefeed/pkg/view"
	"imagefeed/pkg/vote"

	"go.uber.org/zap"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, _ := zap.NewProduction()
	defer zapLogger.Sync() // flushes buffer, if any
	logger := zapLogger.Sugar()

	app := NewApplication(cfg, logger, os.Stdin, os.Stdout)
	err = app.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

type cmdHandler func(ctx context.Context, args []string)

type Application struct {
	cfg    *Config
	logger *zap.SugaredLogger
	in     io.Reader
	out    io.Writer

	api      *client.Client
	fetcher  *feed.Fetcher
	filter   *feed.Filter
	board    *vote.Board
	uploads  *upload.Coordinator
	store    *session.FileStore
	renderer *view.Renderer

	sess    *session.Session
	feedGen uint64
	cmds    map[string]cmdHandler
	msgs    chan string
}

func NewApplication(cfg *Config, logger *zap.SugaredLogger, in io.Reader, out io.Writer) *Application {
	a := &Application{
		cfg:    cfg,
		logger: logger,
		in:     in,
		out:    out,
		msgs:   make(chan string, 8),
	}

	a.api = client.New(cfg.ServerAddr, cfg.Timeout, logger)
	a.fetcher = feed.NewFetcher(a.api, logger)
	a.filter = feed.NewFilter(a.fetcher)
	a.board = vote.NewBoard(a.api, logger, cfg.Cooldown)
	a.uploads = upload.NewCoordinator(a.api, logger, a.filter.Refetch)
	a.store = session.NewFileStore(cfg.SessionFile, logger)
	a.renderer = &view.Renderer{ImageURL: a.api.ImageURL}

	a.cmds = map[string]cmdHandler{
		"help":     a.cmdHelp,
		"list":     a.cmdList,
		"all":      a.cmdAll,
		"tag":      a.cmdTag,
		"up":       a.cmdUpvote,
		"down":     a.cmdDownvote,
		"upload":   a.cmdUpload,
		"login":    a.cmdLogin,
		"register": a.cmdRegister,
		"logout":   a.cmdLogout,
		"whoami":   a.cmdWhoami,
	}

	return a
}

func (a *Application) Run(ctx context.Context) error {
	sess, err := a.store.Load()
	if err != nil {
		a.logger.Errorf("session load: %v", err)
	}
	a.sess = sess
	if sess != nil {
		fmt.Fprintf(a.out, "logged in as %s\n", sess.User.Username)
	}

	fmt.Fprintln(a.out, "imagefeed ready, type 'help' for commands")
	a.filter.Clear(ctx)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if a.Execute(ctx, line) {
				return nil
			}
		case <-a.fetcher.Updates():
			a.renderFeed()
		case id := <-a.board.Updates():
			a.renderVoteCard(id)
		case msg := <-a.msgs:
			fmt.Fprintln(a.out, msg)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Execute runs one command line; the returned bool reports a quit request.
func (a *Application) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	cmd, args := fields[0], fields[1:]
	if cmd == "quit" || cmd == "exit" {
		return true
	}

	handler, ok := a.cmds[cmd]
	if !ok {
		fmt.Fprintln(a.out, "unknown command, type 'help'")
		return false
	}

	if a.sess != nil {
		ctx = session.ContextWithSession(ctx, a.sess)
	}
	handler(ctx, args)
	return false
}

func (a *Application) renderFeed() {
	st := a.fetcher.Snapshot()
	if st.Gen != a.feedGen {
		a.board.Sync(st.Images)
		a.feedGen = st.Gen
	}

	a.renderer.Render(a.out, st, a.board)
}

// renderVoteCard redraws the one card whose vote state changed. If the list
// was replaced since the vote, the full render path resyncs the board instead.
func (a *Application) renderVoteCard(id int64) {
	st := a.fetcher.Snapshot()
	if st.Gen != a.feedGen {
		a.renderFeed()
		return
	}

	for _, img := range st.Images {
		if img.ID == id {
			a.renderer.RenderCard(a.out, img, a.board)
			return
		}
	}
}

// say queues a line for the run loop to print between renders.
func (a *Application) say(msg string) {
	select {
	case a.msgs <- msg:
	default:
		a.logger.Errorf("message dropped: %s", msg)
	}
}

func (a *Application) cmdHelp(ctx context.Context, args []string) {
	fmt.Fprintln(a.out, `commands:
  list                                  show the current feed
  tag <t>                               filter the feed by tag
  all                                   drop the tag filter
  up <id> / down <id>                   vote on an image
  upload <path> <name> <tags> <desc>    share a new image (login required)
  login <user> <pass>                   log in
  register <user> <pass>                create an account
  logout                                forget the stored session
  whoami                                show the logged in user
  quit                                  leave`)
}

func (a *Application) cmdList(ctx context.Context, args []string) {
	a.renderFeed()
}

func (a *Application) cmdAll(ctx context.Context, args []string) {
	a.filter.Clear(ctx)
}

func (a *Application) cmdTag(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: tag <t>")
		return
	}

	a.filter.Set(ctx, args[0])
}

func (a *Application) cmdUpvote(ctx context.Context, args []string) {
	a.vote(ctx, args, vote.Up)
}

func (a *Application) cmdDownvote(ctx context.Context, args []string) {
	a.vote(ctx, args, vote.Down)
}

func (a *Application) vote(ctx context.Context, args []string, dir vote.Direction) {
	if len(args) != 1 {
		fmt.Fprintf(a.out, "usage: %s <id>\n", dir)
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "image id must be a number")
		return
	}

	if !a.board.Submit(ctx, id, dir) {
		fmt.Fprintln(a.out, "no such image in the current feed")
	}
}

func (a *Application) cmdUpload(ctx context.Context, args []string) {
	sess, err := session.SessionFromContext(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "login first")
		return
	}
	if len(args) < 4 {
		fmt.Fprintln(a.out, "usage: upload <path> <name> <tags> <description>")
		return
	}

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(a.out, "cannot read %s: %v\n", path, err)
		return
	}

	form := upload.Form{
		FileName:    filepath.Base(path),
		File:        file,
		Name:        args[1],
		Tags:        args[2],
		Description: strings.Join(args[3:], " "),
	}

	// the round trip runs off the loop goroutine, other commands stay usable
	go func() {
		defer file.Close()

		a.logger.Infof("upload %q by %s", form.Name, sess.User.Username)
		msg, err := a.uploads.Submit(ctx, form)
		if err != nil {
			// entered values stay in the user's shell history for a retry
			if vErr, ok := err.(*upload.ValidationError); ok {
				a.say(vErr.Error())
			} else {
				a.say(client.UserMessage(err))
			}
			return
		}

		a.say(msg)
	}()
}

func (a *Application) cmdLogin(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "usage: login <user> <pass>")
		return
	}

	u, err := a.api.Login(ctx, args[0], args[1])
	if err != nil {
		fmt.Fprintln(a.out, client.UserMessage(err))
		return
	}

	sess, err := a.store.Open(u)
	if err != nil {
		a.logger.Errorf("session save: %v", err)
	}
	a.sess = sess

	fmt.Fprintf(a.out, "logged in as %s\n", u.Username)
}

func (a *Application) cmdRegister(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "usage: register <user> <pass>")
		return
	}

	msg, err := a.api.Register(ctx, args[0], args[1])
	if err != nil {
		fmt.Fprintln(a.out, client.UserMessage(err))
		return
	}

	fmt.Fprintln(a.out, msg)
}

func (a *Application) cmdLogout(ctx context.Context, args []string) {
	err := a.store.Clear()
	if err != nil {
		a.logger.Errorf("session clear: %v", err)
	}
	a.sess = nil

	fmt.Fprintln(a.out, "logged out")
}

func (a *Application) cmdWhoami(ctx context.Context, args []string) {
	sess, err := session.SessionFromContext(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "not logged in")
		return
	}

	fmt.Fprintf(a.out, "%s (user %d)\n", sess.User.Username, sess.User.ID)
}
