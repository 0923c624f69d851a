package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/purujawa06-bot/BOT-WEB/pkg/logger"
	"github.com/purujawa06-bot/BOT-WEB/pkg/provider"
	"github.com/purujawa06-bot/BOT-WEB/pkg/tiktok"
)

// IPLookup is the one-shot public IP collaborator.
type IPLookup interface {
	FetchPublicIP(ctx context.Context) (string, error)
}

// MediaResolver is the one-shot media metadata collaborator.
type MediaResolver interface {
	Resolve(ctx context.Context, url string) (*tiktok.Result, error)
}

// Sentinel errors returned by Submit and SupplyParameter. None of them
// reach the transcript; they tell the input surface why nothing happened.
var (
	ErrEmptyInput     = errors.New("chat: empty input")
	ErrBusy           = errors.New("chat: a command is already executing")
	ErrNoPending      = errors.New("chat: no parameter request pending")
	ErrEmptyParameter = errors.New("chat: empty parameter")
)

const defaultPingDelay = 500 * time.Millisecond

// Dispatcher classifies raw input against the command registry, runs
// commands against the collaborators, and writes every outcome to the
// transcript. At most one execution runs at a time; the busy gate rejects
// submissions while a previous one (including its streaming tail) is still
// settling.
type Dispatcher struct {
	registry   *Registry
	transcript *Transcript
	ai         provider.Responder
	ip         IPLookup
	media      MediaResolver
	log        *logger.Logger
	pingDelay  time.Duration

	busy    atomic.Bool
	mu      sync.Mutex
	pending *Command
}

// DispatcherOption tweaks dispatcher construction.
type DispatcherOption func(*Dispatcher)

// WithPingDelay overrides the simulated /ping latency.
func WithPingDelay(d time.Duration) DispatcherOption {
	return func(dp *Dispatcher) { dp.pingDelay = d }
}

// NewDispatcher wires the dispatcher to its transcript, registry, and
// collaborators. A nil logger is replaced with a no-op logger.
func NewDispatcher(transcript *Transcript, registry *Registry, ai provider.Responder, ip IPLookup, media MediaResolver, log *logger.Logger, opts ...DispatcherOption) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	d := &Dispatcher{
		registry:   registry,
		transcript: transcript,
		ai:         ai,
		ip:         ip,
		media:      media,
		log:        log,
		pingDelay:  defaultPingDelay,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Busy reports whether an execution phase is in progress. Input surfaces
// disable themselves on this signal; Submit also enforces it.
func (d *Dispatcher) Busy() bool {
	return d.busy.Load()
}

// Pending returns the command currently awaiting a parameter, if any.
func (d *Dispatcher) Pending() (Command, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return Command{}, false
	}
	return *d.pending, true
}

// Submit handles one line of raw user input. Empty input is a no-op.
// Otherwise the raw text is appended as a User message, then either a
// parameter request is opened (bare invocation of a parameter-requiring
// command) or the command executes to completion, streaming included,
// before Submit returns. Execution outcomes, success and failure alike,
// land in the transcript, never in the returned error.
func (d *Dispatcher) Submit(ctx context.Context, raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ErrEmptyInput
	}

	d.mu.Lock()
	if !d.busy.CompareAndSwap(false, true) {
		d.mu.Unlock()
		return ErrBusy
	}
	// A new submission discards any prior parameter request.
	d.pending = nil

	d.transcript.Append(SenderUser, raw)

	token, remainder := splitInput(trimmed)
	if cmd, ok := d.registry.Lookup(token); ok && cmd.RequiresParam && remainder == "" {
		d.pending = &cmd
		d.busy.Store(false)
		d.mu.Unlock()
		d.log.Debug("awaiting parameter for %s", cmd.Token)
		return nil
	}
	d.mu.Unlock()

	defer d.busy.Store(false)
	d.run(ctx, token, remainder, trimmed)
	return nil
}

// SupplyParameter completes a pending parameter request. The earlier User
// message is rewritten in place when it still shows the bare invocation
// token; otherwise a fresh User message with the full invocation is
// appended (covers requests opened from the command menu).
func (d *Dispatcher) SupplyParameter(ctx context.Context, text string) error {
	param := strings.TrimSpace(text)

	d.mu.Lock()
	if d.pending == nil {
		d.mu.Unlock()
		return ErrNoPending
	}
	if param == "" {
		d.mu.Unlock()
		return ErrEmptyParameter
	}
	cmd := *d.pending
	if !d.busy.CompareAndSwap(false, true) {
		d.mu.Unlock()
		return ErrBusy
	}
	d.pending = nil

	full := cmd.Token + " " + param
	if last, ok := d.transcript.Last(); ok && last.Sender == SenderUser && strings.TrimSpace(last.Text) == cmd.Token {
		_ = d.transcript.SetText(last.ID, full)
	} else {
		d.transcript.Append(SenderUser, full)
	}
	d.mu.Unlock()

	defer d.busy.Store(false)
	d.run(ctx, cmd.Token, param, full)
	return nil
}

// CancelParameter discards a pending parameter request without touching
// the transcript.
func (d *Dispatcher) CancelParameter() {
	d.mu.Lock()
	d.pending = nil
	d.mu.Unlock()
}

// RequestParameter opens a parameter request directly, used when a
// parameter-requiring command is picked from the menu rather than typed.
// Any prior request is discarded.
func (d *Dispatcher) RequestParameter(cmd Command) {
	d.mu.Lock()
	d.pending = &cmd
	d.mu.Unlock()
}

// run resolves exactly one command invocation. Every branch writes its
// outcome to the transcript; the caller clears the busy gate once run
// returns, so streaming branches hold the gate until the stream settles.
func (d *Dispatcher) run(ctx context.Context, token, argument, full string) {
	start := time.Now()
	switch strings.ToLower(token) {
	case TokenPing:
		d.runPing(ctx)
	case TokenIP:
		d.runIPLookup(ctx)
	case TokenAI:
		d.streamReply(ctx, argument)
	case TokenTikTok:
		d.runMediaDownload(ctx, argument)
	default:
		if strings.HasPrefix(token, commandMarker) {
			d.transcript.Append(SenderBot, fmt.Sprintf(unknownTemplate, token))
		} else {
			// Free text goes to the AI with the full input as prompt.
			d.streamReply(ctx, full)
		}
	}
	d.log.Debug("resolved %q in %s", token, time.Since(start))
}

// runPing waits a fixed delay and replies. Deliberately simulated latency,
// not a connectivity check.
func (d *Dispatcher) runPing(ctx context.Context) {
	select {
	case <-time.After(d.pingDelay):
	case <-ctx.Done():
	}
	d.transcript.Append(SenderBot, pongText)
}

func (d *Dispatcher) runIPLookup(ctx context.Context) {
	ip, err := d.ip.FetchPublicIP(ctx)
	if err != nil {
		d.log.Warn("ip lookup failed: %v", err)
		d.transcript.Append(SenderBot, fmt.Sprintf(ipErrorTemplate, err.Error()))
		return
	}
	d.transcript.Append(SenderBot, fmt.Sprintf(ipTemplate, ip))
}

// runMediaDownload appends a placeholder immediately, then swaps it in
// place with either the resolved payload or a failure template. The swap
// targets the placeholder id; it is safe because the busy gate keeps any
// other execution from running concurrently.
func (d *Dispatcher) runMediaDownload(ctx context.Context, url string) {
	placeholder := d.transcript.Append(SenderBot, mediaPendingText)

	res, err := d.media.Resolve(ctx, url)
	if err != nil {
		d.log.Warn("media resolve failed: %v", err)
		_ = d.transcript.SetText(placeholder.ID, fmt.Sprintf(mediaErrorTemplate, err.Error()))
		return
	}

	payload := &MediaPayload{
		Title:           res.Title,
		CoverURL:        res.CoverURL,
		VideoURL:        res.VideoURL,
		VideoHDURL:      res.VideoHDURL,
		AudioURL:        res.AudioURL,
		AuthorName:      res.AuthorName,
		AuthorAvatarURL: res.AuthorAvatarURL,
	}
	if !payload.HasPlayableSource() {
		// The resolver reported success but there is nothing to download.
		_ = d.transcript.SetText(placeholder.ID, fmt.Sprintf(mediaErrorTemplate, mediaNoSourceMessage))
		return
	}
	_ = d.transcript.Replace(placeholder.ID, payload.Title, payload)
}

// splitInput separates the first whitespace-delimited word from the rest.
// The remainder is everything after the first whitespace run, empty when
// there is none.
func splitInput(trimmed string) (token, remainder string) {
	if i := strings.IndexAny(trimmed, " \t\n"); i >= 0 {
		return trimmed[:i], strings.TrimSpace(trimmed[i:])
	}
	return trimmed, ""
}
