// Package wordreplacer rewrites sentences by swapping content words for the
// longest synonym a thesaurus service knows, leaving grammatical words alone.
package wordreplacer

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cognicore/wordreplacer/pkg/wordreplacer/internalerr"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/lookup"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/sanitize"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/store"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/tagger"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/tagset"
)

// User-facing messages returned by Run.
const (
	MsgTooLong     = "The text you are typing is too long to process. Sorry."
	MsgRateLimited = "Try again later. API processing limit reached."
	MsgUnavailable = "Something went wrong. Try again later."
)

const (
	DefaultMaxInputLength = 500
	DefaultPunctuation    = ".,-?!()"
)

// Lookuper fetches thesaurus candidates for one sanitized word.
// *lookup.Client implements it.
type Lookuper interface {
	Lookup(ctx context.Context, word string) (lookup.Result, error)
}

// Options configures a Replacer. Tagger and Lookup are required; every
// other field has a default.
type Options struct {
	Tagger tagger.Tagger
	Lookup Lookuper
	Tags   *tagset.Table

	// Categories is the candidate category priority (default sim, syn).
	Categories []string
	// MaxInputLength is the character budget; longer input is rejected
	// before tagging or any lookup.
	MaxInputLength int
	// Punctuation lists the trailing characters carried over to a
	// replacement.
	Punctuation string

	Logger *zap.Logger
	// Recorder, when set, receives every run.
	Recorder store.Store
}

// Replacer is the substitution pipeline.
type Replacer struct {
	tagger      tagger.Tagger
	lookup      Lookuper
	tags        *tagset.Table
	categories  []string
	maxLen      int
	punctuation string
	log         *zap.Logger
	recorder    store.Store

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a Replacer from opts, filling defaults.
func New(opts Options) *Replacer {
	r := &Replacer{
		tagger:      opts.Tagger,
		lookup:      opts.Lookup,
		tags:        opts.Tags,
		categories:  opts.Categories,
		maxLen:      opts.MaxInputLength,
		punctuation: opts.Punctuation,
		log:         opts.Logger,
		recorder:    opts.Recorder,
		entropy:     ulid.Monotonic(rand.Reader, 0),
	}
	if r.tags == nil {
		r.tags = tagset.Default()
	}
	if len(r.categories) == 0 {
		r.categories = lookup.DefaultCategories
	}
	if r.maxLen <= 0 {
		r.maxLen = DefaultMaxInputLength
	}
	if r.punctuation == "" {
		r.punctuation = DefaultPunctuation
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

// Reason explains a per-token decision.
type Reason string

const (
	ReasonFunctionWord Reason = "function"
	ReasonEmpty        Reason = "empty"
	ReasonReplaced     Reason = "replaced"
	ReasonNotFound     Reason = "not_found"
	ReasonFailed       Reason = "failed"
)

// Decision is what happened to one input token.
type Decision struct {
	Token    tagger.Token
	WordType tagset.WordType
	Reason   Reason
	// Output is the segment emitted for this token.
	Output string
}

// Replaced reports whether the token was swapped for a candidate.
func (d Decision) Replaced() bool { return d.Reason == ReasonReplaced }

// Outcome is the result of a rewrite.
type Outcome struct {
	ID        string
	Input     string
	Output    string
	Decisions []Decision
}

// Rewrite runs text through the pipeline. It fails only with
// internalerr.ErrInputTooLong, internalerr.ErrRateLimited, a context error,
// or a tagger contract violation; per-word lookup problems fall back to the
// original word. On failure the returned Outcome carries no output.
func (r *Replacer) Rewrite(ctx context.Context, text string) (Outcome, error) {
	out := Outcome{ID: r.newID(), Input: text}

	if n := utf8.RuneCountInString(text); n > r.maxLen {
		r.log.Info("input rejected",
			zap.String("run", out.ID),
			zap.Int("length", n),
			zap.Int("max", r.maxLen))
		r.record(ctx, out, store.StatusTooLong)
		return out, fmt.Errorf("%w: %d characters (max %d)", internalerr.ErrInputTooLong, n, r.maxLen)
	}

	words := strings.Fields(text)
	tokens := r.tagger.Tag(words)
	if len(tokens) != len(words) {
		r.log.Error("tagger contract violated",
			zap.String("run", out.ID),
			zap.Int("words", len(words)),
			zap.Int("tokens", len(tokens)))
		r.record(ctx, out, store.StatusError)
		return out, fmt.Errorf("%w: tagger returned %d tokens for %d words",
			internalerr.ErrInvalidInput, len(tokens), len(words))
	}

	segments := make([]string, 0, len(tokens))
	decisions := make([]Decision, 0, len(tokens))
	for _, tok := range tokens {
		d, err := r.decide(ctx, tok)
		if err != nil {
			// Partial output is discarded; only the decisions made so far
			// are kept for the history record.
			out.Decisions = decisions
			status := store.StatusRateLimited
			if !errors.Is(err, internalerr.ErrRateLimited) {
				status = store.StatusCanceled
			}
			r.log.Warn("rewrite aborted",
				zap.String("run", out.ID),
				zap.String("word", tok.Word),
				zap.Error(err))
			r.record(ctx, out, status)
			out.Decisions = nil
			return out, err
		}
		decisions = append(decisions, d)
		segments = append(segments, d.Output)
	}

	out.Output = sanitize.StripEscapes(strings.Join(segments, " "))
	out.Decisions = decisions
	r.record(ctx, out, store.StatusOK)
	return out, nil
}

// Run rewrites text and maps the fatal conditions onto fixed messages.
func (r *Replacer) Run(ctx context.Context, text string) string {
	out, err := r.Rewrite(ctx, text)
	switch {
	case err == nil:
		return out.Output
	case errors.Is(err, internalerr.ErrInputTooLong):
		return MsgTooLong
	case errors.Is(err, internalerr.ErrRateLimited):
		return MsgRateLimited
	default:
		return MsgUnavailable
	}
}

// decide moves one token through the classification and lookup states.
// A non-nil error aborts the whole rewrite.
func (r *Replacer) decide(ctx context.Context, tok tagger.Token) (Decision, error) {
	d := Decision{Token: tok, Output: tok.Word}

	if r.tags.IsFunctionWord(tok.Tag) {
		d.Reason = ReasonFunctionWord
		return d, nil
	}
	d.WordType = r.tags.Classify(tok.Tag)

	query := sanitize.ForLookup(tok.Word)
	if query == "" {
		d.Reason = ReasonEmpty
		return d, nil
	}

	res, err := r.lookup.Lookup(ctx, query)
	switch {
	case errors.Is(err, internalerr.ErrRateLimited):
		return d, err
	case err == nil && res.Status == lookup.RateLimited:
		return d, internalerr.ErrRateLimited
	case ctx.Err() != nil:
		return d, ctx.Err()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return d, err
	case err == nil && res.Status != lookup.Success:
		err = fmt.Errorf("%w: lookup returned status %s", internalerr.ErrLookupFailed, res.Status)
	}
	if err != nil {
		r.log.Warn("lookup failed",
			zap.String("word", query),
			zap.Error(err))
		d.Reason = ReasonFailed
		return d, nil
	}

	candidate, err := lookup.SelectLongest(res.Candidates, d.WordType, r.categories)
	if err != nil {
		r.log.Debug("no candidate",
			zap.String("word", query),
			zap.Stringer("type", d.WordType),
			zap.Error(err))
		d.Reason = ReasonNotFound
		return d, nil
	}

	d.Reason = ReasonReplaced
	d.Output = candidate + r.trailingPunctuation(tok.Word)
	return d, nil
}

// trailingPunctuation returns the last character of word when it belongs to
// the punctuation class, or "".
func (r *Replacer) trailingPunctuation(word string) string {
	last, size := utf8.DecodeLastRuneInString(word)
	if size == 0 || !strings.ContainsRune(r.punctuation, last) {
		return ""
	}
	return string(last)
}

func (r *Replacer) newID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ulid.MustNew(ulid.Now(), r.entropy).String()
}

// record appends the run to history. Failures are logged, not returned.
func (r *Replacer) record(ctx context.Context, out Outcome, status string) {
	if r.recorder == nil {
		return
	}

	run := store.Run{
		ID:        out.ID,
		Input:     out.Input,
		Output:    out.Output,
		Status:    status,
		CreatedAt: time.Now().UTC(),
		Decisions: make([]store.Decision, 0, len(out.Decisions)),
	}
	for _, d := range out.Decisions {
		sd := store.Decision{
			Word:   d.Token.Word,
			Tag:    d.Token.Tag,
			Reason: string(d.Reason),
		}
		if d.Reason != ReasonFunctionWord {
			sd.WordType = d.WordType.String()
		}
		if d.Replaced() {
			sd.Replacement = d.Output
		}
		run.Decisions = append(run.Decisions, sd)
	}

	if err := r.recorder.AppendRun(context.WithoutCancel(ctx), run); err != nil {
		r.log.Warn("record run", zap.String("run", out.ID), zap.Error(err))
	}
}
