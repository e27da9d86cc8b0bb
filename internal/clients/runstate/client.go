// Package runstate implements the client-side sync discipline over the run
// session operations: optimistic local updates for responsiveness, wholesale
// replacement with the canonical snapshot on success, and rollback to the
// last canonical snapshot on any rejection.
package runstate

import (
	"context"

	runentity "github.com/deckfall/run-api/internal/entities/run"
	"github.com/deckfall/run-api/internal/errors"
	runorch "github.com/deckfall/run-api/internal/orchestrators/run"
)

// Mode tells the presentation layer which surface to render. It is always
// rederived from the canonical snapshot, never cached across sessions.
type Mode string

// Modes
const (
	ModeNoRun  Mode = "no_run"
	ModeMap    Mode = "map"
	ModeCombat Mode = "combat"
	ModeEnded  Mode = "ended"
)

// Client holds a local copy of the run state and keeps it consistent with
// the authoritative server. Not safe for concurrent use; a session is
// single-threaded by design.
type Client struct {
	service runorch.Service

	canonical *runentity.RunSave
	local     *runentity.RunSave
}

// Config holds the dependencies for the runstate client
type Config struct {
	Service runorch.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Service == nil {
		vb.RequiredField("Service")
	}

	return vb.Build()
}

// NewClient creates a new runstate client with the provided dependencies
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Client{service: cfg.Service}, nil
}

// Snapshot returns the client's current view of the run, including any
// optimistic update not yet confirmed. Nil when no run is loaded.
func (c *Client) Snapshot() *runentity.RunSave {
	return c.local
}

// Mode derives what the client should render from the current snapshot.
func (c *Client) Mode() Mode {
	switch {
	case c.local == nil:
		return ModeNoRun
	case c.local.Status != runentity.StatusInProgress:
		return ModeEnded
	case c.local.CombatActive():
		return ModeCombat
	default:
		return ModeMap
	}
}

// Resume fetches the canonical snapshot and rederives the render branch.
// Locally cached state is never trusted for that decision.
func (c *Client) Resume(ctx context.Context) (Mode, error) {
	output, err := c.service.GetCurrentRun(ctx, &runorch.GetCurrentRunInput{AccountID: c.accountID()})
	if err != nil {
		if errors.IsNotFound(err) {
			c.canonical = nil
			c.local = nil
			return ModeNoRun, nil
		}
		return c.Mode(), err
	}

	c.accept(output.Save)
	return c.Mode(), nil
}

// Bind attaches the client to an account before the first run exists.
func (c *Client) Bind(accountID string) {
	if c.local == nil {
		c.local = &runentity.RunSave{AccountID: accountID}
	}
}

// StartRun asks the server for a fresh run and adopts it.
func (c *Client) StartRun(ctx context.Context, input *runorch.StartRunInput) error {
	if input.AccountID == "" {
		input.AccountID = c.accountID()
	}

	output, err := c.service.StartRun(ctx, input)
	if err != nil {
		return err
	}

	c.accept(output.Save)
	return nil
}

// MoveTo optimistically relocates the player, then confirms with the
// server. On rejection the pre-move snapshot is restored untouched.
func (c *Client) MoveTo(ctx context.Context, targetNodeID string) error {
	if c.canonical == nil {
		return errors.FailedPrecondition("no run loaded")
	}

	c.local.CurrentNodeID = targetNodeID
	c.local.PathTaken = append(c.local.PathTaken, targetNodeID)

	output, err := c.service.MoveTo(ctx, &runorch.MoveToInput{
		AccountID:    c.canonical.AccountID,
		RunID:        c.canonical.ID,
		TargetNodeID: targetNodeID,
		ClientTick:   c.canonical.ClientTick,
	})
	if err != nil {
		c.rollback()
		return err
	}

	c.accept(output.Save)
	return nil
}

// StartCombat opens an encounter on the current node.
func (c *Client) StartCombat(ctx context.Context) error {
	if c.canonical == nil {
		return errors.FailedPrecondition("no run loaded")
	}

	output, err := c.service.StartCombat(ctx, &runorch.StartCombatInput{
		AccountID:  c.canonical.AccountID,
		RunID:      c.canonical.ID,
		ClientTick: c.canonical.ClientTick,
	})
	if err != nil {
		c.rollback()
		return err
	}

	c.accept(output.Save)
	return nil
}

// EndCombat optimistically applies the reported HP and gold for display,
// then reports the resolution. The server's clamped values win.
func (c *Client) EndCombat(ctx context.Context, result runentity.CombatResult, finalPlayerHP, goldDelta int) error {
	if c.canonical == nil {
		return errors.FailedPrecondition("no run loaded")
	}

	c.local.Player.HP = finalPlayerHP
	c.local.Player.Gold += goldDelta

	output, err := c.service.EndCombat(ctx, &runorch.EndCombatInput{
		AccountID:     c.canonical.AccountID,
		RunID:         c.canonical.ID,
		ClientTick:    c.canonical.ClientTick,
		Result:        result,
		FinalPlayerHP: finalPlayerHP,
		GoldDelta:     goldDelta,
	})
	if err != nil {
		c.rollback()
		return err
	}

	c.accept(output.Save)
	return nil
}

// AbandonRun gives up the current run.
func (c *Client) AbandonRun(ctx context.Context) error {
	if c.canonical == nil {
		return errors.FailedPrecondition("no run loaded")
	}

	output, err := c.service.AbandonRun(ctx, &runorch.AbandonRunInput{
		AccountID: c.canonical.AccountID,
		RunID:     c.canonical.ID,
	})
	if err != nil {
		c.rollback()
		return err
	}

	c.accept(output.Save)
	return nil
}

// accept replaces both copies wholesale with the canonical snapshot. No
// field-by-field merging.
func (c *Client) accept(save *runentity.RunSave) {
	c.canonical = save
	c.local = cloneSave(save)
}

// rollback discards the optimistic update.
func (c *Client) rollback() {
	c.local = cloneSave(c.canonical)
}

func (c *Client) accountID() string {
	if c.local != nil {
		return c.local.AccountID
	}
	return ""
}

func cloneSave(s *runentity.RunSave) *runentity.RunSave {
	if s == nil {
		return nil
	}

	out := *s
	out.MapNodes = make([]runentity.Node, len(s.MapNodes))
	for i, n := range s.MapNodes {
		out.MapNodes[i] = n
		out.MapNodes[i].Neighbors = append([]string{}, n.Neighbors...)
	}
	out.PathTaken = append([]string{}, s.PathTaken...)
	out.Combat = cloneCombat(s.Combat)
	return &out
}

func cloneCombat(cs *runentity.CombatState) *runentity.CombatState {
	if cs == nil {
		return nil
	}

	out := *cs
	out.Monsters = make([]*runentity.Monster, len(cs.Monsters))
	for i, m := range cs.Monsters {
		mc := *m
		mc.Actions = append([]runentity.MonsterAction{}, m.Actions...)
		out.Monsters[i] = &mc
	}
	out.Deck = runentity.DeckState{
		Hand:      append([]runentity.Card{}, cs.Deck.Hand...),
		PlayZone:  append([]runentity.Card{}, cs.Deck.PlayZone...),
		Discard:   append([]runentity.Card{}, cs.Deck.Discard...),
		Used:      append([]runentity.Card{}, cs.Deck.Used...),
		Remaining: append([]runentity.Card{}, cs.Deck.Remaining...),
	}
	if cs.FinishedAt != nil {
		t := *cs.FinishedAt
		out.FinishedAt = &t
	}
	return &out
}
