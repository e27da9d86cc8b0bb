// Package run implements the run orchestrator: the session-level operations
// over a run save (start, move, combat start/end) and the cross-cutting
// invariants the lower layers cannot see: one in-progress run per account,
// one active combat per run, and the client-tick concurrency check.
package run

//go:generate mockgen -destination=mock/mock_service.go -package=runmock github.com/deckfall/run-api/internal/orchestrators/run Service

import (
	"context"
	"log/slog"

	runentity "github.com/deckfall/run-api/internal/entities/run"
	"github.com/deckfall/run-api/internal/engine/combat"
	"github.com/deckfall/run-api/internal/engine/mapgraph"
	"github.com/deckfall/run-api/internal/errors"
	"github.com/deckfall/run-api/internal/pkg/clock"
	"github.com/deckfall/run-api/internal/pkg/idgen"
	"github.com/deckfall/run-api/internal/repositories/runsave"
)

// DefaultDifficulty is used when StartRun does not specify one.
const DefaultDifficulty = "normal"

// Service defines the interface for run session operations
type Service interface {
	StartRun(ctx context.Context, input *StartRunInput) (*StartRunOutput, error)
	GetCurrentRun(ctx context.Context, input *GetCurrentRunInput) (*GetCurrentRunOutput, error)
	MoveTo(ctx context.Context, input *MoveToInput) (*MoveToOutput, error)
	StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error)
	EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error)
	AbandonRun(ctx context.Context, input *AbandonRunInput) (*AbandonRunOutput, error)
}

// Config holds the dependencies for the run orchestrator
type Config struct {
	SaveRepo             runsave.Repository
	IDGenerator          idgen.Generator
	EncounterIDGenerator idgen.Generator
	Clock                clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SaveRepo == nil {
		vb.RequiredField("SaveRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EncounterIDGenerator == nil {
		vb.RequiredField("EncounterIDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	saveRepo runsave.Repository
	idGen    idgen.Generator
	encIDGen idgen.Generator
	clock    clock.Clock
}

// NewOrchestrator creates a new run orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		saveRepo: cfg.SaveRepo,
		idGen:    cfg.IDGenerator,
		encIDGen: cfg.EncounterIDGenerator,
		clock:    c,
	}, nil
}

// StartRun creates a fresh run save for the account, abandoning any run
// still in progress. The map is generated deterministically from the seed.
func (o *orchestrator) StartRun(ctx context.Context, input *StartRunInput) (*StartRunOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	maxHP := input.MaxHP
	if maxHP == 0 {
		maxHP = runentity.DefaultMaxHP
	}
	startingHP := input.StartingHP
	if startingHP == 0 {
		startingHP = maxHP
	}
	if maxHP <= 0 || startingHP <= 0 || startingHP > maxHP {
		return nil, errors.InvalidArgumentf("starting HP %d / max HP %d out of range", startingHP, maxHP)
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}

	// Abandon the previous run, if one is still going.
	current, err := o.saveRepo.GetCurrent(ctx, runsave.GetCurrentInput{AccountID: input.AccountID})
	if err != nil && !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "failed to check for existing run")
	}
	if err == nil && current.Save.Status == runentity.StatusInProgress {
		prior := current.Save
		prior.Status = runentity.StatusAbandoned
		prior.ClientTick++
		if _, err := o.saveRepo.Update(ctx, runsave.UpdateInput{Save: prior}); err != nil {
			return nil, errors.Wrap(err, "failed to abandon previous run")
		}
		slog.Info("Abandoned previous run",
			"account_id", input.AccountID,
			"run_id", prior.ID,
		)
	}

	seed := input.Seed
	if seed == 0 {
		seed = o.clock.Now().UnixNano()
	}

	nodes := mapgraph.Generate(seed)
	startID := ""
	for i := range nodes {
		if nodes[i].Type == runentity.NodeStart {
			startID = nodes[i].ID
			break
		}
	}

	save := &runentity.RunSave{
		ID:            o.idGen.Generate(),
		AccountID:     input.AccountID,
		Status:        runentity.StatusInProgress,
		Seed:          seed,
		Difficulty:    difficulty,
		MapNodes:      nodes,
		StartNodeID:   startID,
		CurrentNodeID: startID,
		PathTaken:     []string{startID},
		Player: runentity.Player{
			HP:    startingHP,
			MaxHP: maxHP,
		},
	}

	created, err := o.saveRepo.Create(ctx, runsave.CreateInput{Save: save})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create run save")
	}

	slog.Info("Run started",
		"account_id", input.AccountID,
		"run_id", created.Save.ID,
		"seed", seed,
		"difficulty", difficulty,
	)

	return &StartRunOutput{Save: created.Save}, nil
}

// GetCurrentRun returns the account's most recent run save.
func (o *orchestrator) GetCurrentRun(ctx context.Context, input *GetCurrentRunInput) (*GetCurrentRunOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	out, err := o.saveRepo.GetCurrent(ctx, runsave.GetCurrentInput{AccountID: input.AccountID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get current run")
	}

	return &GetCurrentRunOutput{Save: out.Save}, nil
}

// MoveTo advances the run to a neighboring available node. Both the
// departed node and the target end up cleared, and the available frontier
// is rederived around the new position.
func (o *orchestrator) MoveTo(ctx context.Context, input *MoveToInput) (*MoveToOutput, error) {
	if input.TargetNodeID == "" {
		return nil, errors.InvalidArgument("target node ID is required")
	}

	save, err := o.loadInProgress(ctx, input.AccountID, input.RunID, input.ClientTick)
	if err != nil {
		return nil, err
	}
	if save.CombatActive() {
		return nil, errors.CombatActive("cannot move while a combat is in progress")
	}

	graph, err := mapgraph.New(save.MapNodes, save.CurrentNodeID)
	if err != nil {
		return nil, errors.Wrap(err, "corrupt map state")
	}
	if err := graph.Move(input.TargetNodeID); err != nil {
		return nil, err
	}

	save.CurrentNodeID = input.TargetNodeID
	save.PathTaken = append(save.PathTaken, input.TargetNodeID)
	save.ClientTick++

	updated, err := o.saveRepo.Update(ctx, runsave.UpdateInput{Save: save})
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist move")
	}

	slog.Info("Moved",
		"run_id", save.ID,
		"node_id", input.TargetNodeID,
		"client_tick", save.ClientTick,
	)

	return &MoveToOutput{Save: updated.Save}, nil
}

// StartCombat opens an encounter on the current node. The encounter ID,
// rng seed, and monsters default to server-derived values; a finished or
// absent combat is the only state this succeeds from.
func (o *orchestrator) StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error) {
	save, err := o.loadInProgress(ctx, input.AccountID, input.RunID, input.ClientTick)
	if err != nil {
		return nil, err
	}
	if save.CombatActive() {
		return nil, errors.CombatActive("an encounter is already active")
	}

	node := save.Node(save.CurrentNodeID)
	if node == nil {
		return nil, errors.Internalf("current node %s missing from map", save.CurrentNodeID)
	}
	if !node.Type.IsCombat() {
		return nil, errors.FailedPreconditionf("node %s (%s) has no encounter", node.ID, node.Type)
	}

	encounterID := input.EncounterID
	if encounterID == "" {
		encounterID = o.encIDGen.Generate()
	}
	rngSeed := input.RngSeed
	if rngSeed == 0 {
		// Derived, not random: the same save replays the same encounter.
		rngSeed = save.Seed + save.ClientTick + int64(len(save.PathTaken))
	}
	monsters := input.Monsters
	if len(monsters) == 0 {
		monsters = []*runentity.Monster{combat.RosterPick(rngSeed, encounterID + "_m1")}
	}

	state, err := combat.NewEncounter(encounterID, rngSeed, monsters)
	if err != nil {
		return nil, err
	}

	save.Combat = state
	save.ClientTick++

	updated, err := o.saveRepo.Update(ctx, runsave.UpdateInput{Save: save})
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist combat start")
	}

	slog.Info("Combat started",
		"run_id", save.ID,
		"encounter_id", encounterID,
		"node_id", node.ID,
		"monsters", len(monsters),
	)

	return &StartCombatOutput{Save: updated.Save}, nil
}

// EndCombat resolves the active encounter. Client-reported HP and gold are
// clamped before persisting; a second resolution for the same encounter is
// rejected because the combat is no longer active.
func (o *orchestrator) EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error) {
	if input.Result != runentity.CombatWon && input.Result != runentity.CombatLost {
		return nil, errors.InvalidArgumentf("invalid combat result %q", input.Result)
	}

	save, err := o.loadInProgress(ctx, input.AccountID, input.RunID, input.ClientTick)
	if err != nil {
		return nil, err
	}
	if !save.CombatActive() {
		return nil, errors.NoActiveCombat("no encounter to resolve")
	}

	hp := input.FinalPlayerHP
	if hp < 0 {
		hp = 0
	}
	if hp > save.Player.MaxHP {
		hp = save.Player.MaxHP
	}
	save.Player.HP = hp

	gold := save.Player.Gold + input.GoldDelta
	if gold < 0 {
		gold = 0
	}
	save.Player.Gold = gold

	now := o.clock.Now()
	save.Combat.Result = input.Result
	save.Combat.FinishedAt = &now

	if input.Result == runentity.CombatLost || save.Player.HP == 0 {
		save.Status = runentity.StatusLost
	} else if node := save.Node(save.CurrentNodeID); node != nil && node.Type == runentity.NodeBoss {
		save.Status = runentity.StatusWon
	}
	save.ClientTick++

	updated, err := o.saveRepo.Update(ctx, runsave.UpdateInput{Save: save})
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist combat end")
	}

	slog.Info("Combat ended",
		"run_id", save.ID,
		"encounter_id", save.Combat.EncounterID,
		"result", input.Result,
		"status", save.Status,
	)

	return &EndCombatOutput{Save: updated.Save}, nil
}

// AbandonRun marks an in-progress run abandoned.
func (o *orchestrator) AbandonRun(ctx context.Context, input *AbandonRunInput) (*AbandonRunOutput, error) {
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}

	var save *runentity.RunSave
	if input.RunID != "" {
		out, err := o.getOwned(ctx, input.AccountID, input.RunID)
		if err != nil {
			return nil, err
		}
		save = out
	} else {
		out, err := o.saveRepo.GetCurrent(ctx, runsave.GetCurrentInput{AccountID: input.AccountID})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get current run")
		}
		save = out.Save
	}

	if save.Status != runentity.StatusInProgress {
		return nil, errors.FailedPreconditionf("run %s is %s, not in progress", save.ID, save.Status)
	}

	save.Status = runentity.StatusAbandoned
	save.ClientTick++

	updated, err := o.saveRepo.Update(ctx, runsave.UpdateInput{Save: save})
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist abandon")
	}

	slog.Info("Run abandoned",
		"account_id", input.AccountID,
		"run_id", save.ID,
	)

	return &AbandonRunOutput{Save: updated.Save}, nil
}

// loadInProgress fetches an owned, in-progress save and runs the tick
// check. Every mutating operation goes through here before touching state,
// so a rejected call never leaves a partial write behind.
func (o *orchestrator) loadInProgress(ctx context.Context, accountID, runID string, clientTick int64) (*runentity.RunSave, error) {
	if accountID == "" {
		return nil, errors.InvalidArgument("account ID is required")
	}
	if runID == "" {
		return nil, errors.InvalidArgument("run ID is required")
	}

	save, err := o.getOwned(ctx, accountID, runID)
	if err != nil {
		return nil, err
	}
	if save.Status != runentity.StatusInProgress {
		return nil, errors.FailedPreconditionf("run %s is %s, not in progress", save.ID, save.Status)
	}
	if clientTick != save.ClientTick {
		return nil, errors.Desyncf("client tick %d does not match server tick %d", clientTick, save.ClientTick)
	}
	return save, nil
}

// getOwned fetches a save and verifies account ownership. A save owned by
// another account reads as not found rather than forbidden.
func (o *orchestrator) getOwned(ctx context.Context, accountID, runID string) (*runentity.RunSave, error) {
	out, err := o.saveRepo.Get(ctx, runsave.GetInput{ID: runID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get run save")
	}
	if out.Save.AccountID != accountID {
		return nil, errors.NotFoundf("run %s not found", runID)
	}
	return out.Save, nil
}
