package cube

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/haletran/cubewright/internal/card"
	"github.com/haletran/cubewright/internal/platform/validate"
)

// Result pairs an assembled cube with its session capacity plan.
type Result struct {
	Cube *Cube `json:"cube"`
	Plan Plan  `json:"plan"`
}

// Service runs cube assembly against one repository snapshot per request.
type Service struct {
	repository *card.Repository
	logger     *slog.Logger
}

func NewService(repository *card.Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// Assemble validates the selection, takes a repository snapshot, and runs
// the assembly engine plus the capacity planner against it.
func (service *Service) Assemble(ctx context.Context, selection Selection, mode Mode) (*Result, error) {
	if err := validateShape(selection, mode); err != nil {
		return nil, err
	}

	snapshot, err := service.repository.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	index := card.BuildIndex(snapshot)

	assembled, err := Assemble(snapshot, index, selection)
	if err != nil {
		return nil, err
	}

	plan := PlanSession(assembled.Counts, selection.Layout, mode)

	service.logger.Info("cube_assembled",
		slog.Int("investigators", assembled.Counts.Investigators),
		slog.Int("weaknesses", assembled.Counts.Weaknesses),
		slog.Int("player_cards", assembled.Counts.PlayerCards),
		slog.Int("max_players", plan.MaxPlayers),
		slog.Int("bot_count", plan.BotCount),
	)

	return &Result{Cube: assembled, Plan: plan}, nil
}

// Export assembles the cube and serializes it into the Draftmancer
// plain-text document.
func (service *Service) Export(ctx context.Context, selection Selection, mode Mode) (string, error) {
	result, err := service.Assemble(ctx, selection, mode)
	if err != nil {
		return "", err
	}
	return FormatDraftmancer(result.Cube), nil
}

// validateShape rejects structurally malformed selections before any cache
// or source work happens. Unknown-but-well-formed codes are the assembly
// engine's concern.
func validateShape(selection Selection, mode Mode) error {
	v := &validate.Validator{}

	v.OneOf("mode", string(mode), string(ModeAutomated), string(ModeHuman))

	for position, pick := range selection.Packs {
		field := fmt.Sprintf("packs[%d]", position)
		v.Required(field+".code", pick.Code)
		v.Code(field+".code", pick.Code)
		v.Min(field+".quantity", pick.Quantity, 0)
	}
	for position, code := range selection.Include {
		v.Code(fmt.Sprintf("include[%d]", position), code)
	}
	for position, code := range selection.Exclude {
		v.Code(fmt.Sprintf("exclude[%d]", position), code)
	}

	v.Min("layout.investigators_per_player", selection.Layout.InvestigatorsPerPlayer, 0)
	v.Min("layout.weaknesses_per_player", selection.Layout.WeaknessesPerPlayer, 0)
	v.Min("layout.player_cards_per_pack", selection.Layout.PlayerCardsPerPack, 0)
	v.Min("layout.packs_per_player", selection.Layout.PacksPerPlayer, 0)

	return v.Err()
}
