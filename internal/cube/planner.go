package cube

// Mode selects between drafts padded with automated participants and
// human-only drafts.
type Mode string

const (
	ModeAutomated Mode = "automated"
	ModeHuman     Mode = "human"
)

// maxBots is the most automated participants a session may request.
const maxBots = 7

// Plan is the session capacity derived from an assembled cube. The session
// initiator rejects drafts with MaxPlayers < 2 and configures the live-draft
// service with BotCount automated seats.
type Plan struct {
	MaxPlayers int `json:"max_players"`
	BotCount   int `json:"bot_count"`
}

// PlanSession computes how many participants a cube can support.
//
// Each category independently caps the participant count at
// floor(count / per-participant rate); the cube supports the minimum across
// the three. A zero rate leaves its category unconstrained. The player-card
// rate is cards-per-pack × packs-per-player.
//
// The computation is pure and never fails: negative inputs clamp to zero.
func PlanSession(counts Counts, layout Layout, mode Mode) Plan {
	investigators := clampNonNegative(counts.Investigators)
	weaknesses := clampNonNegative(counts.Weaknesses)
	playerCards := clampNonNegative(counts.PlayerCards)

	investigatorRate := clampNonNegative(layout.InvestigatorsPerPlayer)
	weaknessRate := clampNonNegative(layout.WeaknessesPerPlayer)
	playerCardRate := clampNonNegative(layout.PlayerCardsPerPack) * clampNonNegative(layout.PacksPerPlayer)

	maxPlayers := unconstrained
	maxPlayers = constrain(maxPlayers, investigators, investigatorRate)
	maxPlayers = constrain(maxPlayers, weaknesses, weaknessRate)
	maxPlayers = constrain(maxPlayers, playerCards, playerCardRate)

	if maxPlayers == unconstrained {
		maxPlayers = 0
	}

	plan := Plan{MaxPlayers: maxPlayers}

	if mode != ModeHuman {
		bots := maxPlayers - 1
		if bots > maxBots {
			bots = maxBots
		}
		if bots < 0 {
			bots = 0
		}
		plan.BotCount = bots
	}

	return plan
}

// unconstrained marks "no category has bounded the count yet".
const unconstrained = -1

// constrain lowers the running maximum by one category's cap. A zero rate
// excludes the category from the minimum.
func constrain(current, count, rate int) int {
	if rate == 0 {
		return current
	}
	limit := count / rate
	if current == unconstrained || limit < current {
		return limit
	}
	return current
}

func clampNonNegative(value int) int {
	if value < 0 {
		return 0
	}
	return value
}
