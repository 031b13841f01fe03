package session

import "fmt"

// Legend is the static control reference shown at the bottom of the arena.
const Legend = "WASD: Move    Mouse: Aim    Left Click: Shoot    R: Restart"

// DeathMessage is shown centered while the session is Dead.
const DeathMessage = "You Died\nPress R"

// HUD holds the text the host draws over the arena.
type HUD struct {
	HP       string
	Legend   string
	GameOver string // empty while Playing
}

func hpText(hp, maxHP int) string {
	return fmt.Sprintf("HP: %d / %d", hp, maxHP)
}
