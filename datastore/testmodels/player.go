package testmodels

import "fmt"

// Player is a flat entity used by the backend tests.
type Player struct {
	ID       string `json:"id" dynamodbav:"id"`
	Name     string `json:"name" dynamodbav:"name"`
	Rating   int    `json:"rating" dynamodbav:"rating"`
	Nickname string `json:"nickname,omitempty" dynamodbav:"nickname,omitempty"`
}

func (Player) CollectionName() string { return "players" }

func (p Player) Key() string { return p.ID }

// Players returns n players keyed player-0000, player-0001, ...
func Players(n int) []Player {
	out := make([]Player, n)
	for i := range out {
		out[i] = Player{
			ID:     fmt.Sprintf("player-%04d", i),
			Name:   fmt.Sprintf("Player %d", i),
			Rating: 1500 + i,
		}
	}
	return out
}
