package combat

import "github.com/deckfall/run-api/internal/entities/run"

// Roster holds the stock monster definitions. Each entry is copied before
// use so a combat never mutates the template.
var Roster = []run.Monster{
	{
		Name:  "bluffChips",
		MaxHP: 300,
		Actions: []run.MonsterAction{
			{Type: run.ActionAttack, Value: 10, Description: "Attack"},
			{Type: run.ActionDefend, Value: 10, Description: "Guard"},
			{Type: run.ActionAttack, Value: 15, Description: "Attack+"},
			{Type: run.ActionDefend, Value: 15, Description: "Guard+"},
			{Type: run.ActionAttack, Value: 20, Description: "Attack++"},
			{Type: run.ActionDefend, Value: 20, Description: "Guard++"},
		},
		GoldRewardMin: 10,
		GoldRewardMax: 20,
	},
	{
		Name:  "arnak",
		MaxHP: 350,
		Actions: []run.MonsterAction{
			{Type: run.ActionAttack, Value: 5, Description: "Attack"},
			{Type: run.ActionAttack, Value: 5, Description: "Attack"},
			{Type: run.ActionStealPercent, Value: 25, Description: "Steals a cut of your gold"},
			{Type: run.ActionWait, Value: 0, Description: "Bides time"},
			{Type: run.ActionWait, Value: 0, Description: "Bides time"},
			{Type: run.ActionAttack, Value: 50, Description: "All in"},
		},
		GoldRewardMin: 20,
		GoldRewardMax: 30,
	},
	{
		Name:  "lowRollers",
		MaxHP: 250,
		Actions: []run.MonsterAction{
			{Type: run.ActionAttack, Value: 15, Description: "Attack"},
			{Type: run.ActionDefend, Value: 15, Description: "Guard"},
		},
		GoldRewardMin:  10,
		GoldRewardMax:  20,
		ActionsPerTurn: 2,
	},
}

// RosterPick deterministically selects a roster monster for an encounter
// seed and returns a fresh combat-ready copy.
func RosterPick(seed int64, id string) *run.Monster {
	idx := int(seed % int64(len(Roster)))
	if idx < 0 {
		idx += len(Roster)
	}

	tpl := Roster[idx]
	m := tpl
	m.ID = id
	m.HP = tpl.MaxHP
	m.Actions = make([]run.MonsterAction, len(tpl.Actions))
	copy(m.Actions, tpl.Actions)
	return &m
}
