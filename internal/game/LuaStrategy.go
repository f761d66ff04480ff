package game

import (
	"context"
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

const (
	luaChooseMove = "choose_move"
	luaChooseTrap = "choose_trap"
)

// LuaPlayer asks a Lua script for its moves. The script defines
//
//	function choose_move(state) return {section=..., spot=...} end
//
// and, for victims, optionally
//
//	function choose_trap(state) return section end
//
// Sections and spots are given either as letters or as 1-based indices.
type LuaPlayer struct {
	Name   string
	role   Role
	source string
}

func NewLuaPlayer(role Role, name, source string) (*LuaPlayer, error) {
	luaState := lua.NewState()
	defer luaState.Close()
	if err := luaState.DoString(source); err != nil {
		return nil, fmt.Errorf("could not parse lua strategy %q: %w", name, err)
	}
	if luaState.GetGlobal(luaChooseMove).Type() != lua.LTFunction {
		return nil, fmt.Errorf("lua strategy %q does not define %s", name, luaChooseMove)
	}
	return &LuaPlayer{Name: name, role: role, source: source}, nil
}

func LoadLuaPlayer(role Role, path string) (*LuaPlayer, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lua strategy: %w", err)
	}
	return NewLuaPlayer(role, path, string(source))
}

func (p *LuaPlayer) ChooseMove(ctx context.Context, state *GameState) (Move, error) {
	ret, err := p.call(ctx, luaChooseMove, state)
	if err != nil {
		return Move{}, err
	}
	luaTable, ok := ret.(*lua.LTable)
	if !ok {
		return Move{}, errors.New("lua " + luaChooseMove + " returned " + ret.Type().String() + ", expected table")
	}
	return convertLuaMoveTable(luaTable, state.Map)
}

// ChooseTrap falls back to the first untrapped section when the script has no choose_trap.
func (p *LuaPlayer) ChooseTrap(ctx context.Context, state *GameState) (int, error) {
	ret, err := p.call(ctx, luaChooseTrap, state)
	if errors.Is(err, errLuaMissingFunction) {
		for i, section := range state.Map.Sections {
			if !section.Trapped {
				return i, nil
			}
		}
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	section, ok := luaSectionIndex(ret, state.Map)
	if !ok {
		return 0, fmt.Errorf("lua %s returned unknown section %s: %w", luaChooseTrap, ret.String(), ErrOutOfBounds)
	}
	return section, nil
}

var errLuaMissingFunction = errors.New("lua function not defined")

func (p *LuaPlayer) call(ctx context.Context, fnName string, state *GameState) (lua.LValue, error) {
	luaState := lua.NewState()
	defer luaState.Close()
	luaState.SetContext(ctx)

	if err := luaState.DoString(p.source); err != nil {
		return nil, fmt.Errorf("could not parse lua strategy %q: %w", p.Name, err)
	}

	fn := luaState.GetGlobal(fnName)
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%s: %w", fnName, errLuaMissingFunction)
	}

	if err := luaState.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, p.stateTable(luaState, state)); err != nil {
		return nil, fmt.Errorf("could not execute lua %s: %w", fnName, err)
	}
	ret := luaState.Get(-1)
	luaState.Pop(1)
	return ret, nil
}

// stateTable exposes what this role is allowed to know. Item spots are never
// shown and only the victim sees traps.
func (p *LuaPlayer) stateTable(luaState *lua.LState, state *GameState) *lua.LTable {
	tbl := luaState.NewTable()
	tbl.RawSetString("role", lua.LString(p.role.String()))
	tbl.RawSetString("round", lua.LNumber(state.Round))
	tbl.RawSetString("remaining", lua.LNumber(state.RemainingItems))
	tbl.RawSetString("wounded", lua.LBool(state.VictimWounded))
	tbl.RawSetString("last_result", lua.LString(state.LastOutcome.Result.String()))
	if section, ok := state.Chasing(); ok {
		tbl.RawSetString("chase_section", lua.LNumber(section+1))
	}
	if state.LastOutcome.ItemFound {
		tbl.RawSetString("found_section", lua.LNumber(state.LastOutcome.FoundSection+1))
	}

	sections := luaState.NewTable()
	for _, section := range state.Map.Sections {
		sectionTbl := luaState.NewTable()
		sectionTbl.RawSetString("name", lua.LString(section.Name))
		sectionTbl.RawSetString("letter", lua.LString(string(section.Letter)))
		if p.role == Victim {
			sectionTbl.RawSetString("trapped", lua.LBool(section.Trapped))
		}
		spots := luaState.NewTable()
		for _, sub := range section.SubSections {
			spotTbl := luaState.NewTable()
			spotTbl.RawSetString("name", lua.LString(sub.Name))
			spotTbl.RawSetString("letter", lua.LString(string(sub.Letter)))
			spots.Append(spotTbl)
		}
		sectionTbl.RawSetString("spots", spots)
		sections.Append(sectionTbl)
	}
	tbl.RawSetString("sections", sections)
	return tbl
}

func convertLuaMoveTable(luaTbl *lua.LTable, gameMap *GameMap) (Move, error) {
	sectionValue := luaTbl.RawGetString("section")
	spotValue := luaTbl.RawGetString("spot")

	section, ok := luaSectionIndex(sectionValue, gameMap)
	if !ok {
		return Move{}, fmt.Errorf("lua move has unknown section %s: %w", sectionValue.String(), ErrOutOfBounds)
	}

	switch spotValue.Type() {
	case lua.LTString:
		letters := []rune(lua.LVAsString(spotValue))
		if len(letters) == 1 {
			if sub, found := gameMap.SubSectionByLetter(section, letters[0]); found {
				return Move{Section: section, SubSection: sub}, nil
			}
		}
	case lua.LTNumber:
		sub := int(lua.LVAsNumber(spotValue)) - 1
		mv := Move{Section: section, SubSection: sub}
		if gameMap.InBounds(mv) {
			return mv, nil
		}
	}
	return Move{}, fmt.Errorf("lua move has unknown spot %s: %w", spotValue.String(), ErrOutOfBounds)
}

func luaSectionIndex(value lua.LValue, gameMap *GameMap) (int, bool) {
	switch value.Type() {
	case lua.LTString:
		letters := []rune(lua.LVAsString(value))
		if len(letters) != 1 {
			return 0, false
		}
		return gameMap.SectionByLetter(letters[0])
	case lua.LTNumber:
		section := int(lua.LVAsNumber(value)) - 1
		return section, section >= 0 && section < gameMap.SectionCount()
	default:
		return 0, false
	}
}
