package rules

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

// LoadVariantFile loads a custom variant definition from a Lua script.
//
// The script must return a table of the form:
//
//	return {
//	    name = "well",
//	    moves = {
//	        { code = "r", name = "Rock" },
//	        { code = "p", name = "Paper" },
//	        { code = "w", name = "Well" },
//	    },
//	    beats = {
//	        r = { "p" },
//	        p = { "w" },
//	        w = { "r" },
//	    },
//	}
//
// The loaded definition goes through the same NewGraph validation as the
// built-in variants, so a script cannot produce an incomplete or
// contradictory beats relation. When name is omitted the file's base name
// is used.
func LoadVariantFile(path string) (*Graph, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load variant script: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run variant script: %w", err)
	}
	if !state.IsTable(-1) {
		return nil, fmt.Errorf("variant script %s must return a table", path)
	}

	name, err := tableString(state, "name")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	moves, err := readMoves(state)
	if err != nil {
		return nil, err
	}

	beats, err := readBeats(state)
	if err != nil {
		return nil, err
	}

	graph, err := NewGraph(name, moves, beats)
	if err != nil {
		return nil, fmt.Errorf("variant %q: %w", name, err)
	}
	return graph, nil
}

// tableString reads an optional string field from the table at the top of
// the stack.
func tableString(state *lua.State, field string) (string, error) {
	state.Field(-1, field)
	defer state.Pop(1)
	if state.IsNil(-1) {
		return "", nil
	}
	value, ok := state.ToString(-1)
	if !ok {
		return "", fmt.Errorf("variant field %q must be a string", field)
	}
	return value, nil
}

func readMoves(state *lua.State) ([]Move, error) {
	state.Field(-1, "moves")
	defer state.Pop(1)
	if !state.IsTable(-1) {
		return nil, fmt.Errorf("variant field %q must be a list of moves", "moves")
	}

	count := state.RawLength(-1)
	moves := make([]Move, 0, count)
	for i := 1; i <= count; i++ {
		state.RawGetInt(-1, i)
		if !state.IsTable(-1) {
			state.Pop(1)
			return nil, fmt.Errorf("move %d must be a table", i)
		}

		code, err := tableString(state, "code")
		if err != nil {
			state.Pop(1)
			return nil, err
		}
		display, err := tableString(state, "name")
		if err != nil {
			state.Pop(1)
			return nil, err
		}
		state.Pop(1)

		if strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("move %d is missing a code", i)
		}
		if strings.TrimSpace(display) == "" {
			display = code
		}
		moves = append(moves, Move{Code: code, Name: display})
	}
	return moves, nil
}

func readBeats(state *lua.State) (map[string][]string, error) {
	state.Field(-1, "beats")
	defer state.Pop(1)
	if !state.IsTable(-1) {
		return nil, fmt.Errorf("variant field %q must be a table", "beats")
	}

	beats := make(map[string][]string)
	state.PushNil()
	for state.Next(-2) {
		// Key at -2, list of beaten codes at -1. The key is type-checked
		// before conversion; ToString on a non-string key would rewrite the
		// key slot in place and corrupt the Next traversal.
		if state.TypeOf(-2) != lua.TypeString || !state.IsTable(-1) {
			state.Pop(2)
			return nil, fmt.Errorf("beats entries must map a move code to a list of codes")
		}
		winner, _ := state.ToString(-2)

		count := state.RawLength(-1)
		losers := make([]string, 0, count)
		for i := 1; i <= count; i++ {
			state.RawGetInt(-1, i)
			loser, ok := state.ToString(-1)
			state.Pop(1)
			if !ok {
				state.Pop(2)
				return nil, fmt.Errorf("beats[%q][%d] must be a move code", winner, i)
			}
			losers = append(losers, loser)
		}
		beats[winner] = losers
		state.Pop(1)
	}
	return beats, nil
}
