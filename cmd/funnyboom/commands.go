package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/funnyboom/internal/mines"
	"github.com/vancomm/funnyboom/internal/session"
)

var errQuit = errors.New("quit")

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type cellArgs struct {
	Row    int `schema:"row,required"`
	Column int `schema:"column,required"`
}

func (a cellArgs) coordinate() mines.Coordinate {
	return mines.Coordinate{Row: a.Row, Column: a.Column}
}

type difficultyArgs struct {
	Level string `schema:"level,required"`
}

type sizeArgs struct {
	Preset string `schema:"preset,required"`
}

type forceArgs struct {
	Style string `schema:"style,required"`
}

type winArgs struct {
	Nickname string `schema:"nickname,required"`
}

// parseCommand splits "tap row=1 column=2" or "tap?row=1&column=2" into
// its name and arguments. Arguments may be separated by spaces or '&'.
func parseCommand(line string) (string, url.Values, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, nil
	}
	name, rest := line, ""
	if i := strings.IndexAny(line, " \t?"); i >= 0 {
		name, rest = line[:i], line[i+1:]
	}
	args, err := url.ParseQuery(strings.Join(strings.Fields(rest), "&"))
	if err != nil {
		return "", nil, fmt.Errorf("bad arguments: %w", err)
	}
	return strings.ToLower(name), args, nil
}

func decode[T any](args url.Values) (T, error) {
	var dst T
	err := decoder.Decode(&dst, args)
	return dst, err
}

// commandAction maps a board command to its action. ok is false for names
// that are not board commands.
func commandAction(name string, args url.Values) (action mines.Action, ok bool, err error) {
	switch name {
	case "tap", "flag", "clown":
		cell, err := decode[cellArgs](args)
		if err != nil {
			return nil, true, err
		}
		switch name {
		case "tap":
			return mines.TapCell{Coordinate: cell.coordinate()}, true, nil
		case "flag":
			return mines.ToggleFlag{Coordinate: cell.coordinate()}, true, nil
		}
		return mines.TapFunnyBoomCell{Coordinate: cell.coordinate()}, true, nil

	case "skip":
		return mines.SkipSpecialModeCountdown{}, true, nil

	case "new":
		return mines.StartNewRound{}, true, nil

	case "dismiss":
		return mines.DismissVictoryPrompt{}, true, nil

	case "difficulty":
		a, err := decode[difficultyArgs](args)
		if err != nil {
			return nil, true, err
		}
		difficulty, err := mines.ParseDifficulty(a.Level)
		if err != nil {
			return nil, true, err
		}
		return mines.SetDifficulty{Difficulty: difficulty}, true, nil

	case "size":
		a, err := decode[sizeArgs](args)
		if err != nil {
			return nil, true, err
		}
		size, err := mines.ParseBoardSize(a.Preset)
		if err != nil {
			return nil, true, err
		}
		return mines.SetBoardSize{BoardSize: size}, true, nil

	case "force":
		a, err := decode[forceArgs](args)
		if err != nil {
			return nil, true, err
		}
		style, err := mines.ParseSpecialModeStyle(a.Style)
		if err != nil {
			return nil, true, err
		}
		return mines.ForceSpecialMode{Style: style}, true, nil
	}
	return nil, false, nil
}

type reply struct {
	Error    string             `json:"error,omitempty"`
	ScoreID  string             `json:"score_id,omitempty"`
	Snapshot *session.Snapshot  `json:"snapshot,omitempty"`
	Scores   []mines.ScoreEntry `json:"scores,omitempty"`
}

// readCommands feeds stdin lines to s and answers each with one JSON line.
// It returns errQuit on "quit" or end of input.
func readCommands(ctx context.Context, in io.Reader, out io.Writer, s *session.Session) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	enc := json.NewEncoder(out)
	for {
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return errQuit
			}
			line = l
		}

		r, err := execute(ctx, line, s)
		if errors.Is(err, errQuit) {
			return errQuit
		}
		if err != nil {
			r = &reply{Error: err.Error()}
		}
		if r == nil {
			continue
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("unable to write reply: %w", err)
		}
	}
}

// execute returns a nil reply for blank lines.
func execute(ctx context.Context, line string, s *session.Session) (*reply, error) {
	name, args, err := parseCommand(line)
	if err != nil || name == "" {
		return nil, err
	}

	action, ok, err := commandAction(name, args)
	if err != nil {
		return nil, err
	}
	if ok {
		s.Send(action)
		return snapshot(ctx, s)
	}

	switch name {
	case "state":
		return snapshot(ctx, s)

	case "scores":
		if err := s.Sync(ctx); err != nil {
			return nil, err
		}
		return &reply{Scores: s.State().Scores}, nil

	case "win":
		a, err := decode[winArgs](args)
		if err != nil {
			return nil, err
		}
		if err := s.Sync(ctx); err != nil {
			return nil, err
		}
		id, ok := s.SubmitVictory(a.Nickname)
		if !ok {
			return nil, errors.New("no victory to submit")
		}
		return &reply{ScoreID: id.String()}, nil

	case "quit", "exit":
		return nil, errQuit
	}
	return nil, fmt.Errorf("unknown command %q", name)
}

func snapshot(ctx context.Context, s *session.Session) (*reply, error) {
	if err := s.Sync(ctx); err != nil {
		return nil, err
	}
	snap := s.Snapshot()
	return &reply{Snapshot: &snap}, nil
}
