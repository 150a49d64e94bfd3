package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codr1/Pitchside/internal/balancer"
)

// rosterFile accepts either a bare list of players or a document with a
// top-level players key.
type rosterFile struct {
	Players []balancer.Player `json:"players" yaml:"players"`
}

func loadRosterFile(path string) ([]balancer.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	players, err := parseRoster(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	return players, nil
}

func parseRoster(data []byte, isJSON bool) ([]balancer.Player, error) {
	var players []balancer.Player
	if isJSON {
		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "[") {
			if err := json.Unmarshal(data, &players); err != nil {
				return nil, err
			}
		} else {
			var doc rosterFile
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, err
			}
			players = doc.Players
		}
	} else {
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			if err := node.Content[0].Decode(&players); err != nil {
				return nil, err
			}
		} else {
			var doc rosterFile
			if err := node.Decode(&doc); err != nil {
				return nil, err
			}
			players = doc.Players
		}
	}
	return normalizeRoster(players)
}

// normalizeRoster validates positions and ratings and numbers players that
// were listed without an id.
func normalizeRoster(players []balancer.Player) ([]balancer.Player, error) {
	seen := make(map[int64]struct{}, len(players))
	var nextID int64
	for _, p := range players {
		if p.ID > nextID {
			nextID = p.ID
		}
	}

	out := make([]balancer.Player, 0, len(players))
	for i, p := range players {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("player %d: name is required", i+1)
		}
		pos, err := balancer.ParsePosition(p.Position.String())
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", p.Name, err)
		}
		p.Position = pos
		if p.OverallRating < 1 || p.OverallRating > 99 {
			return nil, fmt.Errorf("player %q: overall rating must be between 1 and 99", p.Name)
		}
		if p.ID == 0 {
			nextID++
			p.ID = nextID
		}
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("player %q: duplicate id %d", p.Name, p.ID)
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
