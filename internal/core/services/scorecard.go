package services

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

// Upstream scorecards arrive in two shapes: row-based, where each row is a
// labeled line of the printed card ({"Hole:": "Blue:", "1": "511", ...}), and
// per-hole, where each entry describes one hole ({"Hole": 1, "Par": 5,
// "tees": {...}}). Both normalize to the same structure.

var parentheticalSuffix = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// scorecard row keys that are summaries rather than hole numbers.
func isSummaryKey(key string) bool {
	switch key {
	case "Hole:", "Hole", "Out", "In", "Total":
		return true
	}
	return false
}

type teeYardageData struct {
	HoleYardages []int
	FrontYardage int
	BackYardage  int
	TotalYardage int
}

type scorecardData struct {
	Par         domain.ParData
	Handicap    []*int
	TeeYardages map[string]teeYardageData
	NumHoles    int
}

// cleanTeeName strips trailing colons and parenthetical suffixes such as
// "Blue (2023)".
func cleanTeeName(raw string) string {
	name := strings.TrimSuffix(strings.TrimSpace(raw), ":")
	name = parentheticalSuffix.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// guessTeeColor maps a tee name to a standard display color.
func guessTeeColor(teeName string) string {
	name := strings.ToLower(teeName)

	for _, color := range []string{"black", "blue", "white", "gold", "red", "green", "silver", "yellow"} {
		if strings.Contains(name, color) {
			if color == "yellow" {
				return "gold"
			}
			return color
		}
	}

	switch {
	case strings.Contains(name, "champ") || strings.Contains(name, "tips"):
		return "black"
	case strings.Contains(name, "back"):
		return "blue"
	case strings.Contains(name, "middle"):
		return "white"
	case strings.Contains(name, "senior") || strings.Contains(name, "forward") || strings.Contains(name, "ladies"):
		return "red"
	case strings.Contains(name, "bronze") || strings.Contains(name, "copper"):
		return "gold"
	}
	return "gray"
}

// asInt coerces the loosely typed scorecard values (JSON numbers decode as
// float64, many fields arrive as strings).
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func decodeJSONList(s string) []any {
	var list []any
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil
	}
	return list
}

// parseScorecard normalizes a raw scorecard value, which may be a JSON string
// or an already decoded row list. Returns nil when nothing usable is found.
func parseScorecard(raw any) *scorecardData {
	if raw == nil {
		return nil
	}

	var rows []map[string]any
	switch v := raw.(type) {
	case string:
		if err := json.Unmarshal([]byte(v), &rows); err != nil {
			return nil
		}
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				rows = append(rows, m)
			}
		}
	default:
		return nil
	}

	if len(rows) == 0 {
		return nil
	}

	var parHoles, handicapHoles map[int]int
	var teeYardages map[string]map[int]int

	first := rows[0]
	if _, holeIsNum := asInt(first["Hole"]); holeIsNum && first["tees"] != nil {
		parHoles, teeYardages, handicapHoles = parsePerHoleRows(rows)
	} else if _, ok := first["Hole:"]; ok {
		parHoles, teeYardages, handicapHoles = parseLabeledRows(rows)
	} else if _, ok := first["Hole"]; ok {
		parHoles, teeYardages, handicapHoles = parseLabeledRows(rows)
	} else {
		return nil
	}

	if len(parHoles) == 0 && len(teeYardages) == 0 {
		return nil
	}

	numHoles := 0
	for h := range parHoles {
		if h > numHoles {
			numHoles = h
		}
	}
	for _, ty := range teeYardages {
		for h := range ty {
			if h > numHoles {
				numHoles = h
			}
		}
	}
	if numHoles == 0 {
		return nil
	}

	data := &scorecardData{
		TeeYardages: make(map[string]teeYardageData),
		NumHoles:    numHoles,
	}

	parList := make([]int, 0, numHoles)
	parFront, parBack := 0, 0
	for h := 1; h <= numHoles; h++ {
		parList = append(parList, parHoles[h])
		if h <= 9 {
			parFront += parHoles[h]
		} else {
			parBack += parHoles[h]
		}
	}
	data.Par.Holes = parList
	if parFront > 0 {
		data.Par.Front = &parFront
	}
	if parBack > 0 {
		data.Par.Back = &parBack
	}
	if total := parFront + parBack; total > 0 {
		data.Par.Total = &total
	}

	hasHandicap := false
	handicapList := make([]*int, 0, numHoles)
	for h := 1; h <= numHoles; h++ {
		if v, ok := handicapHoles[h]; ok {
			hc := v
			handicapList = append(handicapList, &hc)
			hasHandicap = true
		} else {
			handicapList = append(handicapList, nil)
		}
	}
	if hasHandicap {
		data.Handicap = handicapList
	}

	for teeName, holeYards := range teeYardages {
		yd := teeYardageData{HoleYardages: make([]int, 0, numHoles)}
		for h := 1; h <= numHoles; h++ {
			yd.HoleYardages = append(yd.HoleYardages, holeYards[h])
			if h <= 9 {
				yd.FrontYardage += holeYards[h]
			} else {
				yd.BackYardage += holeYards[h]
			}
		}
		yd.TotalYardage = yd.FrontYardage + yd.BackYardage
		data.TeeYardages[teeName] = yd
	}

	return data
}

func parseLabeledRows(rows []map[string]any) (map[int]int, map[string]map[int]int, map[int]int) {
	parHoles := make(map[int]int)
	handicapHoles := make(map[int]int)
	teeYardages := make(map[string]map[int]int)

	for _, row := range rows {
		labelRaw := asString(row["Hole:"])
		if labelRaw == "" {
			labelRaw = asString(row["Hole"])
		}
		labelRaw = strings.TrimSpace(labelRaw)
		label := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(labelRaw, ":")))

		switch label {
		case "par":
			collectHoleValues(row, parHoles)
		case "handicap", "hdcp":
			collectHoleValues(row, handicapHoles)
		case "", "hole":
		default:
			teeName := cleanTeeName(labelRaw)
			holeYards := make(map[int]int)
			collectHoleValues(row, holeYards)

			sum := 0
			for _, y := range holeYards {
				sum += y
			}
			if len(holeYards) > 0 && sum > 0 {
				teeYardages[teeName] = holeYards
			}
		}
	}

	return parHoles, teeYardages, handicapHoles
}

func collectHoleValues(row map[string]any, dst map[int]int) {
	for key, val := range row {
		if isSummaryKey(key) {
			continue
		}
		holeNum, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if v, ok := asInt(val); ok {
			dst[holeNum] = v
		}
	}
}

func parsePerHoleRows(rows []map[string]any) (map[int]int, map[string]map[int]int, map[int]int) {
	parHoles := make(map[int]int)
	handicapHoles := make(map[int]int)
	teeYardages := make(map[string]map[int]int)

	for _, entry := range rows {
		holeNum, ok := asInt(entry["Hole"])
		if !ok {
			continue
		}

		if par, ok := asInt(entry["Par"]); ok {
			parHoles[holeNum] = par
		}
		if hc, ok := asInt(entry["Handicap"]); ok {
			handicapHoles[holeNum] = hc
		}

		tees, _ := entry["tees"].(map[string]any)
		for teeKey, teeRaw := range tees {
			teeData, _ := teeRaw.(map[string]any)
			if teeData == nil {
				continue
			}

			teeName := asString(teeData["color"])
			if teeName == "" {
				teeName = asString(teeData["name"])
			}
			if teeName == "" {
				teeName = teeKey
			}
			teeName = cleanTeeName(teeName)

			yards, ok := asInt(teeData["yards"])
			if !ok {
				yards, ok = asInt(teeData["yardage"])
			}
			if !ok {
				continue
			}

			if teeYardages[teeName] == nil {
				teeYardages[teeName] = make(map[int]int)
			}
			teeYardages[teeName][holeNum] = yards
		}
	}

	return parHoles, teeYardages, handicapHoles
}
