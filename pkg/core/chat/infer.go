package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"bizcase_analyzer/pkg/core/utils"
)

// The assistant is asked to emit its modifications in a fenced JSON block;
// this pulls the block out of the prose around it.
var jsonBlockRe = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

type modificationEnvelope struct {
	Modifications map[string]float64 `json:"modifications"`
}

// ExtractModifications merges modifications from the assistant's JSON block
// with ones inferred directly from the user message, then validates ranges.
// Returns nil when nothing valid was requested.
func ExtractModifications(userMessage string, aiResponse string, currentDevCost float64) Modifications {
	mods := Modifications{}

	if m := jsonBlockRe.FindStringSubmatch(aiResponse); m != nil {
		var envelope modificationEnvelope
		if _, err := utils.SmartParse(m[1], &envelope); err == nil {
			for key, value := range envelope.Modifications {
				mods[key] = value
			}
		} else {
			fmt.Printf("[CHAT] modification block parse failed: %v\n", err)
		}
	}

	for key, value := range inferFromMessage(userMessage, currentDevCost) {
		mods[key] = value
	}

	mods = validateModifications(mods)
	if len(mods) == 0 {
		return nil
	}
	return mods
}

var (
	growthPatterns = []*regexp.Regexp{
		regexp.MustCompile(`growth.*?(\d+(?:\.\d+)?)\s*%`),
		regexp.MustCompile(`increase.*?growth.*?(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`grow.*?(\d+(?:\.\d+)?)\s*percent`),
	}
	costPatterns = []*regexp.Regexp{
		regexp.MustCompile(`development cost.*?€?(\d+(?:,\d{3})*(?:\.\d+)?)\s*(?:million|m)?`),
		regexp.MustCompile(`(?:increase|decrease).*?cost.*?(\d+)\s*%`),
		regexp.MustCompile(`cost.*?€?(\d+(?:,\d{3})*)`),
	}
	coveragePatterns = []*regexp.Regexp{
		regexp.MustCompile(`market coverage.*?(\d+(?:\.\d+)?)\s*%`),
		regexp.MustCompile(`coverage.*?(\d+(?:\.\d+)?)\s*percent`),
		regexp.MustCompile(`cover.*?(\d+(?:\.\d+)?)\s*%`),
	}
	takePatterns = []*regexp.Regexp{
		regexp.MustCompile(`take rate.*?(\d+(?:\.\d+)?)\s*%`),
		regexp.MustCompile(`commission.*?(\d+(?:\.\d+)?)\s*%`),
		regexp.MustCompile(`fee.*?(\d+(?:\.\d+)?)\s*percent`),
	}
	royaltyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`royalty.*?(\d+(?:\.\d+)?)\s*%`),
		regexp.MustCompile(`royalties.*?(\d+(?:\.\d+)?)\s*percent`),
	}
)

func firstMatch(patterns []*regexp.Regexp, message string) (float64, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(message); m != nil {
			raw := strings.ReplaceAll(m[1], ",", "")
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

// inferFromMessage pattern-matches direct parameter requests in the user's
// own words, independent of whether the assistant emitted a JSON block.
func inferFromMessage(message string, currentDevCost float64) Modifications {
	mods := Modifications{}
	lower := strings.ToLower(message)

	if v, ok := firstMatch(growthPatterns, lower); ok {
		mods["growth_rate"] = v
	}

	if v, ok := firstMatch(costPatterns, lower); ok {
		// "increase cost by 20%" is relative to the stored dev cost;
		// "set cost to €2 million" is absolute.
		if strings.Contains(lower, "%") || strings.Contains(lower, "percent") {
			if strings.Contains(lower, "increase") {
				v = currentDevCost * (1 + v/100)
			} else if strings.Contains(lower, "decrease") {
				v = currentDevCost * (1 - v/100)
			}
		}
		if strings.Contains(lower, "million") {
			v *= 1_000_000
		}
		mods["development_cost"] = v
	}

	if v, ok := firstMatch(coveragePatterns, lower); ok {
		mods["market_coverage"] = v
	}
	if v, ok := firstMatch(takePatterns, lower); ok {
		mods["take_rate"] = v
	}
	if v, ok := firstMatch(royaltyPatterns, lower); ok {
		mods["royalty_percentage"] = v
	}

	return mods
}

// validateModifications drops unknown parameters and out-of-range values.
// Percentage parameters must land in [0,100]; amounts must be non-negative.
func validateModifications(mods Modifications) Modifications {
	valid := Modifications{}
	for key, value := range mods {
		switch key {
		case "growth_rate", "royalty_percentage", "take_rate", "market_coverage":
			if value >= 0 && value <= 100 {
				valid[key] = value
			}
		case "development_cost", "annual_revenue_or_savings", "price_per_unit":
			if value >= 0 {
				valid[key] = value
			}
		case "fleet_size_or_units":
			if value >= 0 {
				valid[key] = float64(int(value))
			}
		default:
			fmt.Printf("[CHAT] skipping unknown parameter: %s\n", key)
		}
	}
	return valid
}
