package catalog

// Canonical product identifiers. These match the uuid primary keys seeded
// into the products table and the fallback catalog entries.
const (
	IDToolsMasteryGuide = "3fb7e8a1-52c4-4ed0-9f11-0c1a4a6b2d01"
	IDPromptsArsenal    = "3fb7e8a1-52c4-4ed0-9f11-0c1a4a6b2d02"
	IDBusinessVideo     = "3fb7e8a1-52c4-4ed0-9f11-0c1a4a6b2d03"
	IDCoachingSession   = "3fb7e8a1-52c4-4ed0-9f11-0c1a4a6b2d04"
	IDSupportContract   = "3fb7e8a1-52c4-4ed0-9f11-0c1a4a6b2d05"
	IDTestProduct       = "3fb7e8a1-52c4-4ed0-9f11-0c1a4a6b2d06"
)

// currentAliases maps the current slug scheme to canonical identifiers.
var currentAliases = map[string]string{
	"ai-tools-mastery-guide-2025": IDToolsMasteryGuide,
	"ai-prompts-arsenal-2025":     IDPromptsArsenal,
	"ai-business-video-guide":     IDBusinessVideo,
	"coaching-session-60min":      IDCoachingSession,
	"weekly-support-contract":     IDSupportContract,
	"test-product":                IDTestProduct,
}

// legacyAliases maps the numeric id scheme used by older clients.
var legacyAliases = map[string]string{
	"1": IDToolsMasteryGuide,
	"2": IDPromptsArsenal,
	"3": IDBusinessVideo,
	"4": IDCoachingSession,
	"5": IDSupportContract,
	"6": IDTestProduct,
}

// CanonicalID normalizes a client-supplied product identifier through the
// merged alias tables. Unknown identifiers pass through unchanged.
func CanonicalID(id string) string {
	if canonical, ok := currentAliases[id]; ok {
		return canonical
	}
	if canonical, ok := legacyAliases[id]; ok {
		return canonical
	}
	return id
}

// CanonicalIDs maps a batch of identifiers, preserving order and dropping
// duplicates after normalization.
func CanonicalIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		c := CanonicalID(id)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
