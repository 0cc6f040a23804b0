package nbsharvest

import (
	"fmt"
	"strings"
)

// BuildExtractionPrompt renders the schema, the controlled vocabularies
// and the source text into a single extraction prompt. The function is
// pure: the same text always yields the same prompt.
func BuildExtractionPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString(`You are a precise data extraction system for Nature-based Solutions projects. Extract only explicitly stated information from the provided text according to the schema below.

CRITICAL INSTRUCTIONS:
- Never guess or make assumptions - use "unknown" for missing information
- For string fields: use "unknown" if not found
- For array fields: use empty list [] if not found
- Extract information ONLY from the provided text
- Keep arrays concise - use key phrases rather than long sentences
`)
	fmt.Fprintf(&sb, "- For status: use ONLY %s\n", vocabulary(statusValues))
	fmt.Fprintf(&sb, "- For scale: use ONLY %s\n", vocabulary(scaleValues))
	fmt.Fprintf(&sb, "- For environmental_context: use ONLY %s\n", vocabulary(envContextValues))

	sb.WriteString(`
SCHEMA WITH EXAMPLES:
1. title: Project name exactly as given in source
   Example: "Urban Wetland Restoration in Copenhagen"

2. summary: 2-4 concise sentences describing purpose, actions, and context
   Example: "Restoration of 5 hectares of urban wetlands in Copenhagen to reduce flooding risk. The project involves removing invasive species and replanting native vegetation to create natural water retention areas."

3. status: Current project stage
`)
	fmt.Fprintf(&sb, "   Example: \"completed\" (ONLY use: %s)\n", vocabulary(statusValues))
	sb.WriteString(`
4. location_name: Most specific place name mentioned
   Example: "Amager District, Copenhagen"

5. country: Plain country name
   Example: "Denmark"

6. scale: Geographic scope
`)
	fmt.Fprintf(&sb, "   Example: \"neighborhood\" (ONLY use: %s)\n", vocabulary(scaleValues))
	sb.WriteString(`
7. solution_types: Array of NBS categories implemented
   Example: ["urban wetlands", "native vegetation restoration", "green corridors"]

8. challenges_addressed: Array of main problems being solved
   Example: ["flooding", "biodiversity loss", "urban heat"]

9. health_linkages_primary: Array of direct health outcomes
   Example: ["reduced heat stress", "improved air quality", "increased physical activity"]

10. impacts: Array of documented outcomes
    Example: ["30% reduction in local flooding", "15% increase in biodiversity", "improved community wellbeing"]

11. governance: Implementation/maintenance responsibility
    Example: "Copenhagen Municipality in partnership with local community groups"

12. url_source: Original source URL
    Example: "https://oppla.eu/casestudy/21553"

13. environmental_context: Broad context
`)
	fmt.Fprintf(&sb, "    Example: \"urban\" (ONLY use: %s)\n", vocabulary(envContextValues))

	sb.WriteString("\nSOURCE TEXT TO ANALYZE:\n")
	sb.WriteString(text)

	sb.WriteString(`

RESPONSE FORMAT:
Return a clean JSON object with exactly these 13 fields. Example:
{
    "title": "Urban Wetland Restoration in Copenhagen",
    "summary": "Restoration of 5 hectares of urban wetlands...",
    "status": "completed",
    ...
}`)

	return sb.String()
}

// Vocabulary orderings are fixed so prompts stay byte-for-byte stable
// across runs.
var (
	statusValues     = []string{"planned", "in-progress", "completed", "ongoing", Unknown}
	scaleValues      = []string{"site", "neighborhood", "city", "watershed", "regional", Unknown}
	envContextValues = []string{"urban", "coastal", "wetland", "forest", "agricultural", Unknown}
)

func vocabulary(values []string) string {
	return strings.Join(values, "|")
}
