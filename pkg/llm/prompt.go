package llm

import (
	"fmt"
	"strings"

	"github.com/umputun/leadfeed/pkg/domain"
)

// notAvailable marks an absent description or content in the prompt
const notAvailable = "N/A"

// defaultBusinessContext describes the business and the scoring rubric
const defaultBusinessContext = `Vahle A/S is a Danish manufacturer of bespoke, high-quality wooden doors, designed and produced entirely in-house in Mørke, Djursland. Since 1976, the company has specialized in crafting architecturally integrated doors that combine craftsmanship, functionality, and design. Their products serve both classic and modern architectural styles, with optional fire, sound, and security ratings. Vahle is committed to sustainability, using FSC-certified wood, 100% green electricity, and offering full Environmental Product Declarations.

Primary Customers:
- Architects and architectural firms specifying custom elements
- Construction companies and contractors delivering premium or heritage-focused builds
- Real estate developers in commercial and luxury residential sectors
- Interior design studios working on upscale interiors
- Institutional builders for cultural, public, or educational facilities
- Luxury residential builders creating or renovating high-end homes

Target Sectors:
- Luxury hotels and resorts
- Cultural institutions (museums, galleries, theaters)
- Corporate offices and headquarters
- Historic and heritage buildings
- Upscale real estate developments
- Sustainable/green building projects
- High-end residential projects

Key Indicators to Look For:
1. Customer Type Mentions (0-30 points):
   - Architects, interior designers, contractors, developers, builders
   - Institutions involved in significant building projects

2. Project Types (0-25 points):
   - Heritage restorations, new high-profile builds, expansions, retrofits
   - Sustainable/high-performance construction projects

3. Target Sectors (0-25 points):
   - Luxury hospitality, cultural venues, prestigious corporate spaces
   - Listed buildings, upscale residential developments

4. Relevant Keywords (0-20 points):
   - "custom architecture," "bespoke interior design," "heritage restoration"
   - "listed building renovation," "green building project," "sustainability-led retrofit"
   - "mass timber construction," "luxury hotel development," "boutique hotel renovation"
   - "premium materials," "architect-designed features"

Categories to tag:
- Heritage Restoration
- Luxury Development
- Cultural Institution
- Sustainable Building
- Custom Architecture
- High-End Residential
- Hotel Development
- Corporate HQ
- Listed Building
- Green Construction`

// systemPrompt wraps the business context into the analyst instruction
func systemPrompt(businessContext string) string {
	if strings.TrimSpace(businessContext) == "" {
		businessContext = defaultBusinessContext
	}
	return "You are a sales intelligence analyst for Vahle A/S, a Danish manufacturer of bespoke wooden doors. " +
		"Evaluate articles for sales relevance based on the following context:\n\n" +
		businessContext + "\n\nProvide your evaluation in JSON format."
}

// userPrompt builds the per-article request, content is cut to contentLimit characters
func userPrompt(article domain.ArticleText, contentLimit int) string {
	description := strings.TrimSpace(article.Description)
	if description == "" {
		description = notAvailable
	}
	content := truncateRunes(strings.TrimSpace(article.Content), contentLimit)
	if content == "" {
		content = notAvailable
	}

	var sb strings.Builder
	sb.WriteString("Evaluate this article for sales relevance to Vahle A/S (custom wooden doors):\n\n")
	fmt.Fprintf(&sb, "Title: %s\nDescription: %s\nContent: %s\n\n", strings.TrimSpace(article.Title), description, content)
	sb.WriteString(`Note: If content/description is N/A, evaluate based on the title only. Return a JSON object with:
- relevanceScore (0-100)
- keyReasons (array of 2-4 bullet points explaining the relevance)
- suggestedActions (specific sales actions if score > 60, otherwise null)
- categories (array of relevant category tags)
- priority ("HIGH" if score > 80, "MEDIUM" if score > 60, "LOW" otherwise)
- summary (1-2 sentence summary of why this matters to Vahle, or null if not relevant)
- scoreBreakdown (object with detailed scores: {"customerTypeMentions": 0-30, "projectTypes": 0-25, "targetSectors": 0-25, "relevantKeywords": 0-20, "explanation": "brief explanation of each score"})`)
	return sb.String()
}

// truncateRunes returns at most limit characters of s
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
