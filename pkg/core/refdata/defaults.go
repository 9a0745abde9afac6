package refdata

// Default returns the compiled-in reference tables. The figures mirror the
// curated startup benchmark set the application ships with; deployments can
// override them with a configuration file (see Load).
func Default() *Tables {
	return &Tables{
		multiples: map[string]map[string]float64{
			"Technology":      {"Revenue": 6.5, "EBITDA": 15.2},
			"SaaS":            {"Revenue": 8.2, "EBITDA": 18.5},
			"E-commerce":      {"Revenue": 3.1, "EBITDA": 12.8},
			"Fintech":         {"Revenue": 7.8, "EBITDA": 16.9},
			"Biotech":         {"Revenue": 12.4, "EBITDA": 25.6},
			"Cleantech":       {"Revenue": 4.7, "EBITDA": 13.1},
			"Marketplace":     {"Revenue": 5.3, "EBITDA": 14.7},
			"Media":           {"Revenue": 2.8, "EBITDA": 9.4},
			"Manufacturing":   {"Revenue": 1.9, "EBITDA": 8.2},
			"Retail":          {"Revenue": 1.4, "EBITDA": 6.8},
			"Healthcare":      {"Revenue": 4.2, "EBITDA": 12.1},
			"Education":       {"Revenue": 3.8, "EBITDA": 10.5},
			"Gaming":          {"Revenue": 7.1, "EBITDA": 16.3},
			"Food & Beverage": {"Revenue": 2.1, "EBITDA": 7.8},
			"Real Estate":     {"Revenue": 3.4, "EBITDA": 9.7},
		},
		scorecard: []ScorecardCriterion{
			{Key: "team", DisplayName: "Management Team Quality", Description: "Experience, track record, and capabilities of the team", DefaultWeight: 0.25},
			{Key: "product", DisplayName: "Product/Technology", Description: "Innovation, differentiation, and technical merit", DefaultWeight: 0.20},
			{Key: "market", DisplayName: "Market Opportunity", Description: "Market size, growth potential, and timing", DefaultWeight: 0.20},
			{Key: "competition", DisplayName: "Competitive Advantage", Description: "Barriers to entry, moats, and competitive positioning", DefaultWeight: 0.15},
			{Key: "financial", DisplayName: "Financial Performance", Description: "Revenue growth, unit economics, and financial metrics", DefaultWeight: 0.10},
			{Key: "legal", DisplayName: "Legal/IP Protection", Description: "Intellectual property, legal structure, and compliance", DefaultWeight: 0.10},
		},
		berkus: []BerkusCriterion{
			{Key: "concept", DisplayName: "Sound Idea (Basic Value)", Description: "Quality and market potential of the core business concept", MaxValue: 500_000},
			{Key: "prototype", DisplayName: "Prototype (Reduces Technology Risk)", Description: "Functional prototype or MVP that demonstrates technical feasibility", MaxValue: 500_000},
			{Key: "team", DisplayName: "Quality Management Team (Reduces Execution Risk)", Description: "Experience and capabilities of the founding and management team", MaxValue: 500_000},
			{Key: "strategic_relationships", DisplayName: "Strategic Relationships (Reduces Market Risk)", Description: "Key partnerships, advisors, and market connections", MaxValue: 500_000},
			{Key: "product_rollout", DisplayName: "Product Rollout or Sales (Reduces Financial Risk)", Description: "Evidence of product-market fit through sales or user adoption", MaxValue: 500_000},
		},
		risks: []RiskFactor{
			{Key: "management", DisplayName: "Management Team Risk", Description: "Risk related to management experience and capabilities"},
			{Key: "stage", DisplayName: "Development Stage Risk", Description: "Risk based on company's current development stage"},
			{Key: "legislation", DisplayName: "Legislative/Political Risk", Description: "Risk from regulatory changes or political factors"},
			{Key: "manufacturing", DisplayName: "Manufacturing Risk", Description: "Risk related to production and operational scalability"},
			{Key: "sales", DisplayName: "Sales/Marketing Risk", Description: "Risk in market penetration and customer acquisition"},
			{Key: "funding", DisplayName: "Funding/Capital Risk", Description: "Risk of securing adequate funding for growth"},
			{Key: "competition", DisplayName: "Competition Risk", Description: "Risk from existing and potential competitors"},
			{Key: "technology", DisplayName: "Technology Risk", Description: "Risk of technical execution and innovation"},
			{Key: "litigation", DisplayName: "Litigation Risk", Description: "Risk from legal disputes and intellectual property issues"},
			{Key: "international", DisplayName: "International Risk", Description: "Risk from international expansion and operations"},
			{Key: "reputation", DisplayName: "Reputation Risk", Description: "Risk to brand and company reputation"},
			{Key: "exit", DisplayName: "Exit Strategy Risk", Description: "Risk related to potential exit opportunities and liquidity"},
		},
	}
}
